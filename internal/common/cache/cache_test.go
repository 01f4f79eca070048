package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client, "test"), mr
}

func TestSetGetDelete(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", item{Name: "a", Count: 2}, time.Minute))
	assert.True(t, mr.Exists("test:k"))

	var got item
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, item{Name: "a", Count: 2}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestTTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", item{Name: "a"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got item
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestGetOrSetCallsLoaderOnce(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	calls := 0
	loader := func() ([]item, error) {
		calls++
		return []item{{Name: "x", Count: 1}}, nil
	}

	first, err := GetOrSet(ctx, c, "list", time.Minute, loader)
	require.NoError(t, err)
	second, err := GetOrSet(ctx, c, "list", time.Minute, loader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestNoopAlwaysMisses(t *testing.T) {
	calls := 0
	loader := func() (int, error) { calls++; return 7, nil }

	for i := 0; i < 2; i++ {
		v, err := GetOrSet[int](context.Background(), Noop{}, "k", time.Minute, loader)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, 2, calls)
}
