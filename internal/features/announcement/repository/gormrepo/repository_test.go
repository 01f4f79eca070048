package gormrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/features/announcement/models"
	"engagement-admin-backend/internal/features/announcement/repository"
	"engagement-admin-backend/internal/platform/database/dbtest"
)

func announcement(title string, status bool) *models.Announcement {
	return &models.Announcement{Title: title, Subtitle: "s", Description: "d", Image: "/uploads/x.png", Status: status}
}

func TestActiveUniqueness(t *testing.T) {
	repo := NewGormRepository(dbtest.New(t))
	ctx := context.Background()

	a := announcement("a", true)
	require.NoError(t, repo.Create(ctx, a))
	assert.ErrorIs(t, repo.Create(ctx, announcement("b", true)), repository.ErrActiveExists)

	b := announcement("b", false)
	require.NoError(t, repo.Create(ctx, b))
	b.Status = true
	assert.ErrorIs(t, repo.Update(ctx, b), repository.ErrActiveExists)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, active.ID)
}

func TestToggle(t *testing.T) {
	repo := NewGormRepository(dbtest.New(t))
	ctx := context.Background()

	a, b := announcement("a", false), announcement("b", false)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Status)

	_, err = repo.Toggle(ctx, b.ID)
	assert.ErrorIs(t, err, repository.ErrActiveExists)

	got, err = repo.Toggle(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.Status)

	_, err = repo.GetActive(ctx)
	assert.ErrorIs(t, err, repository.ErrAnnouncementNotFound)

	_, err = repo.Toggle(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrAnnouncementNotFound)
}

func TestDeleteReturnsRecord(t *testing.T) {
	repo := NewGormRepository(dbtest.New(t))
	ctx := context.Background()

	a := announcement("a", false)
	require.NoError(t, repo.Create(ctx, a))

	deleted, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", deleted.Title)

	_, err = repo.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrAnnouncementNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
