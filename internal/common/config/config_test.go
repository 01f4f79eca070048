package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 60*time.Minute, cfg.Auth.RefreshTokenTTL)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadRejectsSharedSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "access-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "must differ")
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestLoadAdminPair(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_EMAIL", "root@example.com")

	_, err := Load()
	assert.ErrorContains(t, err, "must be set together")

	t.Setenv("ADMIN_PASSWORD", "secret123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", cfg.Auth.AdminEmail)
}
