package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	announcementModels "engagement-admin-backend/internal/features/announcement/models"
	taskModels "engagement-admin-backend/internal/features/task/models"
)

func openTestClient(t *testing.T) *Client {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	client, err := Open(context.Background(), DriverSQLite, dsn, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Migrate())
	return client
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "x", Options{})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateIsIdempotent(t *testing.T) {
	client := openTestClient(t)
	require.NoError(t, client.Migrate())
	assert.NoError(t, client.HealthCheck(context.Background()))

	for _, table := range []string{"users", "refresh_tokens", "social_tasks", "daily_tasks", "announcements", "telegram_users"} {
		assert.True(t, client.DB().Migrator().HasTable(table), table)
	}
}

func TestTaskPriorityUniquePerTable(t *testing.T) {
	db := openTestClient(t).DB()

	require.NoError(t, db.Table("social_tasks").Create(&taskModels.Task{ID: "s1", Title: "a", Link: "https://a", Image: "x", Priority: 1}).Error)
	err := db.Table("social_tasks").Create(&taskModels.Task{ID: "s2", Title: "b", Link: "https://b", Image: "x", Priority: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// the daily collection has its own priority namespace
	assert.NoError(t, db.Table("daily_tasks").Create(&taskModels.Task{ID: "d1", Title: "a", Link: "https://a", Image: "x", Priority: 1}).Error)
}

func TestSingleActiveAnnouncementIndex(t *testing.T) {
	db := openTestClient(t).DB()

	mk := func(id string, status bool) error {
		return db.Create(&announcementModels.Announcement{ID: id, Title: id, Subtitle: id, Description: id, Image: "/uploads/x.png", Status: status}).Error
	}

	require.NoError(t, mk("a1", true))
	require.NoError(t, mk("a2", false))
	require.NoError(t, mk("a3", false))
	assert.ErrorIs(t, mk("a4", true), gorm.ErrDuplicatedKey)
}
