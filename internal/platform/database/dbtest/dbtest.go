// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"engagement-admin-backend/internal/platform/database"
)

// New returns a migrated database living in t.TempDir.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	client, err := database.Open(context.Background(), database.DriverSQLite, dsn, database.Options{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return client.DB()
}
