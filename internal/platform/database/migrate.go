package database

import (
	"fmt"

	announcementModels "engagement-admin-backend/internal/features/announcement/models"
	authModels "engagement-admin-backend/internal/features/auth/models"
	taskModels "engagement-admin-backend/internal/features/task/models"
	telegramModels "engagement-admin-backend/internal/features/telegram/models"
	userModels "engagement-admin-backend/internal/features/user/models"
)

// Indexes that gorm tags cannot express. Task priorities are unique per
// collection, and at most one announcement may be active.
var rawIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_social_tasks_priority ON social_tasks (priority)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_tasks_priority ON daily_tasks (priority)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_announcements_single_active ON announcements (status) WHERE status = true`,
}

// Migrate creates or updates every table the service owns.
func (c *Client) Migrate() error {
	if err := c.db.AutoMigrate(
		&userModels.User{},
		&authModels.RefreshToken{},
		&announcementModels.Announcement{},
		&telegramModels.TelegramUser{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, kind := range []taskModels.Kind{taskModels.KindSocial, taskModels.KindDaily} {
		if err := c.db.Table(kind.Table()).AutoMigrate(&taskModels.Task{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", kind.Table(), err)
		}
	}

	for _, stmt := range rawIndexes {
		if err := c.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
