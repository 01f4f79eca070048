package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"engagement-admin-backend/internal/features/telegram/models"
	"engagement-admin-backend/internal/features/telegram/repository"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) repository.TelegramUserRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context) ([]*models.TelegramUser, error) {
	users := make([]*models.TelegramUser, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list telegram users: %w", err)
	}
	return users, nil
}

func (r *gormRepository) GetByTelegramID(ctx context.Context, telegramID string) (*models.TelegramUser, error) {
	var user models.TelegramUser
	if err := r.db.WithContext(ctx).Where("user_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTelegramUserNotFound
		}
		return nil, fmt.Errorf("failed to get telegram user: %w", err)
	}
	return &user, nil
}
