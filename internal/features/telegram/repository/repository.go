package repository

import (
	"context"
	"errors"

	"engagement-admin-backend/internal/features/telegram/models"
)

var ErrTelegramUserNotFound = errors.New("telegram user not found")

// TelegramUserRepository is read-only: rows are written by the bot.
type TelegramUserRepository interface {
	List(ctx context.Context) ([]*models.TelegramUser, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.TelegramUser, error)
}
