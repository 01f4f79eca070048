package repository

import (
	"context"
	"errors"

	"engagement-admin-backend/internal/features/auth/models"
)

var ErrTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	// Upsert stores token as the only refresh token of userID.
	Upsert(ctx context.Context, userID, token string) error
	GetByUserID(ctx context.Context, userID string) (*models.RefreshToken, error)
	// DeleteByToken reports whether a record was removed.
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
