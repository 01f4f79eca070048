package repository

import (
	"context"
	"errors"

	"engagement-admin-backend/internal/features/user/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	// List returns every user whose role is not excluded, oldest first.
	List(ctx context.Context, excludeRoles ...string) ([]*models.User, error)
}
