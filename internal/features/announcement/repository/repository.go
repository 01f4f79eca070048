package repository

import (
	"context"
	"errors"

	"engagement-admin-backend/internal/features/announcement/models"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	// ErrActiveExists means another announcement already has status=true.
	ErrActiveExists = errors.New("another announcement is already active")
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	// GetActive returns the active announcement, if any.
	GetActive(ctx context.Context) (*models.Announcement, error)
	List(ctx context.Context) ([]*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	// Delete removes the announcement and returns what was removed.
	Delete(ctx context.Context, id string) (*models.Announcement, error)
	// Toggle flips the status of id atomically. Turning it on fails with
	// ErrActiveExists while another announcement is active.
	Toggle(ctx context.Context, id string) (*models.Announcement, error)
}
