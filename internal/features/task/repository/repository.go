package repository

import (
	"context"
	"errors"

	"engagement-admin-backend/internal/features/task/models"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrPriorityTaken = errors.New("priority already taken")
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	// FindByPriority returns the task holding priority, ignoring excludeID.
	FindByPriority(ctx context.Context, priority int, excludeID string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	// Delete removes the task and returns what was removed.
	Delete(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
}
