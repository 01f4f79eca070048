package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engagement-admin-backend/internal/features/task/models"
	"engagement-admin-backend/internal/features/task/repository"
)

// gormRepository stores one task collection in its own table.
type gormRepository struct {
	db    *gorm.DB
	table string
}

func NewGormRepository(db *gorm.DB, kind models.Kind) repository.TaskRepository {
	return &gormRepository{db: db, table: kind.Table()}
}

func (r *gormRepository) q(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *gormRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := r.q(ctx).Create(task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrPriorityTaken
		}
		return fmt.Errorf("failed to create task in %s: %w", r.table, err)
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.q(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task from %s: %w", r.table, err)
	}
	return &task, nil
}

func (r *gormRepository) FindByPriority(ctx context.Context, priority int, excludeID string) (*models.Task, error) {
	q := r.q(ctx).Where("priority = ?", priority)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var task models.Task
	if err := q.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task by priority in %s: %w", r.table, err)
	}
	return &task, nil
}

func (r *gormRepository) Update(ctx context.Context, task *models.Task) error {
	result := r.q(ctx).Where("id = ?", task.ID).Updates(map[string]interface{}{
		"image":      task.Image,
		"link":       task.Link,
		"priority":   task.Priority,
		"reward":     task.Reward,
		"title":      task.Title,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrPriorityTaken
		}
		return fmt.Errorf("failed to update task in %s: %w", r.table, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) (*models.Task, error) {
	var deleted models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.table).Where("id = ?", id).First(&deleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrTaskNotFound
			}
			return err
		}
		return tx.Table(r.table).Where("id = ?", id).Delete(&models.Task{}).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete task from %s: %w", r.table, err)
	}
	return &deleted, nil
}

func (r *gormRepository) List(ctx context.Context) ([]*models.Task, error) {
	tasks := make([]*models.Task, 0)
	if err := r.q(ctx).Order("priority ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks from %s: %w", r.table, err)
	}
	return tasks, nil
}
