package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engagement-admin-backend/internal/features/announcement/models"
	"engagement-admin-backend/internal/features/announcement/repository"
)

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) repository.AnnouncementRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, a *models.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		// единственный уникальный индекс стоит на активном объявлении
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrActiveExists
		}
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	return first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *gormRepository) GetActive(ctx context.Context) (*models.Announcement, error) {
	return first(r.db.WithContext(ctx).Where("status = ?", true))
}

func (r *gormRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	list := make([]*models.Announcement, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return list, nil
}

func (r *gormRepository) Update(ctx context.Context, a *models.Announcement) error {
	result := r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"title":       a.Title,
			"subtitle":    a.Subtitle,
			"description": a.Description,
			"reward":      a.Reward,
			"image_name":  a.ImageName,
			"status":      a.Status,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return repository.ErrActiveExists
		}
		return fmt.Errorf("failed to update announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrAnnouncementNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id string) (*models.Announcement, error) {
	var deleted *models.Announcement
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := first(tx.Where("id = ?", id))
		if err != nil {
			return err
		}
		deleted = a
		return tx.Where("id = ?", id).Delete(&models.Announcement{}).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete announcement: %w", err)
	}
	return deleted, nil
}

func (r *gormRepository) Toggle(ctx context.Context, id string) (*models.Announcement, error) {
	var toggled *models.Announcement
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := first(tx.Where("id = ?", id))
		if err != nil {
			return err
		}

		if !a.Status {
			other, err := first(tx.Where("status = ? AND id <> ?", true, id))
			switch {
			case err == nil && other != nil:
				return repository.ErrActiveExists
			case err != nil && !errors.Is(err, repository.ErrAnnouncementNotFound):
				return err
			}
			if err := tx.Model(&models.Announcement{}).
				Where("id <> ? AND status = ?", id, true).
				Update("status", false).Error; err != nil {
				return err
			}
		}

		a.Status = !a.Status
		a.UpdatedAt = time.Now()
		if err := tx.Model(&models.Announcement{}).Where("id = ?", id).
			Updates(map[string]interface{}{"status": a.Status, "updated_at": a.UpdatedAt}).Error; err != nil {
			return err
		}
		toggled = a
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAnnouncementNotFound), errors.Is(err, repository.ErrActiveExists):
			return nil, err
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, repository.ErrActiveExists
		}
		return nil, fmt.Errorf("failed to toggle announcement: %w", err)
	}
	return toggled, nil
}

func first(q *gorm.DB) (*models.Announcement, error) {
	var a models.Announcement
	if err := q.First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return &a, nil
}
