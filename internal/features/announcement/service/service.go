package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/rs/zerolog"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/features/announcement/models"
	"engagement-admin-backend/internal/features/announcement/repository"
)

const maxImageNameLength = 255

// ImageRemover deletes a stored announcement image by its public path.
type ImageRemover interface {
	Remove(publicPath string) error
}

type AnnouncementService interface {
	List(ctx context.Context) ([]*models.Announcement, error)
	// Create stores a new announcement. The image must already be saved;
	// it is removed again when creation fails.
	Create(ctx context.Context, in *models.CreateAnnouncementInput) (*models.Announcement, error)
	Update(ctx context.Context, id string, patch *models.AnnouncementPatch) (*models.Announcement, error)
	Delete(ctx context.Context, id string) (*models.Announcement, error)
	// ToggleStatus flips the status of id. Activation is refused while
	// another announcement is active.
	ToggleStatus(ctx context.Context, id string) (*models.Announcement, error)
}

type announcementService struct {
	repo   repository.AnnouncementRepository
	images ImageRemover
	logger zerolog.Logger
}

func NewAnnouncementService(repo repository.AnnouncementRepository, images ImageRemover, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		repo:   repo,
		images: images,
		logger: logger,
	}
}

func (s *announcementService) List(ctx context.Context) ([]*models.Announcement, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list announcements", err)
	}
	return list, nil
}

func (s *announcementService) Create(ctx context.Context, in *models.CreateAnnouncementInput) (a *models.Announcement, err error) {
	defer func() {
		if err != nil {
			s.removeImage(in.Image)
		}
	}()

	a = &models.Announcement{
		Title:       strings.TrimSpace(in.Title),
		Subtitle:    strings.TrimSpace(in.Subtitle),
		Description: strings.TrimSpace(in.Description),
		Reward:      in.Reward,
		Image:       in.Image,
		ImageName:   strings.TrimSpace(in.ImageName),
		Status:      in.Status,
	}
	if err := validate(a); err != nil {
		return nil, err
	}
	if a.Status {
		if err := s.ensureNoneActive(ctx, ""); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if stderrors.Is(err, repository.ErrActiveExists) {
			return nil, alreadyActive()
		}
		return nil, errors.NewDatabaseError("create announcement", err)
	}

	s.logger.Info().Str("announcement_id", a.ID).Bool("status", a.Status).Msg("Announcement created")
	return a, nil
}

func (s *announcementService) Update(ctx context.Context, id string, patch *models.AnnouncementPatch) (*models.Announcement, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		a.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Subtitle != nil {
		a.Subtitle = strings.TrimSpace(*patch.Subtitle)
	}
	if patch.Description != nil {
		a.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Reward != nil {
		a.Reward = *patch.Reward
	}
	if patch.ImageName != nil {
		a.ImageName = strings.TrimSpace(*patch.ImageName)
	}
	activating := patch.Status != nil && *patch.Status && !a.Status
	if patch.Status != nil {
		a.Status = *patch.Status
	}

	if err := validate(a); err != nil {
		return nil, err
	}
	if activating {
		if err := s.ensureNoneActive(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		switch {
		case stderrors.Is(err, repository.ErrActiveExists):
			return nil, alreadyActive()
		case stderrors.Is(err, repository.ErrAnnouncementNotFound):
			return nil, errors.NewNotFoundError("announcement", id)
		}
		return nil, errors.NewDatabaseError("update announcement", err)
	}

	s.logger.Info().Str("announcement_id", id).Msg("Announcement updated")
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) (*models.Announcement, error) {
	a, err := s.repo.Delete(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, errors.NewNotFoundError("announcement", id)
		}
		return nil, errors.NewDatabaseError("delete announcement", err)
	}

	s.removeImage(a.Image)
	s.logger.Info().Str("announcement_id", id).Msg("Announcement deleted")
	return a, nil
}

func (s *announcementService) ToggleStatus(ctx context.Context, id string) (*models.Announcement, error) {
	a, err := s.repo.Toggle(ctx, id)
	if err != nil {
		switch {
		case stderrors.Is(err, repository.ErrAnnouncementNotFound):
			return nil, errors.NewNotFoundError("announcement", id)
		case stderrors.Is(err, repository.ErrActiveExists):
			return nil, alreadyActive()
		}
		return nil, errors.NewDatabaseError("toggle announcement", err)
	}

	s.logger.Info().Str("announcement_id", id).Bool("status", a.Status).Msg("Announcement toggled")
	return a, nil
}

func (s *announcementService) get(ctx context.Context, id string) (*models.Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, errors.NewNotFoundError("announcement", id)
		}
		return nil, errors.NewDatabaseError("get announcement", err)
	}
	return a, nil
}

// ensureNoneActive fails when an announcement other than excludeID is active.
func (s *announcementService) ensureNoneActive(ctx context.Context, excludeID string) error {
	active, err := s.repo.GetActive(ctx)
	switch {
	case err == nil:
		if active.ID != excludeID {
			return alreadyActive().WithDetail("active_id", active.ID)
		}
		return nil
	case stderrors.Is(err, repository.ErrAnnouncementNotFound):
		return nil
	default:
		return errors.NewDatabaseError("get active announcement", err)
	}
}

func (s *announcementService) removeImage(path string) {
	if path == "" || s.images == nil {
		return
	}
	if err := s.images.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("image", path).Msg("Failed to remove announcement image")
	}
}

func alreadyActive() *errors.AppError {
	return errors.NewConflictError("announcement", "another announcement is already active")
}

func validate(a *models.Announcement) error {
	if err := validation.ValidateText("title", a.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateText("subtitle", a.Subtitle, validation.MaxSubtitleLength); err != nil {
		return err
	}
	if err := validation.ValidateText("description", a.Description, validation.MaxDescriptionLength); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeInt(a.Reward, "reward"); err != nil {
		return err
	}
	if a.Image == "" {
		return errors.NewValidationError("image", "is required")
	}
	if len(a.ImageName) > maxImageNameLength {
		return errors.NewValidationError("imageName", "is too long")
	}
	return nil
}
