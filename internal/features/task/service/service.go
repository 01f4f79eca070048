package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/rs/zerolog"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/features/task/models"
	"engagement-admin-backend/internal/features/task/repository"
)

const maxImageTagLength = 255

type TaskService interface {
	Kind() models.Kind
	// List returns the collection ordered by priority.
	List(ctx context.Context) ([]*models.Task, error)
	Create(ctx context.Context, in *models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id string, in *models.TaskInput) (*models.Task, error)
	// Delete returns the removed task.
	Delete(ctx context.Context, id string) (*models.Task, error)
}

type taskService struct {
	kind   models.Kind
	repo   repository.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(kind models.Kind, repo repository.TaskRepository, logger zerolog.Logger) TaskService {
	return &taskService{
		kind:   kind,
		repo:   repo,
		logger: logger.With().Str("collection", string(kind)).Logger(),
	}
}

func (s *taskService) Kind() models.Kind {
	return s.kind
}

func (s *taskService) List(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list tasks", err)
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, in *models.TaskInput) (*models.Task, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.ensurePriorityFree(ctx, in.Priority, ""); err != nil {
		return nil, err
	}

	task := &models.Task{}
	apply(task, in)
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, s.writeError("create task", err, "")
	}

	s.logger.Info().Str("task_id", task.ID).Int("priority", task.Priority).Msg("Task created")
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, in *models.TaskInput) (*models.Task, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.NewNotFoundError("task", id)
		}
		return nil, errors.NewDatabaseError("get task", err)
	}

	if err := s.ensurePriorityFree(ctx, in.Priority, id); err != nil {
		return nil, err
	}

	apply(task, in)
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, s.writeError("update task", err, id)
	}

	s.logger.Info().Str("task_id", task.ID).Int("priority", task.Priority).Msg("Task updated")
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.repo.Delete(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrTaskNotFound) {
			return nil, errors.NewNotFoundError("task", id)
		}
		return nil, errors.NewDatabaseError("delete task", err)
	}

	s.logger.Info().Str("task_id", id).Msg("Task deleted")
	return task, nil
}

// ensurePriorityFree rejects priority when another task (not excludeID)
// already holds it.
func (s *taskService) ensurePriorityFree(ctx context.Context, priority int, excludeID string) error {
	_, err := s.repo.FindByPriority(ctx, priority, excludeID)
	switch {
	case err == nil:
		return priorityTaken(priority)
	case stderrors.Is(err, repository.ErrTaskNotFound):
		return nil
	default:
		return errors.NewDatabaseError("find task by priority", err)
	}
}

// writeError maps repository write failures. A unique index hit means a
// concurrent writer took the priority after our check.
func (s *taskService) writeError(op string, err error, id string) error {
	switch {
	case stderrors.Is(err, repository.ErrPriorityTaken):
		return errors.NewConflictError("task", "priority already taken").WithDetail("field", "priority")
	case stderrors.Is(err, repository.ErrTaskNotFound):
		return errors.NewNotFoundError("task", id)
	default:
		return errors.NewDatabaseError(op, err)
	}
}

func priorityTaken(priority int) error {
	return errors.NewConflictError("task", "priority already taken").
		WithDetail("field", "priority").
		WithDetail("priority", priority)
}

func validateInput(in *models.TaskInput) error {
	if err := validation.ValidateText("title", in.Title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateText("img", in.Image, maxImageTagLength); err != nil {
		return err
	}
	if err := validation.ValidateLink(in.Link); err != nil {
		return err
	}
	if err := validation.ValidatePositiveInt(int64(in.Priority), "priority"); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeInt(in.Reward, "reward"); err != nil {
		return err
	}
	return nil
}

func apply(task *models.Task, in *models.TaskInput) {
	task.Title = strings.TrimSpace(in.Title)
	task.Image = strings.TrimSpace(in.Image)
	task.Link = strings.TrimSpace(in.Link)
	task.Priority = in.Priority
	task.Reward = in.Reward
}
