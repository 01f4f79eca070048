package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/rs/zerolog"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/export"
	"engagement-admin-backend/internal/features/user/models"
	"engagement-admin-backend/internal/features/user/repository"
)

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// SessionRevoker drops the stored refresh token of a user.
type SessionRevoker interface {
	DeleteByUserID(ctx context.Context, userID string) error
}

type UserService interface {
	// List returns every non-admin user, oldest first.
	List(ctx context.Context) ([]*models.User, error)
	// Update changes names and, for admins only, the verified flag.
	// Non-admins may only update themselves.
	Update(ctx context.Context, actor Actor, req *models.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id string) error
	// Export renders all users as an xlsx workbook.
	Export(ctx context.Context) ([]byte, error)
}

var usersSheet = export.Spreadsheet[*models.User]{
	Sheet: "Users Data",
	Columns: []export.Column[*models.User]{
		{Header: "UID", Value: func(u *models.User) any { return u.ID }},
		{Header: "First Name", Value: func(u *models.User) any { return u.FirstName }},
		{Header: "Last Name", Value: func(u *models.User) any { return u.LastName }},
		{Header: "Email", Value: func(u *models.User) any { return u.Email }},
		{Header: "User Type", Value: func(u *models.User) any { return u.Role }},
	},
}

type userService struct {
	repo     repository.UserRepository
	sessions SessionRevoker
	logger   zerolog.Logger
}

func NewUserService(repo repository.UserRepository, sessions SessionRevoker, logger zerolog.Logger) UserService {
	return &userService{
		repo:     repo,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx, models.RoleAdmin)
	if err != nil {
		return nil, errors.NewDatabaseError("list users", err)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, actor Actor, req *models.UpdateUserRequest) (*models.User, error) {
	if !actor.IsAdmin() {
		if actor.ID != req.UserID {
			return nil, errors.NewForbiddenError("cannot update another user")
		}
		if req.Verified != nil {
			return nil, errors.NewForbiddenError("only admins can change verification")
		}
	}
	if err := validation.ValidateName("fname", req.FirstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("lname", req.LastName); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, req.UserID)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.NewNotFoundError("user", req.UserID)
		}
		return nil, errors.NewDatabaseError("get user", err)
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	revoke := false
	if req.Verified != nil {
		revoke = user.Verified && !*req.Verified
		user.Verified = *req.Verified
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.NewNotFoundError("user", req.UserID)
		}
		return nil, errors.NewDatabaseError("update user", err)
	}

	if revoke {
		if err := s.sessions.DeleteByUserID(ctx, user.ID); err != nil {
			return nil, errors.NewDatabaseError("revoke sessions", err)
		}
	}

	s.logger.Info().Str("user_id", user.ID).Str("actor_id", actor.ID).Msg("User updated")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return errors.NewNotFoundError("user", id)
		}
		return errors.NewDatabaseError("delete user", err)
	}

	if err := s.sessions.DeleteByUserID(ctx, id); err != nil {
		// the account is gone; a leftover token fails the user lookup on refresh
		s.logger.Warn().Err(err).Str("user_id", id).Msg("Failed to drop refresh token of deleted user")
	}

	s.logger.Info().Str("user_id", id).Msg("User deleted")
	return nil
}

func (s *userService) Export(ctx context.Context) ([]byte, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list users", err)
	}
	data, err := usersSheet.Build(users)
	if err != nil {
		return nil, errors.NewInternalError("build users workbook", err)
	}
	return data, nil
}
