package service

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/features/auth/models"
	"engagement-admin-backend/internal/features/auth/repository"
	userModels "engagement-admin-backend/internal/features/user/models"
	userRepository "engagement-admin-backend/internal/features/user/repository"
)

// Session is the outcome of authenticating a request. Rotated is set when
// the access token had to be renewed from the refresh token.
type Session struct {
	UserID  string
	Email   string
	Role    string
	Rotated *models.TokenPair
}

type AuthService interface {
	// Register creates a verified user. Tokens are issued only when
	// req.Tick is set.
	Register(ctx context.Context, req *models.RegisterRequest) (*userModels.User, *models.TokenPair, error)
	Login(ctx context.Context, req *models.LoginRequest) (*userModels.User, *models.TokenPair, error)
	// Refresh validates the presented refresh token against the stored one
	// and rotates both tokens.
	Refresh(ctx context.Context, refreshToken string) (*userModels.User, *models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(ctx context.Context, accessToken, refreshToken string) (*Session, error)
	Me(ctx context.Context, userID string) (*userModels.User, error)
	// EnsureAdmin creates the bootstrap admin or promotes an existing account.
	EnsureAdmin(ctx context.Context, email, password string) error
	Tokens() *TokenService
}

type authService struct {
	users  userRepository.UserRepository
	tokens repository.RefreshTokenRepository
	issuer *TokenService
	logger zerolog.Logger
}

func NewAuthService(users userRepository.UserRepository, tokens repository.RefreshTokenRepository, issuer *TokenService, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		issuer: issuer,
		logger: logger,
	}
}

func (s *authService) Tokens() *TokenService {
	return s.issuer
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*userModels.User, *models.TokenPair, error) {
	if err := validation.ValidateName("fname", req.FirstName); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateName("lname", req.LastName); err != nil {
		return nil, nil, err
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return nil, nil, err
	}

	email := normalizeEmail(req.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, errors.NewConflictError("user", "email already registered").WithDetail("field", "email")
	} else if !stderrors.Is(err, userRepository.ErrUserNotFound) {
		return nil, nil, errors.NewDatabaseError("get user by email", err)
	}

	if err := validation.ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, errors.NewInternalError("hash password", err)
	}

	user := &userModels.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         userModels.RoleUser,
		Verified:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if stderrors.Is(err, userRepository.ErrDuplicateEmail) {
			return nil, nil, errors.NewConflictError("user", "email already registered").WithDetail("field", "email")
		}
		return nil, nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("User registered")

	if !req.Tick {
		return user, nil, nil
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*userModels.User, *models.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if stderrors.Is(err, userRepository.ErrUserNotFound) {
			return nil, nil, errors.NewUnauthorizedError("invalid credentials")
		}
		return nil, nil, errors.NewDatabaseError("get user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, errors.NewUnauthorizedError("invalid credentials")
	}
	if !user.Verified {
		return nil, nil, errors.NewForbiddenError("account not verified")
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("User logged in")
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*userModels.User, *models.TokenPair, error) {
	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	stored, err := s.tokens.GetByUserID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, repository.ErrTokenNotFound) {
			return nil, nil, errors.NewUnauthorizedError("refresh token revoked")
		}
		return nil, nil, errors.NewDatabaseError("get refresh token", err)
	}
	if stored.Token != refreshToken {
		return nil, nil, errors.NewUnauthorizedError("refresh token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, userRepository.ErrUserNotFound) {
			return nil, nil, errors.NewUnauthorizedError("user no longer exists")
		}
		return nil, nil, errors.NewDatabaseError("get user", err)
	}
	if !user.Verified {
		return nil, nil, errors.NewForbiddenError("account not verified")
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	removed, err := s.tokens.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return errors.NewDatabaseError("delete refresh token", err)
	}
	if !removed {
		s.logger.Debug().Msg("Logout with unknown refresh token")
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken, refreshToken string) (*Session, error) {
	if claims, err := s.issuer.VerifyAccessToken(accessToken); err == nil {
		return &Session{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
	}

	if refreshToken == "" {
		return nil, errors.NewUnauthorizedError("session required")
	}

	user, pair, err := s.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("user_id", user.ID).Msg("Access token rotated")
	return &Session{UserID: user.ID, Email: user.Email, Role: user.Role, Rotated: pair}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*userModels.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, userRepository.ErrUserNotFound) {
			return nil, errors.NewUnauthorizedError("user no longer exists")
		}
		return nil, errors.NewDatabaseError("get user", err)
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return nil
		}
		user.Role = userModels.RoleAdmin
		user.Verified = true
		if err := s.users.Update(ctx, user); err != nil {
			return errors.NewDatabaseError("promote admin", err)
		}
		s.logger.Info().Str("user_id", user.ID).Msg("Existing user promoted to admin")
		return nil
	case !stderrors.Is(err, userRepository.ErrUserNotFound):
		return errors.NewDatabaseError("get user by email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.NewInternalError("hash password", err)
	}

	admin := &userModels.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         userModels.RoleAdmin,
		Verified:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return errors.NewDatabaseError("create admin", err)
	}

	s.logger.Info().Str("user_id", admin.ID).Msg("Bootstrap admin created")
	return nil
}

// startSession issues a fresh pair and stores its refresh token, replacing
// any previous one.
func (s *authService) startSession(ctx context.Context, user *userModels.User) (*models.TokenPair, error) {
	pair, err := s.issuer.IssuePair(user)
	if err != nil {
		return nil, errors.NewInternalError("issue tokens", err)
	}
	if err := s.issuer.PersistRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, errors.NewDatabaseError("persist refresh token", err)
	}
	return pair, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
