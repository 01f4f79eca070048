package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"engagement-admin-backend/internal/features/auth/models"
	"engagement-admin-backend/internal/features/auth/repository"
	userModels "engagement-admin-backend/internal/features/user/models"
)

// ErrInvalidToken covers bad signatures, wrong algorithms, expiry and
// malformed input alike.
var ErrInvalidToken = errors.New("invalid token")

// TokenService signs and verifies access and refresh tokens. The two kinds
// use different secrets, so one can never be accepted as the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	tokens        repository.RefreshTokenRepository
	now           func() time.Time
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, tokens repository.RefreshTokenRepository) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		tokens:        tokens,
		now:           time.Now,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccessToken signs a short-lived token carrying the user's identity.
func (s *TokenService) IssueAccessToken(user *userModels.User) (string, time.Time, error) {
	return s.sign(models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token that only names the user.
func (s *TokenService) IssueRefreshToken(userID string) (string, time.Time, error) {
	return s.sign(models.Claims{UserID: userID}, s.refreshSecret, s.refreshTTL)
}

// IssuePair issues both tokens for user.
func (s *TokenService) IssuePair(user *userModels.User) (*models.TokenPair, error) {
	access, accessExp, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *TokenService) VerifyAccessToken(token string) (*models.Claims, error) {
	return s.verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (*models.Claims, error) {
	return s.verify(token, s.refreshSecret)
}

// PersistRefreshToken makes token the only refresh token of userID.
func (s *TokenService) PersistRefreshToken(ctx context.Context, userID, token string) error {
	return s.tokens.Upsert(ctx, userID, token)
}

func (s *TokenService) sign(claims models.Claims, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *TokenService) verify(token string, secret []byte) (*models.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*models.Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
