package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"engagement-admin-backend/internal/common/cache"
	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/export"
	"engagement-admin-backend/internal/features/telegram/models"
	"engagement-admin-backend/internal/features/telegram/repository"
)

const listCacheKey = "telegram_users:list"

type TelegramUserService interface {
	// List returns all bot users. Results are cached for the configured TTL.
	List(ctx context.Context) ([]*models.TelegramUserResponse, error)
	Export(ctx context.Context) ([]byte, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.TelegramUserResponse, error)
}

var telegramSheet = export.Spreadsheet[*models.TelegramUserResponse]{
	Sheet:       "Users Data",
	Placeholder: "undefined",
	Columns: []export.Column[*models.TelegramUserResponse]{
		{Header: "Telegram Id", Value: func(u *models.TelegramUserResponse) any { return u.UserID }},
		{Header: "Date of Joining", Value: func(u *models.TelegramUserResponse) any {
			if u.CreatedAt.IsZero() {
				return nil
			}
			return u.CreatedAt.UTC().Format(time.RFC3339)
		}},
		{Header: "Username", Value: func(u *models.TelegramUserResponse) any { return u.Username }},
		{Header: "First Name", Value: func(u *models.TelegramUserResponse) any { return u.FirstName }},
		{Header: "Last Name", Value: func(u *models.TelegramUserResponse) any { return u.LastName }},
		{Header: "tonWalletAddress", Value: func(u *models.TelegramUserResponse) any { return u.TonWalletAddr }},
		{Header: "twitterUsername", Value: func(u *models.TelegramUserResponse) any { return u.TwitterUserName }},
		{Header: "balance", Value: func(u *models.TelegramUserResponse) any {
			// zero balances read as undefined in the legacy sheet
			if u.Balance == nil || *u.Balance == 0 {
				return nil
			}
			return *u.Balance
		}},
	},
}

type telegramUserService struct {
	repo   repository.TelegramUserRepository
	cache  cache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func NewTelegramUserService(repo repository.TelegramUserRepository, c cache.Cache, ttl time.Duration, logger zerolog.Logger) TelegramUserService {
	if c == nil {
		c = cache.Noop{}
	}
	return &telegramUserService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *telegramUserService) List(ctx context.Context) ([]*models.TelegramUserResponse, error) {
	users, err := cache.GetOrSet(ctx, s.cache, listCacheKey, s.ttl, func() ([]*models.TelegramUserResponse, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, errors.NewDatabaseError("list telegram users", err)
	}
	return users, nil
}

func (s *telegramUserService) Export(ctx context.Context) ([]byte, error) {
	// exports always read the store directly
	users, err := s.load(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list telegram users", err)
	}
	data, err := telegramSheet.Build(users)
	if err != nil {
		return nil, errors.NewInternalError("build telegram users workbook", err)
	}
	return data, nil
}

func (s *telegramUserService) GetByTelegramID(ctx context.Context, telegramID int64) (*models.TelegramUserResponse, error) {
	id := strconv.FormatInt(telegramID, 10)
	user, err := s.repo.GetByTelegramID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrTelegramUserNotFound) {
			return nil, errors.NewNotFoundError("telegram user", id)
		}
		return nil, errors.NewDatabaseError("get telegram user", err)
	}
	return toResponse(user), nil
}

func (s *telegramUserService) load(ctx context.Context) ([]*models.TelegramUserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.TelegramUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	s.logger.Debug().Int("count", len(out)).Msg("Telegram users loaded")
	return out, nil
}

func toResponse(u *models.TelegramUser) *models.TelegramUserResponse {
	resp := &models.TelegramUserResponse{TelegramUser: *u}
	if normalized, ok := NormalizeWallet(u.TonWalletAddr); ok {
		resp.TonWalletAddr = normalized
		resp.WalletValid = true
	}
	return resp
}
