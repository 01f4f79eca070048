package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/common/cache"
	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/features/telegram/models"
	"engagement-admin-backend/internal/features/telegram/repository/gormrepo"
	"engagement-admin-backend/internal/features/telegram/service"
	userModels "engagement-admin-backend/internal/features/user/models"
	"engagement-admin-backend/internal/platform/database/dbtest"
)

const botToken = "12345:test-bot-token"

// signInitData builds mini-app init data signed the way Telegram does.
func signInitData(t *testing.T, userJSON string) string {
	t.Helper()
	values := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"query_id":  "AAE",
		"user":      userJSON,
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values[k])
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	q := url.Values{}
	for k, v := range values {
		q.Set(k, v)
	}
	q.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return q.Encode()
}

func newEngine(t *testing.T, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)
	require.NoError(t, db.Create(&models.TelegramUser{ID: "1", UserID: "777", Username: "ada"}).Error)

	svc := service.NewTelegramUserService(gormrepo.NewGormRepository(db), cache.Noop{}, time.Minute, zerolog.Nop())
	h := NewTelegramUserHandler(svc)

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()), middleware.HandleErrors(zerolog.Nop()))
	h.RegisterMiniAppRoutes(&r.RouterGroup, middleware.TelegramInitData(botToken, time.Hour))

	console := r.Group("")
	console.Use(func(c *gin.Context) { middleware.SetIdentity(c, "u1", "u1@example.com", role) })
	h.RegisterRoutes(console)
	return r
}

func get(r *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListAndExport(t *testing.T) {
	r := newEngine(t, userModels.RoleAdmin)

	rec := get(r, "/fetch-telegram-users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"telegramUsers"`)
	assert.Contains(t, rec.Body.String(), `"ada"`)

	rec = get(r, "/downloadTeleUsersData", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "users_data.xlsx")
}

func TestConsoleRoutesRequireAdmin(t *testing.T) {
	r := newEngine(t, userModels.RoleUser)
	assert.Equal(t, http.StatusForbidden, get(r, "/fetch-telegram-users", nil).Code)
}

func TestMiniAppMe(t *testing.T) {
	r := newEngine(t, userModels.RoleAdmin)

	rec := get(r, "/telegram-user/me", map[string]string{"init_data": signInitData(t, `{"id":777,"first_name":"Ada"}`)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"userId":"777"`)

	rec = get(r, "/telegram-user/me", map[string]string{"init_data": signInitData(t, `{"id":778,"first_name":"Bob"}`)})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/telegram-user/me", nil).Code)
}
