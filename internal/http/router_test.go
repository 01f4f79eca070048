package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/common/cache"
	"engagement-admin-backend/internal/common/config"
	"engagement-admin-backend/internal/platform/database"
	"engagement-admin-backend/internal/platform/uploads"
)

const (
	adminEmail    = "root@example.com"
	adminPassword = "rootpass1"
)

func newTestServer(t *testing.T, staticDir string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Origin = "http://localhost:3000"
	cfg.Server.MaxUploadBytes = 1 << 20
	cfg.Server.StaticDir = staticDir
	cfg.Auth.AccessTokenSecret = "access-secret"
	cfg.Auth.RefreshTokenSecret = "refresh-secret"
	cfg.Auth.AccessTokenTTL = 30 * time.Minute
	cfg.Auth.RefreshTokenTTL = time.Hour
	cfg.Auth.CookieSecure = true
	cfg.Redis.CacheTTL = time.Second

	db, err := database.Open(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "app.db"), database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	srv := NewServer(Deps{
		Config:  cfg,
		DB:      db,
		Cache:   cache.Noop{},
		Uploads: store,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, srv.Auth.EnsureAdmin(context.Background(), adminEmail, adminPassword))
	return srv
}

func do(t *testing.T, srv *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Engine.ServeHTTP(rec, req)
	return rec
}

func sessionCookies(t *testing.T, rec *httptest.ResponseRecorder) (access, refresh *http.Cookie) {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "accessToken":
			access = c
		case "refreshToken":
			refresh = c
		}
	}
	require.NotNil(t, access, "accessToken cookie missing")
	require.NotNil(t, refresh, "refreshToken cookie missing")
	return access, refresh
}

func loginAs(t *testing.T, srv *Server, email, password string) (access, refresh *http.Cookie) {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/login-user", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookies(t, rec)
}

func TestProbes(t *testing.T) {
	srv := newTestServer(t, "")

	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/live", nil).Code)

	rec := do(t, srv, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
}

func TestCORSPreflightAllowsCredentials(t *testing.T) {
	srv := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/login-user", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Engine.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRefreshRotationAndSingleSession(t *testing.T) {
	srv := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/register-user", gin.H{
		"fname": "Ada", "lname": "Lovelace", "email": "ada@example.com",
		"password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	_, firstRefresh := loginAs(t, srv, "ada@example.com", "secret1")

	// refresh ротирует пару
	rec = do(t, srv, http.MethodGet, "/refresh", nil, firstRefresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, rotated := sessionCookies(t, rec)
	assert.NotEqual(t, firstRefresh.Value, rotated.Value)

	rec = do(t, srv, http.MethodGet, "/refresh", nil, firstRefresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// новый логин вытесняет прежний refresh токен
	_, second := loginAs(t, srv, "ada@example.com", "secret1")
	rec = do(t, srv, http.MethodGet, "/refresh", nil, rotated)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodGet, "/me", nil, second)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAdminGating(t *testing.T) {
	srv := newTestServer(t, "")

	rec := do(t, srv, http.MethodGet, "/fetch-social-task", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/register-user", gin.H{
		"fname": "Bob", "lname": "Smith", "email": "bob@example.com",
		"password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	access, _ := loginAs(t, srv, "bob@example.com", "secret1")
	for _, path := range []string{"/fetch-social-task", "/fetch-daily-task", "/fetch-users", "/fetch-annoucements", "/fetch-telegram-users"} {
		rec = do(t, srv, http.MethodGet, path, nil, access)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}

	admin, _ := loginAs(t, srv, adminEmail, adminPassword)
	rec = do(t, srv, http.MethodGet, "/fetch-users", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "bob@example.com")
	assert.NotContains(t, rec.Body.String(), adminEmail)
}

func TestSocialTaskPriorityConflict(t *testing.T) {
	srv := newTestServer(t, "")
	admin, _ := loginAs(t, srv, adminEmail, adminPassword)

	task := gin.H{"title": "Follow", "img": "https://cdn.example.com/x.png", "link": "https://x.com/example", "priority": 1, "reward": 100}
	rec := do(t, srv, http.MethodPost, "/create-social-task", task, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/create-social-task", task, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// у дейли своя нумерация приоритетов
	rec = do(t, srv, http.MethodPost, "/create-daily-task", task, admin)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>console</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	srv := newTestServer(t, dir)

	rec := do(t, srv, http.MethodGet, "/app.js", nil)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/dashboard/tasks", nil)
	assert.Contains(t, rec.Body.String(), "console")
	assert.NotContains(t, rec.Body.String(), "console.log")
}
