package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/features/task/models"
	"engagement-admin-backend/internal/features/task/repository/gormrepo"
	"engagement-admin-backend/internal/features/task/service"
	userModels "engagement-admin-backend/internal/features/user/models"
	"engagement-admin-backend/internal/platform/database/dbtest"
)

func newEngine(t *testing.T, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()), middleware.HandleErrors(zerolog.Nop()))
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, "u1", "u1@example.com", role)
	})

	for _, kind := range []models.Kind{models.KindSocial, models.KindDaily} {
		svc := service.NewTaskService(kind, gormrepo.NewGormRepository(db, kind), zerolog.Nop())
		NewTaskHandler(svc).RegisterRoutes(&r.RouterGroup)
	}
	return r
}

func send(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSocialTaskLifecycle(t *testing.T) {
	r := newEngine(t, userModels.RoleAdmin)

	body := gin.H{"img": "telegram", "link": "https://t.me/a", "priority": 1, "reward": 100, "title": "Join"}
	rec := send(r, http.MethodPost, "/create-social-task", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "telegram", created.Task.Image)

	body["title"] = "Another"
	rec = send(r, http.MethodPost, "/create-social-task", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "priority already taken")

	rec = send(r, http.MethodPost, "/create-daily-task", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	body["title"] = "Renamed"
	rec = send(r, http.MethodPost, "/update-social-task/"+created.Task.ID, body)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = send(r, http.MethodPut, "/update-social-task/"+created.Task.ID, body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = send(r, http.MethodGet, "/fetch-social-task", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.TasksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, "Renamed", list.Tasks[0].Title)

	rec = send(r, http.MethodDelete, "/delete-task/"+created.Task.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = send(r, http.MethodDelete, "/delete-social-task/"+created.Task.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskRoutesRequireAdmin(t *testing.T) {
	r := newEngine(t, userModels.RoleUser)

	rec := send(r, http.MethodGet, "/fetch-daily-task", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTaskBindingErrors(t *testing.T) {
	r := newEngine(t, userModels.RoleAdmin)

	rec := send(r, http.MethodPost, "/create-daily-task", gin.H{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
