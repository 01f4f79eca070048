package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/features/announcement/models"
	"engagement-admin-backend/internal/features/announcement/repository/gormrepo"
	"engagement-admin-backend/internal/features/announcement/service"
	userModels "engagement-admin-backend/internal/features/user/models"
	"engagement-admin-backend/internal/platform/database/dbtest"
	"engagement-admin-backend/internal/platform/uploads"
)

const pixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func newEngine(t *testing.T) (*gin.Engine, *uploads.Store) {
	gin.SetMode(gin.TestMode)

	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)
	svc := service.NewAnnouncementService(gormrepo.NewGormRepository(dbtest.New(t)), store, zerolog.Nop())

	r := gin.New()
	r.Use(middleware.ErrorHandler(zerolog.Nop()), middleware.HandleErrors(zerolog.Nop()))
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, "admin", "root@example.com", userModels.RoleAdmin)
	})
	NewAnnouncementHandler(svc, store, 1<<20).RegisterRoutes(&r.RouterGroup)
	return r, store
}

func multipartCreate(t *testing.T, r *gin.Engine, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "banner.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/create-annoucement", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sendJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func fields(title, status string) map[string]string {
	return map[string]string{
		"title": title, "subtitle": "Weekly", "description": "Claim your bonus",
		"reward": "250", "imageName": "banner", "status": status,
	}
}

func TestCreateAndToggleAnnouncements(t *testing.T) {
	r, store := newEngine(t)
	png, err := base64.StdEncoding.DecodeString(pixel)
	require.NoError(t, err)

	rec := multipartCreate(t, r, fields("First", "true"), png)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Announcement models.Announcement `json:"announcement"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(250), created.Announcement.Reward)
	assert.True(t, created.Announcement.Status)
	_, err = os.Stat(filepath.Join(store.Dir(), filepath.Base(created.Announcement.Image)))
	require.NoError(t, err)

	rec = multipartCreate(t, r, fields("Second", "true"), png)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = multipartCreate(t, r, fields("Second", "false"), png)
	require.Equal(t, http.StatusCreated, rec.Code)
	var second struct {
		Announcement models.Announcement `json:"announcement"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	rec = sendJSON(r, http.MethodPost, "/toggle-annoucement", gin.H{"id": second.Announcement.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = sendJSON(r, http.MethodPost, "/toggle-annoucement", gin.H{"id": created.Announcement.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = sendJSON(r, http.MethodPost, "/toggle-annoucement", gin.H{"id": second.Announcement.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = sendJSON(r, http.MethodPut, "/update-annoucement", gin.H{
		"id": second.Announcement.ID, "updateData": gin.H{"title": "Renamed"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Renamed")

	rec = sendJSON(r, http.MethodGet, "/fetch-annoucements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.AnnouncementsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Announcements, 2)

	rec = sendJSON(r, http.MethodDelete, "/remove-annoucement/"+created.Announcement.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, err = os.Stat(filepath.Join(store.Dir(), filepath.Base(created.Announcement.Image)))
	assert.True(t, os.IsNotExist(err))
}

func TestCreateAnnouncementRequiresImage(t *testing.T) {
	r, _ := newEngine(t)

	rec := multipartCreate(t, r, fields("First", "false"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image")

	rec = multipartCreate(t, r, fields("First", "false"), []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
