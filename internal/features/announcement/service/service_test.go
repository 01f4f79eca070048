package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/features/announcement/models"
	"engagement-admin-backend/internal/features/announcement/repository/gormrepo"
	"engagement-admin-backend/internal/platform/database/dbtest"
)

type recordingRemover struct {
	removed []string
}

func (r *recordingRemover) Remove(path string) error {
	r.removed = append(r.removed, path)
	return nil
}

func newService(t *testing.T) (AnnouncementService, *recordingRemover) {
	images := &recordingRemover{}
	repo := gormrepo.NewGormRepository(dbtest.New(t))
	return NewAnnouncementService(repo, images, zerolog.Nop()), images
}

func create(t *testing.T, s AnnouncementService, title string, status bool) *models.Announcement {
	t.Helper()
	a, err := s.Create(context.Background(), &models.CreateAnnouncementInput{
		Title: title, Subtitle: "sub", Description: "desc", Reward: 10,
		Image: "/uploads/" + title + ".png", Status: status,
	})
	require.NoError(t, err)
	return a
}

func activeCount(t *testing.T, s AnnouncementService) int {
	t.Helper()
	list, err := s.List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, a := range list {
		if a.Status {
			n++
		}
	}
	return n
}

func TestToggleSingleton(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	a := create(t, s, "a", false)
	b := create(t, s, "b", false)

	toggled, err := s.ToggleStatus(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Status)

	// b cannot be activated while a is active; nothing changes
	_, err = s.ToggleStatus(ctx, b.ID)
	require.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	assert.Contains(t, err.Error(), "another announcement is already active")
	assert.Equal(t, 1, activeCount(t, s))

	toggled, err = s.ToggleStatus(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Status)
	assert.Equal(t, 0, activeCount(t, s))

	toggled, err = s.ToggleStatus(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Status)
	assert.Equal(t, 1, activeCount(t, s))

	_, err = s.ToggleStatus(ctx, "missing")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestCreateActiveObeysSingleton(t *testing.T) {
	s, images := newService(t)
	ctx := context.Background()

	create(t, s, "a", true)

	_, err := s.Create(ctx, &models.CreateAnnouncementInput{
		Title: "b", Subtitle: "sub", Description: "desc", Image: "/uploads/b.png", Status: true,
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	assert.Equal(t, []string{"/uploads/b.png"}, images.removed)
	assert.Equal(t, 1, activeCount(t, s))
}

func TestCreateValidation(t *testing.T) {
	s, images := newService(t)

	_, err := s.Create(context.Background(), &models.CreateAnnouncementInput{
		Subtitle: "sub", Description: "desc", Image: "/uploads/x.png",
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Equal(t, []string{"/uploads/x.png"}, images.removed)

	_, err = s.Create(context.Background(), &models.CreateAnnouncementInput{
		Title: "t", Subtitle: "sub", Description: "desc", Image: "/uploads/y.png", Reward: -5,
	})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
}

func TestUpdate(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	a := create(t, s, "a", true)
	b := create(t, s, "b", false)

	title := "b2"
	updated, err := s.Update(ctx, b.ID, &models.AnnouncementPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "b2", updated.Title)
	assert.Equal(t, "sub", updated.Subtitle)

	on := true
	_, err = s.Update(ctx, b.ID, &models.AnnouncementPatch{Status: &on})
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
	assert.Equal(t, 1, activeCount(t, s))

	// re-asserting the active one is fine
	_, err = s.Update(ctx, a.ID, &models.AnnouncementPatch{Status: &on})
	assert.NoError(t, err)

	empty := " "
	_, err = s.Update(ctx, a.ID, &models.AnnouncementPatch{Subtitle: &empty})
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = s.Update(ctx, "missing", &models.AnnouncementPatch{Title: &title})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}

func TestDeleteRemovesImage(t *testing.T) {
	s, images := newService(t)
	ctx := context.Background()

	a := create(t, s, "a", false)

	deleted, err := s.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)
	assert.Equal(t, []string{"/uploads/a.png"}, images.removed)

	_, err = s.Delete(ctx, a.ID)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
