package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

type photoServiceFixture struct {
	svc       domain.PhotoService
	photoRepo *fakePhotoRepo
	eventRepo *fakeEventRepo
	fileStore *fakeFileStore
}

func newPhotoServiceFixture(t *testing.T) (*photoServiceFixture, *domain.Event) {
	t.Helper()
	f := &photoServiceFixture{
		photoRepo: newFakePhotoRepo(),
		eventRepo: newFakeEventRepo(),
		fileStore: newFakeFileStore(),
	}
	f.svc = NewPhotoService(f.photoRepo, f.eventRepo, f.fileStore, 10<<20, slog.Default(), 2*time.Second)
	event := &domain.Event{Name: "Summer Wedding"}
	require.NoError(t, f.eventRepo.Create(context.Background(), event))
	return f, event
}

func upload(name string) *domain.PhotoUpload {
	return &domain.PhotoUpload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        3,
		Content:     strings.NewReader("jpg"),
	}
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("each upload takes the front position", func(t *testing.T) {
		f, event := newPhotoServiceFixture(t)

		first, err := f.svc.Upload(ctx, event.ID, "user-1", upload("one.jpg"))
		require.NoError(t, err)
		second, err := f.svc.Upload(ctx, event.ID, "user-2", upload("two.jpg"))
		require.NoError(t, err)

		assert.Equal(t, 0, second.Position)
		photos, err := f.svc.ListByEvent(ctx, event.ID)
		require.NoError(t, err)
		require.Len(t, photos, 2)
		assert.Equal(t, second.ID, photos[0].ID)
		assert.Equal(t, first.ID, photos[1].ID)
		assert.Equal(t, 1, photos[1].Position)
	})

	t.Run("non-image rejected", func(t *testing.T) {
		f, event := newPhotoServiceFixture(t)

		u := upload("notes.txt")
		u.ContentType = "text/plain"
		_, err := f.svc.Upload(ctx, event.ID, "user-1", u)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, f.fileStore.saved)
	})

	t.Run("oversized upload rejected", func(t *testing.T) {
		f, event := newPhotoServiceFixture(t)

		u := upload("huge.jpg")
		u.Size = 11 << 20
		_, err := f.svc.Upload(ctx, event.ID, "user-1", u)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown event not found", func(t *testing.T) {
		f, _ := newPhotoServiceFixture(t)

		_, err := f.svc.Upload(ctx, "nonexistent", "user-1", upload("one.jpg"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("row insert failure removes the saved file", func(t *testing.T) {
		f, event := newPhotoServiceFixture(t)
		f.photoRepo.insertErr = errors.New("insert failed")

		_, err := f.svc.Upload(ctx, event.ID, "user-1", upload("one.jpg"))
		require.Error(t, err)
		assert.Len(t, f.fileStore.removed, 1)
	})
}

func TestPhotoService_Delete(t *testing.T) {
	ctx := context.Background()

	f, event := newPhotoServiceFixture(t)
	photo, err := f.svc.Upload(ctx, event.ID, "user-1", upload("one.jpg"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, photo.ID))
	assert.Contains(t, f.fileStore.removed, photo.FilePath)
	assert.ErrorIs(t, f.svc.Delete(ctx, photo.ID), domain.ErrNotFound)
}
