package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

func newScheduleFixture(t *testing.T) (domain.ScheduleService, *fakeScheduleRepo, *domain.Event) {
	t.Helper()
	scheduleRepo := newFakeScheduleRepo()
	eventRepo := newFakeEventRepo()
	event := &domain.Event{Name: "Summer Wedding"}
	require.NoError(t, eventRepo.Create(context.Background(), event))
	return NewScheduleService(scheduleRepo, eventRepo, 2*time.Second), scheduleRepo, event
}

func TestScheduleService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	t.Run("success", func(t *testing.T) {
		svc, _, event := newScheduleFixture(t)

		item := &domain.ScheduleItem{
			EventID:   event.ID,
			Title:     "Ceremony",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}
		require.NoError(t, svc.Create(ctx, item))
		assert.NotEmpty(t, item.ID)
	})

	t.Run("start not before end rejected without write", func(t *testing.T) {
		svc, repo, event := newScheduleFixture(t)

		item := &domain.ScheduleItem{
			EventID:   event.ID,
			Title:     "Ceremony",
			StartTime: start,
			EndTime:   start,
		}
		assert.ErrorIs(t, svc.Create(ctx, item), domain.ErrInvalidInput)
		assert.Empty(t, repo.byID)
	})

	t.Run("unknown event not found", func(t *testing.T) {
		svc, _, _ := newScheduleFixture(t)

		item := &domain.ScheduleItem{
			EventID:   "nonexistent",
			Title:     "Ceremony",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		}
		assert.ErrorIs(t, svc.Create(ctx, item), domain.ErrNotFound)
	})
}

func TestScheduleService_Update(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	t.Run("effective times validated before write", func(t *testing.T) {
		svc, _, event := newScheduleFixture(t)
		item := &domain.ScheduleItem{EventID: event.ID, Title: "Ceremony", StartTime: start, EndTime: start.Add(time.Hour)}
		require.NoError(t, svc.Create(ctx, item))

		// New start collides with the existing end.
		badStart := start.Add(2 * time.Hour)
		_, err := svc.Update(ctx, item.ID, domain.ScheduleItemPatch{StartTime: &badStart})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		// Unchanged in storage.
		stored, err := svc.Update(ctx, item.ID, domain.ScheduleItemPatch{})
		require.NoError(t, err)
		assert.Equal(t, start.Unix(), stored.StartTime.Unix())
	})

	t.Run("patch applies provided fields", func(t *testing.T) {
		svc, _, event := newScheduleFixture(t)
		item := &domain.ScheduleItem{EventID: event.ID, Title: "Ceremony", StartTime: start, EndTime: start.Add(time.Hour)}
		require.NoError(t, svc.Create(ctx, item))

		title := "Reception"
		updated, err := svc.Update(ctx, item.ID, domain.ScheduleItemPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Reception", updated.Title)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newScheduleFixture(t)
		_, err := svc.Update(ctx, "nonexistent", domain.ScheduleItemPatch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestScheduleService_Delete(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour)

	svc, repo, event := newScheduleFixture(t)
	item := &domain.ScheduleItem{EventID: event.ID, Title: "Ceremony", StartTime: start, EndTime: start.Add(time.Hour)}
	require.NoError(t, svc.Create(ctx, item))

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.Empty(t, repo.byID)
	assert.ErrorIs(t, svc.Delete(ctx, item.ID), domain.ErrNotFound)
}
