package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weddingplanner/internal/domain"
)

type mockScheduleService struct {
	items []*domain.ScheduleItem
	item  *domain.ScheduleItem
	err   error

	lastPatch domain.ScheduleItemPatch
}

func (m *mockScheduleService) Create(ctx context.Context, item *domain.ScheduleItem) error {
	if m.err != nil {
		return m.err
	}
	item.ID = "s1"
	return nil
}

func (m *mockScheduleService) List(ctx context.Context) ([]*domain.ScheduleItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockScheduleService) Update(ctx context.Context, id string, patch domain.ScheduleItemPatch) (*domain.ScheduleItem, error) {
	m.lastPatch = patch
	if m.err != nil {
		return nil, m.err
	}
	return m.item, nil
}

func (m *mockScheduleService) Delete(ctx context.Context, id string) error {
	return m.err
}

func TestScheduleController_Create_Success(t *testing.T) {
	svc := &mockScheduleService{}
	ctrl := NewScheduleController(testLogger(), svc)

	body := `{"event_id":"e1","title":"Ceremony","description":"Main hall","start_time":"2026-06-01T14:00:00Z","end_time":"2026-06-01T15:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/schedule-items", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var resp ScheduleItemSuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data == nil || resp.Data.ID != "s1" {
		t.Fatalf("expected created item with id s1, got %+v", resp.Data)
	}
}

func TestScheduleController_Create_StartAfterEnd(t *testing.T) {
	ctrl := NewScheduleController(testLogger(), &mockScheduleService{})

	body := `{"event_id":"e1","title":"Ceremony","start_time":"2026-06-01T16:00:00Z","end_time":"2026-06-01T15:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/schedule-items", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestScheduleController_Create_MissingTitle(t *testing.T) {
	ctrl := NewScheduleController(testLogger(), &mockScheduleService{})

	body := `{"event_id":"e1","title":"  ","start_time":"2026-06-01T14:00:00Z","end_time":"2026-06-01T15:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/schedule-items", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestScheduleController_Update_PartialPatch(t *testing.T) {
	start := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	svc := &mockScheduleService{
		item: &domain.ScheduleItem{ID: "s1", EventID: "e1", Title: "Reception", StartTime: start},
	}
	ctrl := NewScheduleController(testLogger(), svc)

	body := `{"title":"Reception"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/schedule-items/s1", strings.NewReader(body))
	req.SetPathValue("id", "s1")
	w := httptest.NewRecorder()

	ctrl.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.lastPatch.Title == nil || *svc.lastPatch.Title != "Reception" {
		t.Fatalf("expected title patch, got %+v", svc.lastPatch)
	}
	if svc.lastPatch.StartTime != nil || svc.lastPatch.EndTime != nil {
		t.Fatalf("expected times untouched, got %+v", svc.lastPatch)
	}
}

func TestScheduleController_Update_EmptyTitle(t *testing.T) {
	ctrl := NewScheduleController(testLogger(), &mockScheduleService{})

	body := `{"title":""}`
	req := httptest.NewRequest(http.MethodPatch, "/api/schedule-items/s1", strings.NewReader(body))
	req.SetPathValue("id", "s1")
	w := httptest.NewRecorder()

	ctrl.Update(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestScheduleController_Delete_NotFound(t *testing.T) {
	svc := &mockScheduleService{err: domain.ErrNotFound}
	ctrl := NewScheduleController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/schedule-items/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	ctrl.Delete(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
