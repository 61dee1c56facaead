package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

type mockEventService struct {
	events []*domain.EventDetails
	event  *domain.Event
	export []byte
	err    error

	lastCreate domain.CreateEventInput
	lastUpdate domain.UpdateEventInput
}

func (m *mockEventService) List(ctx context.Context) ([]*domain.EventDetails, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockEventService) Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	m.lastCreate = in
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) Update(ctx context.Context, eventID, actorID string, in domain.UpdateEventInput) (*domain.Event, error) {
	m.lastUpdate = in
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) Delete(ctx context.Context, eventID, actorID string) error {
	return m.err
}

func (m *mockEventService) ExportExcel(ctx context.Context) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.export, nil
}

func (m *mockEventService) AddParticipant(ctx context.Context, eventID, userID string) error {
	return m.err
}

func (m *mockEventService) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

func (m *mockEventService) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	return m.err
}

// eventForm builds a multipart body from the given fields, optionally with a
// small JPEG-typed photo part.
func eventForm(t *testing.T, fields map[string]string, withPhoto bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withPhoto {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="cover.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create photo part: %v", err)
		}
		if _, err := io.WriteString(part, "jpeg-bytes"); err != nil {
			t.Fatalf("write photo part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestEventController_Create_Success(t *testing.T) {
	svc := &mockEventService{event: &domain.Event{ID: "e1", Name: "Garden Party"}}
	ctrl := NewEventController(testLogger(), svc, 10<<20)

	body, contentType := eventForm(t, map[string]string{
		"name":            "Garden Party",
		"start_date_time": "2026-06-01T14:00:00Z",
		"end_date_time":   "2026-06-01T22:00:00Z",
		"address":         "12 Rose Lane",
		"organizer_ids":   "org-2, org-3",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/events", body)
	req.Header.Set("Content-Type", contentType)
	ctx := middleware.SetUser(req.Context(), &domain.User{ID: "u1", Role: domain.RoleOrganizer})
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	ctrl.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	if svc.lastCreate.ActorID != "u1" {
		t.Fatalf("expected actor u1, got %q", svc.lastCreate.ActorID)
	}
	if len(svc.lastCreate.OrganizerIDs) != 2 || svc.lastCreate.OrganizerIDs[0] != "org-2" {
		t.Fatalf("unexpected organizer ids: %v", svc.lastCreate.OrganizerIDs)
	}
	if svc.lastCreate.Photo == nil || svc.lastCreate.Photo.Filename != "cover.jpg" {
		t.Fatalf("expected photo upload, got %+v", svc.lastCreate.Photo)
	}
}

func TestEventController_Create_Unauthorized(t *testing.T) {
	ctrl := NewEventController(testLogger(), &mockEventService{}, 10<<20)

	body, contentType := eventForm(t, map[string]string{"name": "Garden Party"}, false)
	req := httptest.NewRequest(http.MethodPost, "/api/events", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	ctrl.Create(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestEventController_Create_BadStartTime(t *testing.T) {
	ctrl := NewEventController(testLogger(), &mockEventService{}, 10<<20)

	body, contentType := eventForm(t, map[string]string{
		"name":            "Garden Party",
		"start_date_time": "01.06.2026 14:00",
		"end_date_time":   "2026-06-01T22:00:00Z",
		"address":         "12 Rose Lane",
	}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/events", body)
	req.Header.Set("Content-Type", contentType)
	ctx := middleware.SetUser(req.Context(), &domain.User{ID: "u1", Role: domain.RoleOrganizer})
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	ctrl.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_Update_Forbidden(t *testing.T) {
	svc := &mockEventService{err: domain.ErrForbidden}
	ctrl := NewEventController(testLogger(), svc, 10<<20)

	body, contentType := eventForm(t, map[string]string{"name": "New Name"}, false)
	req := httptest.NewRequest(http.MethodPut, "/api/events/e1", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("eventID", "e1")
	ctx := middleware.SetUser(req.Context(), &domain.User{ID: "outsider", Role: domain.RoleOrganizer})
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	ctrl.Update(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestEventController_Update_ReplacePhotoFlag(t *testing.T) {
	svc := &mockEventService{event: &domain.Event{ID: "e1"}}
	ctrl := NewEventController(testLogger(), svc, 10<<20)

	body, contentType := eventForm(t, map[string]string{"replace_photo": "true"}, true)
	req := httptest.NewRequest(http.MethodPut, "/api/events/e1", body)
	req.Header.Set("Content-Type", contentType)
	req.SetPathValue("eventID", "e1")
	ctx := middleware.SetUser(req.Context(), &domain.User{ID: "u1", Role: domain.RoleOrganizer})
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	ctrl.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !svc.lastUpdate.ReplacePhoto || svc.lastUpdate.Photo == nil {
		t.Fatalf("expected replace photo with upload, got %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Patch.Name != nil {
		t.Fatalf("expected no name patch, got %v", *svc.lastUpdate.Patch.Name)
	}
}

func TestEventController_Export_Headers(t *testing.T) {
	svc := &mockEventService{export: []byte("xlsx-bytes")}
	ctrl := NewEventController(testLogger(), svc, 10<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/events/export", nil)
	w := httptest.NewRecorder()

	ctrl.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "events.xlsx") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestEventController_AddParticipant_Conflict(t *testing.T) {
	svc := &mockEventService{err: domain.ErrAlreadyParticipant}
	ctrl := NewEventController(testLogger(), svc, 10<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/events/e1/participants", strings.NewReader(`{"user_id":"u2"}`))
	req.SetPathValue("eventID", "e1")
	w := httptest.NewRecorder()

	ctrl.AddParticipant(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestEventController_RemoveParticipant_NotAMember(t *testing.T) {
	svc := &mockEventService{err: domain.ErrInvalidInput}
	ctrl := NewEventController(testLogger(), svc, 10<<20)

	req := httptest.NewRequest(http.MethodDelete, "/api/events/e1/participants/u2", nil)
	req.SetPathValue("eventID", "e1")
	req.SetPathValue("userID", "u2")
	w := httptest.NewRecorder()

	ctrl.RemoveParticipant(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
