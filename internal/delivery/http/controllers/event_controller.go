package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

// AddParticipantRequest is the request body for POST /api/events/{eventID}/participants
type AddParticipantRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (a AddParticipantRequest) Validate() []string {
	if strings.TrimSpace(a.UserID) == "" {
		return []string{"user_id is required"}
	}
	return nil
}

// EventListSuccessResponse is the success response envelope for GET /api/events (200).
type EventListSuccessResponse struct {
	Data  []*domain.EventDetails `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// EventSuccessResponse is the success response envelope for event create/update.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventController handles event CRUD, participants, and the spreadsheet export.
type EventController struct {
	Logger        *slog.Logger
	Service       domain.EventService
	MaxUploadSize int64
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService, maxUploadSize int64) *EventController {
	return &EventController{Logger: logger, Service: svc, MaxUploadSize: maxUploadSize}
}

// List godoc
// @Summary List events
// @Description Returns all events with organizers, invitations, schedule items, and photos expanded.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Create godoc
// @Summary Create an event
// @Description Multipart form with name, start_date_time, end_date_time (RFC 3339), address, optional organizer_ids (comma separated), and an optional photo file. The caller becomes an organizer.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Event name"
// @Param start_date_time formData string true "Start (RFC 3339)"
// @Param end_date_time formData string true "End (RFC 3339)"
// @Param address formData string true "Address"
// @Param organizer_ids formData string false "Additional organizer ids, comma separated"
// @Param photo formData file false "Cover photo"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(c.MaxUploadSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	start, err := parseFormTime(r, "start_date_time")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	end, err := parseFormTime(r, "end_date_time")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	in := domain.CreateEventInput{
		Name:          r.FormValue("name"),
		StartDateTime: start,
		EndDateTime:   end,
		Address:       r.FormValue("address"),
		OrganizerIDs:  splitIDs(r.FormValue("organizer_ids")),
		ActorID:       user.ID,
	}

	photo, cleanup, err := formPhoto(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if cleanup != nil {
		defer cleanup()
	}
	in.Photo = photo

	event, err := c.Service.Create(r.Context(), in)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update an event
// @Description Multipart form; all fields optional. Include a photo file with replace_photo=true to swap the cover photo. Caller must be an organizer of the event.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param name formData string false "Event name"
// @Param start_date_time formData string false "Start (RFC 3339)"
// @Param end_date_time formData string false "End (RFC 3339)"
// @Param address formData string false "Address"
// @Param replace_photo formData string false "Set to true to replace the cover photo"
// @Param photo formData file false "Replacement photo"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")

	if err := r.ParseMultipartForm(c.MaxUploadSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	var in domain.UpdateEventInput
	if v := r.FormValue("name"); v != "" {
		in.Patch.Name = &v
	}
	if v := r.FormValue("address"); v != "" {
		in.Patch.Address = &v
	}
	if r.FormValue("start_date_time") != "" {
		start, err := parseFormTime(r, "start_date_time")
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		in.Patch.StartDateTime = &start
	}
	if r.FormValue("end_date_time") != "" {
		end, err := parseFormTime(r, "end_date_time")
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		in.Patch.EndDateTime = &end
	}
	in.ReplacePhoto = strings.EqualFold(r.FormValue("replace_photo"), "true")

	photo, cleanup, err := formPhoto(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if cleanup != nil {
		defer cleanup()
	}
	in.Photo = photo

	event, err := c.Service.Update(r.Context(), eventID, user.ID, in)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Removes the event and all dependent records; photo files are unlinked best-effort. Caller must be an organizer of the event.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), r.PathValue("eventID"), user.ID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// Export godoc
// @Summary Export events as a spreadsheet
// @Description Returns all events as an .xlsx attachment with one row per event.
// @Tags events
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "events.xlsx"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/export [get]
func (c *EventController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := c.Service.ExportExcel(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="events.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// AddParticipant godoc
// @Summary Add a participant to an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AddParticipantRequest true "User to add"
// @Success 201 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *EventController) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.AddParticipant(r.Context(), r.PathValue("eventID"), req.UserID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, map[string]string{"message": "participant added"})
}

// ListParticipants godoc
// @Summary List an event's participants
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the participants"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *EventController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := c.Service.ListParticipants(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}

// RemoveParticipant godoc
// @Summary Remove a participant from an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{userID} [delete]
func (c *EventController) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.RemoveParticipant(r.Context(), r.PathValue("eventID"), r.PathValue("userID")); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "participant removed"})
}

func parseFormTime(r *http.Request, field string) (time.Time, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be RFC 3339", field)
	}
	return t, nil
}

func splitIDs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// formPhoto extracts the optional "photo" file from a parsed multipart form.
// The returned cleanup closes the underlying file and must be deferred when
// non-nil.
func formPhoto(r *http.Request) (*domain.PhotoUpload, func(), error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("invalid photo upload: %w", err)
	}
	upload := &domain.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	return upload, func() { file.Close() }, nil
}
