package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/domain"
)

// CreateScheduleItemRequest is the request body for POST /api/schedule-items
type CreateScheduleItemRequest struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// Validate implements Validator.
func (c CreateScheduleItemRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.StartTime.IsZero() || c.EndTime.IsZero() {
		errs = append(errs, "start_time and end_time are required")
	} else if !c.StartTime.Before(c.EndTime) {
		errs = append(errs, "start_time must be before end_time")
	}
	return errs
}

// UpdateScheduleItemRequest is the request body for PATCH /api/schedule-items/{id}. All fields optional.
type UpdateScheduleItemRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

// Validate implements Validator.
func (u UpdateScheduleItemRequest) Validate() []string {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return []string{"title cannot be empty"}
	}
	return nil
}

// ScheduleItemSuccessResponse is the success response envelope for schedule item endpoints.
type ScheduleItemSuccessResponse struct {
	Data  *domain.ScheduleItem `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ScheduleController handles schedule item endpoints.
type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

// NewScheduleController creates a ScheduleController with the given logger and service.
func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Create a schedule item
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateScheduleItemRequest true "Schedule item"
// @Success 201 {object} controllers.ScheduleItemSuccessResponse "data contains the created item"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedule-items [post]
func (c *ScheduleController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item := &domain.ScheduleItem{
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := c.Service.Create(r.Context(), item); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

// List godoc
// @Summary List schedule items
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the schedule items"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedule-items [get]
func (c *ScheduleController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// Update godoc
// @Summary Update a schedule item
// @Description Applies the provided fields. The effective start must stay before the effective end.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Param body body UpdateScheduleItemRequest true "Fields to update"
// @Success 200 {object} controllers.ScheduleItemSuccessResponse "data contains the updated item"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedule-items/{id} [patch]
func (c *ScheduleController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	patch := domain.ScheduleItemPatch{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	item, err := c.Service.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete a schedule item
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule item ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedule-items/{id} [delete]
func (c *ScheduleController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "schedule item deleted"})
}
