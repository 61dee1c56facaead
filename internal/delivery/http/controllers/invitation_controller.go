package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

// CreateInvitationsRequest is the request body for POST /api/invitations
type CreateInvitationsRequest struct {
	EventID  string           `json:"event_id"`
	Invitees []domain.Invitee `json:"invitees"`
}

// Validate implements Validator.
func (c CreateInvitationsRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if len(c.Invitees) == 0 {
		errs = append(errs, "at least one invitee is required")
	}
	for _, inv := range c.Invitees {
		if !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(inv.Email))) {
			errs = append(errs, "invalid invitee email: "+inv.Email)
		}
	}
	return errs
}

// InvitationListSuccessResponse is the success response envelope for invitation creation.
type InvitationListSuccessResponse struct {
	Data  []*domain.Invitation `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ExpandedInvitationListSuccessResponse is the success response envelope for GET /api/invitations (200).
type ExpandedInvitationListSuccessResponse struct {
	Data  []*domain.ExpandedInvitation `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// InvitationController handles the invitation lifecycle endpoints.
type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

// NewInvitationController creates an InvitationController with the given logger and service.
func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{Logger: logger, Service: svc}
}

// Create godoc
// @Summary Invite people to an event
// @Description Creates one pending invitation per invitee and emails each a confirmation link. Invitations created before a failure are kept.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInvitationsRequest true "Event and invitees"
// @Success 201 {object} controllers.InvitationListSuccessResponse "data contains the created invitations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations [post]
func (c *InvitationController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.CreateBatch(r.Context(), req.EventID, req.Invitees)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// List godoc
// @Summary List invitations
// @Description Returns all invitations with their event and, when confirmed, the linked user expanded.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ExpandedInvitationListSuccessResponse "data contains the invitations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations [get]
func (c *InvitationController) List(w http.ResponseWriter, r *http.Request) {
	invitations, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invitations)
}

// Confirm godoc
// @Summary Confirm an invitation
// @Description Marks the invitation confirmed and adds the authenticated user to the event's participants. Confirming twice is harmless.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} helpers.APIResponse "data contains the invitation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/confirm/{token} [post]
func (c *InvitationController) Confirm(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	inv, err := c.Service.Confirm(r.Context(), r.PathValue("token"), user.ID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// Decline godoc
// @Summary Decline an invitation
// @Description Public endpoint reached from the invitation email; no account required.
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} helpers.APIResponse "data contains the invitation"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/decline/{token} [get]
func (c *InvitationController) Decline(w http.ResponseWriter, r *http.Request) {
	inv, err := c.Service.Decline(r.Context(), r.PathValue("token"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// Details godoc
// @Summary Invitation details
// @Description Public projection shown on the confirmation page: event name, invitee email, and status.
// @Tags invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} helpers.APIResponse "data contains the details"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{token}/details [get]
func (c *InvitationController) Details(w http.ResponseWriter, r *http.Request) {
	details, err := c.Service.Details(r.Context(), r.PathValue("token"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}
