package controllers

import (
	"log/slog"
	"net/http"

	"weddingplanner/internal/delivery/http/helpers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

// PhotoSuccessResponse is the success response envelope for POST /api/events/{eventID}/photos (201).
type PhotoSuccessResponse struct {
	Data  *domain.Photo     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PhotoController handles photo upload and listing endpoints.
type PhotoController struct {
	Logger        *slog.Logger
	Service       domain.PhotoService
	MaxUploadSize int64
}

// NewPhotoController creates a PhotoController with the given logger and service.
func NewPhotoController(logger *slog.Logger, svc domain.PhotoService, maxUploadSize int64) *PhotoController {
	return &PhotoController{Logger: logger, Service: svc, MaxUploadSize: maxUploadSize}
}

// Upload godoc
// @Summary Upload a photo to an event
// @Description Multipart form with a required "photo" image file. The new photo takes the front position of the event's gallery.
// @Tags photos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param photo formData file true "Image file"
// @Success 201 {object} controllers.PhotoSuccessResponse "data contains the photo"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/photos [post]
func (c *PhotoController) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(c.MaxUploadSize); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	upload, cleanup, err := formPhoto(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if upload == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "photo file is required")
		return
	}
	defer cleanup()

	photo, err := c.Service.Upload(r.Context(), r.PathValue("eventID"), user.ID, upload)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, photo)
}

// List godoc
// @Summary List all photos
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the photos"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /photos [get]
func (c *PhotoController) List(w http.ResponseWriter, r *http.Request) {
	photos, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, photos)
}

// ListByEvent godoc
// @Summary List an event's photos
// @Description Returns the event's photos front first.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the photos"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /photos/events/{eventID}/photos [get]
func (c *PhotoController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	photos, err := c.Service.ListByEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, photos)
}

// Delete godoc
// @Summary Delete a photo
// @Description Removes the photo row; the file on disk is unlinked best-effort.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param photoID path string true "Photo ID"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /photos/{photoID} [delete]
func (c *PhotoController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Delete(r.Context(), r.PathValue("photoID")); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "photo deleted"})
}
