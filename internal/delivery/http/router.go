package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddingplanner/internal/delivery/http/controllers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/domain"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Logger        *slog.Logger
	TokenVerifier domain.TokenVerifier
	UserRepo      domain.UserRepository
	UploadsDir    string

	Auth        *controllers.AuthController
	Events      *controllers.EventController
	Invitations *controllers.InvitationController
	Schedule    *controllers.ScheduleController
	Photos      *controllers.PhotoController
	Users       *controllers.UserController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(d.TokenVerifier, d.UserRepo, d.Logger)
	organizerOnly := middleware.RequireRole(domain.RoleOrganizer)

	// Auth
	mux.HandleFunc("POST /api/auth/signup", d.Auth.SignUp)
	mux.HandleFunc("POST /api/auth/login", d.Auth.Login)
	mux.HandleFunc("POST /api/auth/reset-password", d.Auth.ResetPassword)
	mux.HandleFunc("POST /api/auth/reset-password/confirm", d.Auth.ResetPasswordConfirm)

	// Events
	mux.HandleFunc("GET /api/events", auth(d.Events.List))
	mux.HandleFunc("POST /api/events", auth(organizerOnly(d.Events.Create)))
	mux.HandleFunc("PUT /api/events/{eventID}", auth(organizerOnly(d.Events.Update)))
	mux.HandleFunc("DELETE /api/events/{eventID}", auth(organizerOnly(d.Events.Delete)))
	mux.HandleFunc("GET /api/events/export", auth(d.Events.Export))

	// Participants
	mux.HandleFunc("POST /api/events/{eventID}/participants", auth(d.Events.AddParticipant))
	mux.HandleFunc("GET /api/events/{eventID}/participants", auth(d.Events.ListParticipants))
	mux.HandleFunc("DELETE /api/events/{eventID}/participants/{userID}", auth(d.Events.RemoveParticipant))

	// Invitations; decline and details are public links reached from the email.
	mux.HandleFunc("POST /api/invitations", auth(organizerOnly(d.Invitations.Create)))
	mux.HandleFunc("GET /api/invitations", auth(d.Invitations.List))
	mux.HandleFunc("POST /api/invitations/confirm/{token}", auth(d.Invitations.Confirm))
	mux.HandleFunc("GET /api/invitations/decline/{token}", d.Invitations.Decline)
	mux.HandleFunc("GET /api/invitations/{token}/details", d.Invitations.Details)

	// Schedule items
	mux.HandleFunc("GET /api/schedule-items", auth(d.Schedule.List))
	mux.HandleFunc("POST /api/schedule-items", auth(d.Schedule.Create))
	mux.HandleFunc("PATCH /api/schedule-items/{id}", auth(d.Schedule.Update))
	mux.HandleFunc("DELETE /api/schedule-items/{id}", auth(d.Schedule.Delete))

	// Photos
	mux.HandleFunc("POST /api/events/{eventID}/photos", auth(d.Photos.Upload))
	mux.HandleFunc("GET /api/photos", auth(d.Photos.List))
	mux.HandleFunc("GET /api/photos/events/{eventID}/photos", auth(d.Photos.ListByEvent))
	mux.HandleFunc("DELETE /api/photos/{photoID}", auth(d.Photos.Delete))

	// Users
	mux.HandleFunc("GET /api/users", auth(d.Users.List))

	// Static photo files
	mux.Handle("GET /uploads/eventPhotos/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadsDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
