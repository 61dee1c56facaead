package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weddingplanner/config"
	"weddingplanner/internal/adapters/auth"
	"weddingplanner/internal/adapters/email"
	"weddingplanner/internal/adapters/report"
	"weddingplanner/internal/adapters/storage"
	delivery "weddingplanner/internal/delivery/http"
	"weddingplanner/internal/delivery/http/controllers"
	"weddingplanner/internal/delivery/http/middleware"
	"weddingplanner/internal/repository/postgres"
	"weddingplanner/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title Wedding Planner API
// @version 1.0
// @description REST API for planning events: users, invitations, schedules, photos, and exports.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	scheduleRepo := postgres.NewScheduleItemRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)

	tokenCodec := auth.NewJWTCodec(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(12)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SESRegion,
			AccessKeyID:     cfg.Mailer.SESAccessKeyID,
			SecretAccessKey: cfg.Mailer.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	fileStore, err := storage.NewLocalFileStore(cfg.UploadsDir, cfg.BaseURL)
	if err != nil {
		logger.Error("failed to init file storage", "err", err)
		os.Exit(1)
	}
	reportWriter := report.NewExcelWriter()

	userService := services.NewUserService(userRepo, hasher, tokenCodec, cfg.TokenExpiry, cfg.ResetTokenExpiry, emailService, cfg.FrontendURL, serviceTimeout)
	eventService := services.NewEventService(eventRepo, participantRepo, invitationRepo, scheduleRepo, photoRepo, userRepo, fileStore, reportWriter, logger, serviceTimeout)
	invitationService := services.NewInvitationService(invitationRepo, eventRepo, participantRepo, userRepo, emailService, cfg.FrontendURL, serviceTimeout)
	scheduleService := services.NewScheduleService(scheduleRepo, eventRepo, serviceTimeout)
	photoService := services.NewPhotoService(photoRepo, eventRepo, fileStore, cfg.MaxUploadSize, logger, serviceTimeout)

	mux := delivery.NewRouter(delivery.RouterDeps{
		Logger:        logger,
		TokenVerifier: tokenCodec,
		UserRepo:      userRepo,
		UploadsDir:    cfg.UploadsDir,
		Auth:          controllers.NewAuthController(logger, userService),
		Events:        controllers.NewEventController(logger, eventService, cfg.MaxUploadSize),
		Invitations:   controllers.NewInvitationController(logger, invitationService),
		Schedule:      controllers.NewScheduleController(logger, scheduleService),
		Photos:        controllers.NewPhotoController(logger, photoService, cfg.MaxUploadSize),
		Users:         controllers.NewUserController(logger, userService),
	})

	handler := middleware.CORS(cfg.CORSOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
