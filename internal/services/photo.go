package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"weddingplanner/internal/domain"
)

type photoService struct {
	photoRepo      domain.PhotoRepository
	eventRepo      domain.EventRepository
	fileStore      domain.PhotoFileStore
	maxUploadSize  int64
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewPhotoService(
	photoRepo domain.PhotoRepository,
	eventRepo domain.EventRepository,
	fileStore domain.PhotoFileStore,
	maxUploadSize int64,
	logger *slog.Logger,
	timeout time.Duration,
) domain.PhotoService {
	return &photoService{
		photoRepo:      photoRepo,
		eventRepo:      eventRepo,
		fileStore:      fileStore,
		maxUploadSize:  maxUploadSize,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *photoService) Upload(ctx context.Context, eventID, userID string, upload *domain.PhotoUpload) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upload == nil || upload.Content == nil {
		return nil, fmt.Errorf("%w: photo file is required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, fmt.Errorf("%w: only image uploads are accepted", domain.ErrInvalidInput)
	}
	if s.maxUploadSize > 0 && upload.Size > s.maxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds the upload size limit", domain.ErrInvalidInput)
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	url, path, err := s.fileStore.Save(upload.Filename, upload.Content)
	if err != nil {
		return nil, fmt.Errorf("save photo file: %w", err)
	}
	photo := &domain.Photo{
		EventID:    eventID,
		UserID:     userID,
		PhotoURL:   url,
		FilePath:   path,
		UploadedAt: time.Now(),
	}
	if err := s.photoRepo.InsertFront(ctx, photo); err != nil {
		if removeErr := s.fileStore.Remove(path); removeErr != nil {
			s.logger.Warn("failed to remove orphaned photo file", "path", path, "error", removeErr)
		}
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return photo, nil
}

func (s *photoService) List(ctx context.Context) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	photos, err := s.photoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

func (s *photoService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	photos, err := s.photoRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

func (s *photoService) Delete(ctx context.Context, photoID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get photo: %w", err)
	}
	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete photo: %w", err)
	}
	if err := s.fileStore.Remove(photo.FilePath); err != nil {
		s.logger.Warn("failed to remove photo file", "path", photo.FilePath, "error", err)
	}
	return nil
}
