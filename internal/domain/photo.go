package domain

import (
	"context"
	"io"
	"time"
)

// Photo represents an uploaded event photo. Position 0 is the display front;
// new uploads go to the front regardless of timestamps.
// swagger:model Photo
type Photo struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	PhotoURL   string    `json:"photo_url"`
	FilePath   string    `json:"-"`
	Position   int       `json:"position"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PhotoRepository defines storage operations for photo records.
type PhotoRepository interface {
	// InsertFront shifts the event's existing photos one position back and
	// inserts the photo at position 0, in one transaction.
	InsertFront(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	// GetFront returns the event's position-0 photo, ErrNotFound if none.
	GetFront(ctx context.Context, eventID string) (*Photo, error)
	List(ctx context.Context) ([]*Photo, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}

// PhotoFileStore persists photo files and resolves their public URLs.
// Remove is best-effort: callers log failures and carry on.
type PhotoFileStore interface {
	Save(filename string, content io.Reader) (url, path string, err error)
	Remove(path string) error
}

// PhotoService defines the business logic for photo uploads.
type PhotoService interface {
	Upload(ctx context.Context, eventID, userID string, upload *PhotoUpload) (*Photo, error)
	List(ctx context.Context) ([]*Photo, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Photo, error)
	Delete(ctx context.Context, photoID string) error
}
