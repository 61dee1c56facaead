package domain

import (
	"context"
	"time"
)

// ScheduleItem represents one entry in an event's programme.
// swagger:model ScheduleItem
type ScheduleItem struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// ScheduleItemPatch carries the optional fields of a schedule item update.
type ScheduleItemPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// ScheduleItemRepository defines storage operations for schedule items.
type ScheduleItemRepository interface {
	Create(ctx context.Context, item *ScheduleItem) error
	GetByID(ctx context.Context, id string) (*ScheduleItem, error)
	List(ctx context.Context) ([]*ScheduleItem, error)
	ListByEventID(ctx context.Context, eventID string) ([]*ScheduleItem, error)
	Update(ctx context.Context, id string, patch ScheduleItemPatch) (*ScheduleItem, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleService defines the business logic for schedule items.
// StartTime must precede EndTime on create and on the effective values of an
// update; violations fail with ErrInvalidInput and perform no write.
type ScheduleService interface {
	Create(ctx context.Context, item *ScheduleItem) error
	List(ctx context.Context) ([]*ScheduleItem, error)
	Update(ctx context.Context, id string, patch ScheduleItemPatch) (*ScheduleItem, error)
	Delete(ctx context.Context, id string) error
}
