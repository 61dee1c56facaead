package domain

import (
	"context"
	"io"
	"time"
)

// Event represents a planned event (wedding, party, ...).
// swagger:model Event
type Event struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	StartDateTime time.Time `json:"start_date_time"`
	EndDateTime   time.Time `json:"end_date_time"`
	Address       string    `json:"address"`
	OrganizerIDs  []string  `json:"organizer_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EventDetails is an event with its related records expanded, the way the
// list endpoint returns it.
type EventDetails struct {
	Event         *Event          `json:"event"`
	Organizers    []*User         `json:"organizers"`
	Invitations   []*Invitation   `json:"invitations"`
	ScheduleItems []*ScheduleItem `json:"schedule_items"`
	Photos        []*Photo        `json:"photos"`
}

// Participant is a confirmed member of an event's guest list.
// swagger:model Participant
type Participant struct {
	EventID   string `json:"event_id"`
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// EventPatch carries the optional fields of an event update. Nil means
// "leave unchanged".
type EventPatch struct {
	Name          *string
	StartDateTime *time.Time
	EndDateTime   *time.Time
	Address       *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create inserts the event and its organizer links in one transaction.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	// Delete removes the event and all dependent rows (organizer links,
	// participants, invitations, schedule items, photo rows) in one transaction.
	Delete(ctx context.Context, id string) error
	IsOrganizer(ctx context.Context, eventID, userID string) (bool, error)
	ListOrganizers(ctx context.Context, eventID string) ([]*User, error)
}

// ParticipantRepository defines storage operations for event participants.
type ParticipantRepository interface {
	// Add fails with ErrAlreadyParticipant when the pair already exists.
	Add(ctx context.Context, eventID, userID string) error
	// AddIfAbsent is an idempotent Add used by invitation confirmation.
	AddIfAbsent(ctx context.Context, eventID, userID string) error
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	// Remove fails with ErrNotParticipant when the pair does not exist.
	Remove(ctx context.Context, eventID, userID string) error
}

// EventReportRow is one spreadsheet row of the events export.
type EventReportRow struct {
	Name            string
	StartDateTime   time.Time
	EndDateTime     time.Time
	Address         string
	OrganizerEmails []string
}

// EventReportWriter renders an events report as a spreadsheet document.
type EventReportWriter interface {
	WriteEvents(rows []EventReportRow) ([]byte, error)
}

// PhotoUpload is an uploaded file as received by the delivery layer.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// CreateEventInput carries everything needed to create an event.
type CreateEventInput struct {
	Name          string
	StartDateTime time.Time
	EndDateTime   time.Time
	Address       string
	OrganizerIDs  []string
	ActorID       string
	Photo         *PhotoUpload
}

// UpdateEventInput carries an event patch plus the optional replacement photo.
type UpdateEventInput struct {
	Patch        EventPatch
	ReplacePhoto bool
	Photo        *PhotoUpload
}

// EventService defines the business logic for events, their participants,
// and the spreadsheet export.
type EventService interface {
	List(ctx context.Context) ([]*EventDetails, error)
	Create(ctx context.Context, in CreateEventInput) (*Event, error)
	Update(ctx context.Context, eventID, actorID string, in UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, eventID, actorID string) error
	ExportExcel(ctx context.Context) ([]byte, error)

	AddParticipant(ctx context.Context, eventID, userID string) error
	ListParticipants(ctx context.Context, eventID string) ([]*Participant, error)
	RemoveParticipant(ctx context.Context, eventID, userID string) error
}
