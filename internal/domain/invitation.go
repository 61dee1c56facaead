package domain

import (
	"context"
	"time"
)

// Invitation statuses. Transitions are one-way: Pending -> Confirmed or
// Pending -> Declined.
const (
	InvitationPending   = "Pending"
	InvitationConfirmed = "Confirmed"
	InvitationDeclined  = "Declined"
)

// Invitation represents an emailed invite to an event.
// swagger:model Invitation
type Invitation struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	InvitationLink string    `json:"invitation_link"`
	UserID         *string   `json:"user_id"` // nil until confirmed
	CreatedAt      time.Time `json:"created_at"`
}

// InvitationDetails is the public projection shown on the confirmation page.
// swagger:model InvitationDetails
type InvitationDetails struct {
	EventName string `json:"event_name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// ExpandedInvitation is an invitation with its event and confirming user
// expanded, the way the list endpoint returns it. User is nil until confirmed.
type ExpandedInvitation struct {
	Invitation *Invitation `json:"invitation"`
	Event      *Event      `json:"event"`
	User       *User       `json:"user,omitempty"`
}

// Invitee is one entry of a batch invitation request.
type Invitee struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// InvitationRepository defines storage operations for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByLink(ctx context.Context, link string) (*Invitation, error)
	List(ctx context.Context) ([]*Invitation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
	// UpdateStatus sets the status and, when userID is non-nil, links the user.
	UpdateStatus(ctx context.Context, id, status string, userID *string) error
}

// InvitationService defines the invitation lifecycle.
type InvitationService interface {
	// CreateBatch creates one Pending invitation per invitee and emails each a
	// confirmation link. The first failure aborts the batch; invitations
	// already created are not rolled back.
	CreateBatch(ctx context.Context, eventID string, invitees []Invitee) ([]*Invitation, error)
	Confirm(ctx context.Context, token, userID string) (*Invitation, error)
	Decline(ctx context.Context, token string) (*Invitation, error)
	Details(ctx context.Context, token string) (*InvitationDetails, error)
	List(ctx context.Context) ([]*ExpandedInvitation, error)
}
