package domain

import (
	"context"
	"time"
)

// Application roles. Role is fixed at signup and never changes.
const (
	RoleOrganizer   = "Organizer"
	RoleParticipant = "Participant"
)

// User represents a registered user.
// swagger:model User
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	Role               string    `json:"role"`
	PasswordResetToken *string   `json:"-"`
	EventsOrganized    []string  `json:"events_organized,omitempty"`
	EventsParticipated []string  `json:"events_participated,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, passwordHash, firstName, lastName, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// PasswordHasher handles one-way password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// List returns all users with their organized/participated event ids filled in.
	List(ctx context.Context) ([]*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	SetResetToken(ctx context.Context, userID string, token *string) error
	// UpdatePassword stores a new hash and clears the reset token.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// AuthResult bundles the authenticated user with a freshly issued token.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UserService defines authentication and user profile operations.
type UserService interface {
	SignUp(ctx context.Context, firstName, lastName, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SendResetPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
