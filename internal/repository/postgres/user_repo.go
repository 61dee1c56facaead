package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"weddingplanner/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, password_reset_token, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, password_reset_token, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, password_reset_token, created_at, updated_at
		FROM users
		WHERE password_reset_token = $1
	`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, token))
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, role, password_reset_token, created_at, updated_at
		FROM users
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	byID := make(map[string]*domain.User)
	for rows.Next() {
		u := &domain.User{}
		var resetNull sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &resetNull, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if resetNull.Valid {
			u.PasswordResetToken = &resetNull.String
		}
		users = append(users, u)
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.fillEventLinks(ctx, byID, "event_organizers", func(u *domain.User, eventID string) {
		u.EventsOrganized = append(u.EventsOrganized, eventID)
	}); err != nil {
		return nil, err
	}
	if err := r.fillEventLinks(ctx, byID, "event_participants", func(u *domain.User, eventID string) {
		u.EventsParticipated = append(u.EventsParticipated, eventID)
	}); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) fillEventLinks(ctx context.Context, byID map[string]*domain.User, table string, add func(*domain.User, string)) error {
	rows, err := r.DB.QueryContext(ctx, `SELECT user_id, event_id FROM `+table)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var userID, eventID string
		if err := rows.Scan(&userID, &eventID); err != nil {
			return err
		}
		if u, ok := byID[userID]; ok {
			add(u, eventID)
		}
	}
	return rows.Err()
}

func (r *userRepository) SetResetToken(ctx context.Context, userID string, token *string) error {
	query := `
		UPDATE users
		SET password_reset_token = $1, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.DB.ExecContext(ctx, query, token, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, password_reset_token = NULL, updated_at = NOW()
		WHERE id = $2
	`
	result, err := r.DB.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var resetNull sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &resetNull, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if resetNull.Valid {
		u.PasswordResetToken = &resetNull.String
	}
	return u, nil
}
