package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"weddingplanner/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (name, start_date_time, end_date_time, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, e.Name, e.StartDateTime, e.EndDateTime, e.Address, e.CreatedAt, e.UpdatedAt).Scan(&e.ID); err != nil {
		return err
	}

	linkQuery := `
		INSERT INTO event_organizers (event_id, user_id, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	for i, organizerID := range e.OrganizerIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, e.ID, organizerID, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, start_date_time, end_date_time, address, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.StartDateTime, &e.EndDateTime, &e.Address, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.fillOrganizerIDs(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, start_date_time, end_date_time, address, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Name, &e.StartDateTime, &e.EndDateTime, &e.Address, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, e := range events {
		if err := r.fillOrganizerIDs(ctx, e); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
	if patch.StartDateTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date_time = $%d", n))
		args = append(args, *patch.StartDateTime)
		n++
	}
	if patch.EndDateTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date_time = $%d", n))
		args = append(args, *patch.EndDateTime)
		n++
	}
	if patch.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", n))
		args = append(args, *patch.Address)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, name, start_date_time, end_date_time, address, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)

	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Name, &e.StartDateTime, &e.EndDateTime, &e.Address, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.fillOrganizerIDs(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Dependent tables cascade on the foreign key; deleting the event row is
	// enough, but the explicit deletes keep the behavior independent of the
	// schema's cascade rules.
	dependents := []string{
		`DELETE FROM photos WHERE event_id = $1`,
		`DELETE FROM schedule_items WHERE event_id = $1`,
		`DELETE FROM invitations WHERE event_id = $1`,
		`DELETE FROM event_participants WHERE event_id = $1`,
		`DELETE FROM event_organizers WHERE event_id = $1`,
	}
	for _, q := range dependents {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *eventRepository) IsOrganizer(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_organizers WHERE event_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) ListOrganizers(ctx context.Context, eventID string) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at
		FROM users u
		JOIN event_organizers eo ON eo.user_id = u.id
		WHERE eo.event_id = $1
		ORDER BY eo.position
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *eventRepository) fillOrganizerIDs(ctx context.Context, e *domain.Event) error {
	rows, err := r.DB.QueryContext(ctx, `SELECT user_id FROM event_organizers WHERE event_id = $1 ORDER BY position`, e.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		e.OrganizerIDs = append(e.OrganizerIDs, userID)
	}
	return rows.Err()
}
