package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (event_id, email, name, status, invitation_link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.EventID, inv.Email, inv.Name, inv.Status, inv.InvitationLink, inv.CreatedAt).Scan(&inv.ID)
}

func (r *invitationRepository) GetByLink(ctx context.Context, link string) (*domain.Invitation, error) {
	query := `
		SELECT id, event_id, email, name, status, invitation_link, user_id, created_at
		FROM invitations
		WHERE invitation_link = $1
	`
	return scanInvitation(r.DB.QueryRowContext(ctx, query, link))
}

func (r *invitationRepository) List(ctx context.Context) ([]*domain.Invitation, error) {
	query := `
		SELECT id, event_id, email, name, status, invitation_link, user_id, created_at
		FROM invitations
		ORDER BY created_at DESC
	`
	return r.queryInvitations(ctx, query)
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	query := `
		SELECT id, event_id, email, name, status, invitation_link, user_id, created_at
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	return r.queryInvitations(ctx, query, eventID)
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, id, status string, userID *string) error {
	query := `
		UPDATE invitations
		SET status = $1, user_id = COALESCE($2, user_id)
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, status, userID, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invitationRepository) queryInvitations(ctx context.Context, query string, args ...any) ([]*domain.Invitation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{}
		var userNull sql.NullString
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.Email, &inv.Name, &inv.Status, &inv.InvitationLink, &userNull, &inv.CreatedAt); err != nil {
			return nil, err
		}
		if userNull.Valid {
			inv.UserID = &userNull.String
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func scanInvitation(row *sql.Row) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var userNull sql.NullString
	err := row.Scan(&inv.ID, &inv.EventID, &inv.Email, &inv.Name, &inv.Status, &inv.InvitationLink, &userNull, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if userNull.Valid {
		inv.UserID = &userNull.String
	}
	return inv, nil
}
