package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"weddingplanner/internal/domain"
)

type scheduleItemRepository struct {
	DB *sql.DB
}

func NewScheduleItemRepository(db *sql.DB) domain.ScheduleItemRepository {
	return &scheduleItemRepository{DB: db}
}

func (r *scheduleItemRepository) Create(ctx context.Context, item *domain.ScheduleItem) error {
	query := `
		INSERT INTO schedule_items (event_id, title, description, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, item.EventID, item.Title, item.Description, item.StartTime, item.EndTime).Scan(&item.ID)
}

func (r *scheduleItemRepository) GetByID(ctx context.Context, id string) (*domain.ScheduleItem, error) {
	query := `
		SELECT id, event_id, title, description, start_time, end_time
		FROM schedule_items
		WHERE id = $1
	`
	item := &domain.ScheduleItem{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.EventID, &item.Title, &item.Description, &item.StartTime, &item.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *scheduleItemRepository) List(ctx context.Context) ([]*domain.ScheduleItem, error) {
	query := `
		SELECT id, event_id, title, description, start_time, end_time
		FROM schedule_items
		ORDER BY start_time
	`
	return r.queryItems(ctx, query)
}

func (r *scheduleItemRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleItem, error) {
	query := `
		SELECT id, event_id, title, description, start_time, end_time
		FROM schedule_items
		WHERE event_id = $1
		ORDER BY start_time
	`
	return r.queryItems(ctx, query, eventID)
}

func (r *scheduleItemRepository) Update(ctx context.Context, id string, patch domain.ScheduleItemPatch) (*domain.ScheduleItem, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	if patch.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *patch.Title)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if patch.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", n))
		args = append(args, *patch.StartTime)
		n++
	}
	if patch.EndTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_time = $%d", n))
		args = append(args, *patch.EndTime)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE schedule_items SET %s
		WHERE id = $%d
		RETURNING id, event_id, title, description, start_time, end_time
	`, strings.Join(setClauses, ", "), n)

	item := &domain.ScheduleItem{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.EventID, &item.Title, &item.Description, &item.StartTime, &item.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *scheduleItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM schedule_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scheduleItemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.ScheduleItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.ScheduleItem, 0)
	for rows.Next() {
		item := &domain.ScheduleItem{}
		if err := rows.Scan(&item.ID, &item.EventID, &item.Title, &item.Description, &item.StartTime, &item.EndTime); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
