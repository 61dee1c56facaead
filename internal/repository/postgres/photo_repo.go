package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weddingplanner/internal/domain"
)

type photoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) domain.PhotoRepository {
	return &photoRepository{DB: db}
}

func (r *photoRepository) InsertFront(ctx context.Context, photo *domain.Photo) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	shift := `UPDATE photos SET position = position + 1 WHERE event_id = $1`
	if _, err := tx.ExecContext(ctx, shift, photo.EventID); err != nil {
		return err
	}

	insert := `
		INSERT INTO photos (event_id, user_id, photo_url, file_path, position, uploaded_at)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, insert, photo.EventID, photo.UserID, photo.PhotoURL, photo.FilePath, photo.UploadedAt).Scan(&photo.ID); err != nil {
		return err
	}
	photo.Position = 0
	return tx.Commit()
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	query := `
		SELECT id, event_id, user_id, photo_url, file_path, position, uploaded_at
		FROM photos
		WHERE id = $1
	`
	return scanPhoto(r.DB.QueryRowContext(ctx, query, id))
}

func (r *photoRepository) GetFront(ctx context.Context, eventID string) (*domain.Photo, error) {
	query := `
		SELECT id, event_id, user_id, photo_url, file_path, position, uploaded_at
		FROM photos
		WHERE event_id = $1 AND position = 0
	`
	return scanPhoto(r.DB.QueryRowContext(ctx, query, eventID))
}

func (r *photoRepository) List(ctx context.Context) ([]*domain.Photo, error) {
	query := `
		SELECT id, event_id, user_id, photo_url, file_path, position, uploaded_at
		FROM photos
		ORDER BY event_id, position
	`
	return r.queryPhotos(ctx, query)
}

func (r *photoRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	query := `
		SELECT id, event_id, user_id, photo_url, file_path, position, uploaded_at
		FROM photos
		WHERE event_id = $1
		ORDER BY position
	`
	return r.queryPhotos(ctx, query, eventID)
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *photoRepository) queryPhotos(ctx context.Context, query string, args ...any) ([]*domain.Photo, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]*domain.Photo, 0)
	for rows.Next() {
		p := &domain.Photo{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.PhotoURL, &p.FilePath, &p.Position, &p.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func scanPhoto(row *sql.Row) (*domain.Photo, error) {
	p := &domain.Photo{}
	err := row.Scan(&p.ID, &p.EventID, &p.UserID, &p.PhotoURL, &p.FilePath, &p.Position, &p.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
