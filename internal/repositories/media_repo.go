package repositories

import (
	"context"
	"errors"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	List(ctx context.Context) ([]*models.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaRepo struct {
	db Database
}

func NewMediaRepo(db Database) MediaRepository {
	return &mediaRepo{db: db}
}

func (r *mediaRepo) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, report_id, file_name, object_key, mime_type, size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, media.ID, media.ReportID, media.FileName, media.ObjectKey, media.MimeType, media.Size)
	return err
}

func (r *mediaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	media := &models.Media{}
	query := `SELECT id, report_id, file_name, object_key, mime_type, size, uploaded_at FROM media WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&media.ID, &media.ReportID, &media.FileName, &media.ObjectKey, &media.MimeType, &media.Size, &media.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepo) List(ctx context.Context) ([]*models.Media, error) {
	query := `SELECT id, report_id, file_name, object_key, mime_type, size, uploaded_at FROM media ORDER BY uploaded_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		media := &models.Media{}
		if err := rows.Scan(&media.ID, &media.ReportID, &media.FileName, &media.ObjectKey, &media.MimeType, &media.Size, &media.UploadedAt); err != nil {
			return nil, err
		}
		items = append(items, media)
	}
	return items, rows.Err()
}

func (r *mediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	return err
}
