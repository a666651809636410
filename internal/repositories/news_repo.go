package repositories

import (
	"context"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
)

type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	List(ctx context.Context) ([]*models.News, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type newsRepo struct {
	db Database
}

func NewNewsRepo(db Database) NewsRepository {
	return &newsRepo{db: db}
}

func (r *newsRepo) Create(ctx context.Context, news *models.News) error {
	query := `INSERT INTO news (id, title, body, published_at) VALUES ($1, $2, $3, NOW())`
	_, err := r.db.Exec(ctx, query, news.ID, news.Title, news.Body)
	return err
}

func (r *newsRepo) List(ctx context.Context) ([]*models.News, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, body, published_at FROM news ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		news := &models.News{}
		if err := rows.Scan(&news.ID, &news.Title, &news.Body, &news.PublishedAt); err != nil {
			return nil, err
		}
		items = append(items, news)
	}
	return items, rows.Err()
}

func (r *newsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	return err
}
