package repositories

import (
	"context"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
)

type PartsRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*models.Part, error)
	CreateOrder(ctx context.Context, order *models.PartOrder) error
	ListOrdersByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.PartOrder, error)
}

type partsRepo struct {
	db Database
}

func NewPartsRepo(db Database) PartsRepository {
	return &partsRepo{db: db}
}

func (r *partsRepo) Search(ctx context.Context, query string, limit int) ([]*models.Part, error) {
	sql := `
		SELECT id, name, code, price, created_at
		FROM parts
		WHERE name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []*models.Part
	for rows.Next() {
		part := &models.Part{}
		if err := rows.Scan(&part.ID, &part.Name, &part.Code, &part.Price, &part.CreatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

func (r *partsRepo) CreateOrder(ctx context.Context, order *models.PartOrder) error {
	query := `
		INSERT INTO orders (id, workshop_id, part_name, part_code, quantity, price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.WorkshopID, order.PartName, order.PartCode,
		order.Quantity, order.Price, order.Status)
	return err
}

func (r *partsRepo) ListOrdersByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.PartOrder, error) {
	query := `
		SELECT id, workshop_id, part_name, part_code, quantity, price, status, created_at
		FROM orders
		WHERE workshop_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PartOrder
	for rows.Next() {
		order := &models.PartOrder{}
		if err := rows.Scan(&order.ID, &order.WorkshopID, &order.PartName, &order.PartCode,
			&order.Quantity, &order.Price, &order.Status, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
