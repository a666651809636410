package repositories

import (
	"context"
	"errors"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BillingRepository interface {
	Create(ctx context.Context, entry *models.BillingEntry) error
	GetByID(ctx context.Context, workshopID, id uuid.UUID) (*models.BillingEntry, error)
	ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.BillingEntry, error)
	Update(ctx context.Context, entry *models.BillingEntry) error
}

type billingRepo struct {
	db Database
}

func NewBillingRepo(db Database) BillingRepository {
	return &billingRepo{db: db}
}

const billingColumns = `id, workshop_id, month, amount, invoice_number, status, note, created_at, updated_at`

func scanBillingEntry(row pgx.Row) (*models.BillingEntry, error) {
	entry := &models.BillingEntry{}
	err := row.Scan(&entry.ID, &entry.WorkshopID, &entry.Month, &entry.Amount,
		&entry.InvoiceNumber, &entry.Status, &entry.Note, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *billingRepo) Create(ctx context.Context, entry *models.BillingEntry) error {
	query := `
		INSERT INTO workshop_billing (id, workshop_id, month, amount, invoice_number, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.WorkshopID, entry.Month, entry.Amount,
		entry.InvoiceNumber, entry.Status, entry.Note)
	return err
}

func (r *billingRepo) GetByID(ctx context.Context, workshopID, id uuid.UUID) (*models.BillingEntry, error) {
	query := `SELECT ` + billingColumns + ` FROM workshop_billing WHERE id = $1 AND workshop_id = $2`
	entry, err := scanBillingEntry(r.db.QueryRow(ctx, query, id, workshopID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *billingRepo) ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.BillingEntry, error) {
	query := `
		SELECT ` + billingColumns + `
		FROM workshop_billing
		WHERE workshop_id = $1
		ORDER BY month DESC, updated_at DESC
	`
	rows, err := r.db.Query(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.BillingEntry
	for rows.Next() {
		entry, err := scanBillingEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *billingRepo) Update(ctx context.Context, entry *models.BillingEntry) error {
	query := `
		UPDATE workshop_billing
		SET month = $1, amount = $2, invoice_number = $3, status = $4, note = $5, updated_at = NOW()
		WHERE id = $6 AND workshop_id = $7
	`
	tag, err := r.db.Exec(ctx, query, entry.Month, entry.Amount, entry.InvoiceNumber,
		entry.Status, entry.Note, entry.ID, entry.WorkshopID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
