package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, workshopID, id uuid.UUID) (*models.Invoice, error)
	ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.Invoice, error)
	CountByWorkshop(ctx context.Context, workshopID uuid.UUID) (int, error)
}

type invoiceRepo struct {
	db Database
}

func NewInvoiceRepo(db Database) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, workshop_id, number, client_name, client_nip, client_address,
	date_issued, date_due, items, total_net, total_vat, total_gross, status, created_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var items []byte
	err := row.Scan(
		&invoice.ID, &invoice.WorkshopID, &invoice.Number, &invoice.ClientName,
		&invoice.ClientNIP, &invoice.ClientAddress,
		&invoice.DateIssued, &invoice.DateDue, &items,
		&invoice.TotalNet, &invoice.TotalVat, &invoice.TotalGross,
		&invoice.Status, &invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &invoice.Items); err != nil {
			return nil, err
		}
	}
	return invoice, nil
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	items, err := json.Marshal(invoice.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (
			id, workshop_id, number, client_name, client_nip, client_address,
			date_issued, date_due, items, total_net, total_vat, total_gross, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
	`
	_, err = r.db.Exec(ctx, query,
		invoice.ID, invoice.WorkshopID, invoice.Number, invoice.ClientName,
		invoice.ClientNIP, invoice.ClientAddress,
		invoice.DateIssued, invoice.DateDue, items,
		invoice.TotalNet, invoice.TotalVat, invoice.TotalGross, invoice.Status,
	)
	return err
}

func (r *invoiceRepo) GetByID(ctx context.Context, workshopID, id uuid.UUID) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND workshop_id = $2`
	invoice, err := scanInvoice(r.db.QueryRow(ctx, query, id, workshopID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *invoiceRepo) ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE workshop_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, workshopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepo) CountByWorkshop(ctx context.Context, workshopID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE workshop_id = $1`, workshopID).Scan(&count)
	return count, err
}
