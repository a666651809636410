package repositories

import (
	"context"
	"errors"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workshopColumns = `
	w.id, w.name, w.address, w.city, w.phone, w.email, w.billing_email, wu.email,
	w.status, w.notes,
	w.subscription_amount, w.subscription_start_date, w.subscription_initial_amount, w.subscription_initial_note,
	w.license_start, w.license_end,
	w.contract_fixed_end, w.contract_indefinite_since,
	w.termination_notice_date, w.termination_end_date, w.terminated_at, w.contract_status,
	w.created_at, w.updated_at`

const workshopFrom = `
	FROM workshops w
	LEFT JOIN workshop_users wu ON wu.workshop_id = w.id`

type WorkshopRepository interface {
	Create(ctx context.Context, workshop *models.Workshop) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workshop, error)
	List(ctx context.Context) ([]*models.Workshop, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Workshop, error)
	Update(ctx context.Context, workshop *models.Workshop) error
	UpdateContractState(ctx context.Context, workshop *models.Workshop) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type workshopRepo struct {
	db Database
}

func NewWorkshopRepo(db Database) WorkshopRepository {
	return &workshopRepo{db: db}
}

func scanWorkshop(row pgx.Row) (*models.Workshop, error) {
	w := &models.Workshop{}
	err := row.Scan(
		&w.ID, &w.Name, &w.Address, &w.City, &w.Phone, &w.Email, &w.BillingEmail, &w.LoginEmail,
		&w.Status, &w.Notes,
		&w.SubscriptionAmount, &w.SubscriptionStartDate, &w.SubscriptionInitialAmount, &w.SubscriptionInitialNote,
		&w.LicenseStart, &w.LicenseEnd,
		&w.ContractFixedEnd, &w.ContractIndefiniteSince,
		&w.TerminationNoticeDate, &w.TerminationEndDate, &w.TerminatedAt, &w.ContractStatus,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *workshopRepo) Create(ctx context.Context, workshop *models.Workshop) error {
	query := `
		INSERT INTO workshops (
			id, name, address, city, phone, email, billing_email, status, notes,
			subscription_amount, subscription_start_date, subscription_initial_amount, subscription_initial_note,
			license_start, license_end, contract_fixed_end, contract_status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		workshop.ID, workshop.Name, workshop.Address, workshop.City, workshop.Phone, workshop.Email,
		workshop.BillingEmail, workshop.Status, workshop.Notes,
		workshop.SubscriptionAmount, workshop.SubscriptionStartDate,
		workshop.SubscriptionInitialAmount, workshop.SubscriptionInitialNote,
		workshop.LicenseStart, workshop.LicenseEnd, workshop.ContractFixedEnd, workshop.ContractStatus,
	)
	return err
}

func (r *workshopRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Workshop, error) {
	query := `SELECT` + workshopColumns + workshopFrom + ` WHERE w.id = $1`
	workshop, err := scanWorkshop(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return workshop, nil
}

func (r *workshopRepo) List(ctx context.Context) ([]*models.Workshop, error) {
	query := `SELECT` + workshopColumns + workshopFrom + ` ORDER BY w.name ASC`
	return r.queryMany(ctx, query)
}

func (r *workshopRepo) ListByStatus(ctx context.Context, status string) ([]*models.Workshop, error) {
	query := `SELECT` + workshopColumns + workshopFrom + ` WHERE w.status = $1 ORDER BY w.name ASC`
	return r.queryMany(ctx, query, status)
}

func (r *workshopRepo) queryMany(ctx context.Context, query string, args ...any) ([]*models.Workshop, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workshops []*models.Workshop
	for rows.Next() {
		workshop, err := scanWorkshop(rows)
		if err != nil {
			return nil, err
		}
		workshops = append(workshops, workshop)
	}
	return workshops, rows.Err()
}

func (r *workshopRepo) Update(ctx context.Context, workshop *models.Workshop) error {
	query := `
		UPDATE workshops
		SET name = $1, address = $2, city = $3, phone = $4, email = $5, billing_email = $6,
			status = $7, notes = $8,
			subscription_amount = $9, subscription_start_date = $10,
			subscription_initial_amount = $11, subscription_initial_note = $12,
			license_start = $13, license_end = $14,
			contract_fixed_end = $15, contract_indefinite_since = $16,
			termination_notice_date = $17, termination_end_date = $18, terminated_at = $19,
			contract_status = $20, updated_at = NOW()
		WHERE id = $21
	`
	tag, err := r.db.Exec(ctx, query,
		workshop.Name, workshop.Address, workshop.City, workshop.Phone, workshop.Email, workshop.BillingEmail,
		workshop.Status, workshop.Notes,
		workshop.SubscriptionAmount, workshop.SubscriptionStartDate,
		workshop.SubscriptionInitialAmount, workshop.SubscriptionInitialNote,
		workshop.LicenseStart, workshop.LicenseEnd,
		workshop.ContractFixedEnd, workshop.ContractIndefiniteSince,
		workshop.TerminationNoticeDate, workshop.TerminationEndDate, workshop.TerminatedAt,
		workshop.ContractStatus, workshop.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateContractState persists only the contract fields the evaluator may
// change on read, leaving identity columns and updated_at untouched so lazy
// recomputation never masquerades as an edit.
func (r *workshopRepo) UpdateContractState(ctx context.Context, workshop *models.Workshop) error {
	query := `
		UPDATE workshops
		SET status = $1, contract_indefinite_since = $2,
			termination_notice_date = $3, termination_end_date = $4, terminated_at = $5,
			contract_status = $6
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query,
		workshop.Status, workshop.ContractIndefiniteSince,
		workshop.TerminationNoticeDate, workshop.TerminationEndDate, workshop.TerminatedAt,
		workshop.ContractStatus, workshop.ID,
	)
	return err
}

func (r *workshopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workshops WHERE id = $1`, id)
	return err
}
