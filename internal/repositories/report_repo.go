package repositories

import (
	"context"
	"errors"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.Report, error)
	FindApprovedByVIN(ctx context.Context, vin string) ([]*models.Report, error)
	Update(ctx context.Context, report *models.Report) error
}

type reportRepo struct {
	db Database
}

func NewReportRepo(db Database) ReportRepository {
	return &reportRepo{db: db}
}

const reportColumns = `
	id, vin, registration_number, workshop_name, workshop_id, mileage_km, first_registration_date,
	status, approval_status, summary, moderation_note, moderated_by, moderated_at, created_at, updated_at`

func scanReport(row pgx.Row) (*models.Report, error) {
	report := &models.Report{}
	err := row.Scan(
		&report.ID, &report.VIN, &report.RegistrationNumber, &report.WorkshopName, &report.WorkshopID,
		&report.MileageKm, &report.FirstRegistrationDate,
		&report.Status, &report.ApprovalStatus, &report.Summary,
		&report.ModerationNote, &report.ModeratedBy, &report.ModeratedAt,
		&report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepo) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (
			id, vin, registration_number, workshop_name, workshop_id, mileage_km, first_registration_date,
			status, approval_status, summary, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		report.ID, report.VIN, report.RegistrationNumber, report.WorkshopName, report.WorkshopID,
		report.MileageKm, report.FirstRegistrationDate,
		report.Status, report.ApprovalStatus, report.Summary,
	)
	return err
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reportRepo) List(ctx context.Context) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY updated_at DESC`
	return r.queryMany(ctx, query)
}

func (r *reportRepo) ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE workshop_id = $1 ORDER BY updated_at DESC`
	return r.queryMany(ctx, query, workshopID)
}

// FindApprovedByVIN backs the public lookup: approved reports only.
func (r *reportRepo) FindApprovedByVIN(ctx context.Context, vin string) ([]*models.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE vin = $1 AND approval_status = 'approved'
		ORDER BY updated_at DESC
	`
	return r.queryMany(ctx, query, vin)
}

func (r *reportRepo) queryMany(ctx context.Context, query string, args ...any) ([]*models.Report, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *reportRepo) Update(ctx context.Context, report *models.Report) error {
	query := `
		UPDATE reports
		SET vin = $1, registration_number = $2, workshop_name = $3, mileage_km = $4,
			first_registration_date = $5, status = $6, approval_status = $7, summary = $8,
			moderation_note = $9, moderated_by = $10, moderated_at = $11, updated_at = NOW()
		WHERE id = $12
	`
	tag, err := r.db.Exec(ctx, query,
		report.VIN, report.RegistrationNumber, report.WorkshopName, report.MileageKm,
		report.FirstRegistrationDate, report.Status, report.ApprovalStatus, report.Summary,
		report.ModerationNote, report.ModeratedBy, report.ModeratedAt, report.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
