package repositories

import (
	"context"
	"errors"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WorkshopUserRepository interface {
	Create(ctx context.Context, user *models.WorkshopUser) error
	GetByEmail(ctx context.Context, email string) (*models.WorkshopUser, error)
	GetByWorkshopID(ctx context.Context, workshopID uuid.UUID) (*models.WorkshopUser, error)
	UpdateEmail(ctx context.Context, workshopID uuid.UUID, email string) error
	UpdatePassword(ctx context.Context, workshopID uuid.UUID, passwordHash string) error
	DeleteByWorkshopID(ctx context.Context, workshopID uuid.UUID) error
}

type workshopUserRepo struct {
	db Database
}

func NewWorkshopUserRepo(db Database) WorkshopUserRepository {
	return &workshopUserRepo{db: db}
}

const workshopUserColumns = `id, workshop_id, email, password_hash, role, created_at, updated_at`

func scanWorkshopUser(row pgx.Row) (*models.WorkshopUser, error) {
	user := &models.WorkshopUser{}
	err := row.Scan(&user.ID, &user.WorkshopID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *workshopUserRepo) Create(ctx context.Context, user *models.WorkshopUser) error {
	query := `
		INSERT INTO workshop_users (id, workshop_id, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, lower($3), $4, 'workshop', NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.WorkshopID, user.Email, user.PasswordHash)
	return err
}

func (r *workshopUserRepo) GetByEmail(ctx context.Context, email string) (*models.WorkshopUser, error) {
	query := `SELECT ` + workshopUserColumns + ` FROM workshop_users WHERE lower(email) = lower($1)`
	return scanWorkshopUser(r.db.QueryRow(ctx, query, email))
}

func (r *workshopUserRepo) GetByWorkshopID(ctx context.Context, workshopID uuid.UUID) (*models.WorkshopUser, error) {
	query := `SELECT ` + workshopUserColumns + ` FROM workshop_users WHERE workshop_id = $1`
	return scanWorkshopUser(r.db.QueryRow(ctx, query, workshopID))
}

func (r *workshopUserRepo) UpdateEmail(ctx context.Context, workshopID uuid.UUID, email string) error {
	query := `UPDATE workshop_users SET email = lower($1), updated_at = NOW() WHERE workshop_id = $2`
	_, err := r.db.Exec(ctx, query, email, workshopID)
	return err
}

func (r *workshopUserRepo) UpdatePassword(ctx context.Context, workshopID uuid.UUID, passwordHash string) error {
	query := `UPDATE workshop_users SET password_hash = $1, updated_at = NOW() WHERE workshop_id = $2`
	_, err := r.db.Exec(ctx, query, passwordHash, workshopID)
	return err
}

func (r *workshopUserRepo) DeleteByWorkshopID(ctx context.Context, workshopID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM workshop_users WHERE workshop_id = $1`, workshopID)
	return err
}
