package repositories

import (
	"context"
	"encoding/json"

	"warsztatplus/internal/models"

	"github.com/jackc/pgx/v5"
)

type AuditLogsRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit int) ([]*models.AuditLog, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type auditLogsRepo struct {
	db Database
}

func NewAuditLogsRepo(db Database) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	var payload []byte
	if entry.Payload != nil {
		encoded, err := json.Marshal(entry.Payload)
		if err != nil {
			return err
		}
		payload = encoded
	}
	query := `
		INSERT INTO audit_logs (id, type, message, actor_email, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.Type, entry.Message, entry.ActorEmail, payload)
	return err
}

func (r *auditLogsRepo) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, type, message, actor_email, payload, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func scanAuditLog(row pgx.Row) (*models.AuditLog, error) {
	entry := &models.AuditLog{}
	var payload []byte
	if err := row.Scan(&entry.ID, &entry.Type, &entry.Message, &entry.ActorEmail, &payload, &entry.CreatedAt); err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &entry.Payload); err != nil {
			// Keep the row; a malformed payload should not hide the entry.
			entry.Payload = models.JSONB{"raw": string(payload)}
		}
	}
	return entry, nil
}

func (r *auditLogsRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM audit_logs WHERE created_at < NOW() - make_interval(days => $1)`
	tag, err := r.db.Exec(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
