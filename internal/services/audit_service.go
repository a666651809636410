package services

import (
	"context"
	"log"

	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
)

const defaultAuditLogLimit = 100

// AuditService records administrative actions into an append-only trail.
// Recording failures are logged and swallowed so audit plumbing never
// breaks the operation it describes.
type AuditService struct {
	auditRepo repositories.AuditLogsRepository
}

func NewAuditService(auditRepo repositories.AuditLogsRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) Record(ctx context.Context, entryType, message string, actorEmail *string, payload models.JSONB) {
	entry := &models.AuditLog{
		ID:         uuid.New(),
		Type:       entryType,
		Message:    message,
		ActorEmail: actorEmail,
		Payload:    payload,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("WARN: failed to record audit entry %s: %v", entryType, err)
	}
}

func (s *AuditService) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLogLimit
	}
	return s.auditRepo.List(ctx, limit)
}

// Prune deletes trail entries older than the retention window. Called by
// the background scheduler.
func (s *AuditService) Prune(ctx context.Context, retentionDays int) (int64, error) {
	return s.auditRepo.DeleteOlderThan(ctx, retentionDays)
}
