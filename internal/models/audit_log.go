package models

import (
	"time"

	"github.com/google/uuid"
)

type JSONB map[string]interface{}

// AuditLog is one append-only entry in the administrative action trail.
type AuditLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Type       string    `json:"type" db:"type"`
	Message    string    `json:"message" db:"message"`
	ActorEmail *string   `json:"actor_email" db:"actor_email"`
	Payload    JSONB     `json:"payload" db:"payload"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
