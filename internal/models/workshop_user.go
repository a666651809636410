package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkshopUser is the login account paired 1:1 with a workshop.
type WorkshopUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WorkshopID   uuid.UUID `json:"workshop_id" db:"workshop_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
