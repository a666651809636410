package models

import (
	"time"

	"github.com/google/uuid"
)

// Part is one catalogue row of the wholesaler parts index.
type Part struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PartOrder is a workshop's order for a part, forwarded to the wholesaler.
type PartOrder struct {
	ID         uuid.UUID `json:"id" db:"id"`
	WorkshopID uuid.UUID `json:"workshop_id" db:"workshop_id"`
	PartName   string    `json:"part_name" db:"part_name"`
	PartCode   *string   `json:"part_code" db:"part_code"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Price      *float64  `json:"price" db:"price"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
