package models

import (
	"time"

	"github.com/google/uuid"
)

// Billing entry statuses
const (
	BillingStatusPaid   = "paid"
	BillingStatusUnpaid = "unpaid"
)

// BillingEntry records one monthly billing fact for a workshop. The schema
// deliberately allows more than one entry per (workshop, month).
type BillingEntry struct {
	ID            uuid.UUID `json:"id" db:"id"`
	WorkshopID    uuid.UUID `json:"workshop_id" db:"workshop_id"`
	Month         string    `json:"month" db:"month"` // YYYY-MM
	Amount        float64   `json:"amount" db:"amount"`
	InvoiceNumber *string   `json:"invoice_number" db:"invoice_number"`
	Status        string    `json:"status" db:"status"`
	Note          *string   `json:"note" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
