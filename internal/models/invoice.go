package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceItem is one line of a workshop-issued invoice, persisted as JSONB.
type InvoiceItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	UnitNet  float64 `json:"unit_net"`
	VatRate  float64 `json:"vat_rate"`
}

// Invoice is a document issued by a workshop to its own client. This is a
// bookkeeping aid, not a tax-compliant invoicing system.
type Invoice struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	WorkshopID    uuid.UUID     `json:"workshop_id" db:"workshop_id"`
	Number        string        `json:"number" db:"number"`
	ClientName    string        `json:"client_name" db:"client_name"`
	ClientNIP     *string       `json:"client_nip" db:"client_nip"`
	ClientAddress *string       `json:"client_address" db:"client_address"`
	DateIssued    time.Time     `json:"date_issued" db:"date_issued"`
	DateDue       time.Time     `json:"date_due" db:"date_due"`
	Items         []InvoiceItem `json:"items" db:"items"`
	TotalNet      float64       `json:"total_net" db:"total_net"`
	TotalVat      float64       `json:"total_vat" db:"total_vat"`
	TotalGross    float64       `json:"total_gross" db:"total_gross"`
	Status        string        `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}
