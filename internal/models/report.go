package models

import (
	"time"

	"github.com/google/uuid"
)

// Report approval statuses
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// DefaultReportStatus is the free-text workflow label new reports start with.
const DefaultReportStatus = "W trakcie"

// Report is a vehicle-service record submitted by a workshop. Only approved
// reports are visible through the public VIN lookup.
type Report struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	VIN                   string     `json:"vin" db:"vin"`
	RegistrationNumber    *string    `json:"registration_number" db:"registration_number"`
	WorkshopName          string     `json:"workshop_name" db:"workshop_name"`
	WorkshopID            *uuid.UUID `json:"workshop_id" db:"workshop_id"`
	MileageKm             *int       `json:"mileage_km" db:"mileage_km"`
	FirstRegistrationDate *string    `json:"first_registration_date" db:"first_registration_date"`
	Status                string     `json:"status" db:"status"`
	ApprovalStatus        string     `json:"approval_status" db:"approval_status"`
	Summary               *string    `json:"summary" db:"summary"`
	ModerationNote        *string    `json:"moderation_note" db:"moderation_note"`
	ModeratedBy           *string    `json:"moderated_by" db:"moderated_by"`
	ModeratedAt           *time.Time `json:"moderated_at" db:"moderated_at"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}
