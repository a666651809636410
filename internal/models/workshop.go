package models

import (
	"time"

	"github.com/google/uuid"
)

// Workshop statuses
const (
	WorkshopStatusActive      = "active"
	WorkshopStatusInactive    = "inactive"
	WorkshopStatusNotice      = "notice"
	WorkshopStatusDeactivated = "deactivated"
)

// Contract statuses derived from the stored dates
const (
	ContractStatusFixed      = "fixed"
	ContractStatusIndefinite = "indefinite"
	ContractStatusNotice     = "notice"
	ContractStatusTerminated = "terminated"
)

type Workshop struct {
	ID                        uuid.UUID  `json:"id" db:"id"`
	Name                      string     `json:"name" db:"name"`
	Address                   *string    `json:"address" db:"address"`
	City                      *string    `json:"city" db:"city"`
	Phone                     *string    `json:"phone" db:"phone"`
	Email                     *string    `json:"email" db:"email"`
	BillingEmail              *string    `json:"billing_email" db:"billing_email"`
	LoginEmail                *string    `json:"login_email" db:"login_email"` // joined from workshop_users
	Status                    string     `json:"status" db:"status"`
	Notes                     *string    `json:"notes" db:"notes"`
	SubscriptionAmount        *float64   `json:"subscription_amount" db:"subscription_amount"`
	SubscriptionStartDate     *time.Time `json:"subscription_start_date" db:"subscription_start_date"`
	SubscriptionInitialAmount *float64   `json:"subscription_initial_amount" db:"subscription_initial_amount"`
	SubscriptionInitialNote   *string    `json:"subscription_initial_note" db:"subscription_initial_note"`
	LicenseStart              time.Time  `json:"license_start" db:"license_start"`
	LicenseEnd                time.Time  `json:"license_end" db:"license_end"`
	ContractFixedEnd          time.Time  `json:"contract_fixed_end" db:"contract_fixed_end"`
	ContractIndefiniteSince   *time.Time `json:"contract_indefinite_since" db:"contract_indefinite_since"`
	TerminationNoticeDate     *time.Time `json:"termination_notice_date" db:"termination_notice_date"`
	TerminationEndDate        *time.Time `json:"termination_end_date" db:"termination_end_date"`
	TerminatedAt              *time.Time `json:"terminated_at" db:"terminated_at"`
	ContractStatus            string     `json:"contract_status" db:"contract_status"`
	CreatedAt                 time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at" db:"updated_at"`
}

// Active reports whether the workshop currently counts as an active tenant.
func (w *Workshop) Active() bool {
	return w.Status == WorkshopStatusActive
}
