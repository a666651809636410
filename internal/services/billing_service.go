package services

import (
	"context"
	"fmt"

	"warsztatplus/internal/common"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
)

type BillingService struct {
	billingRepo  repositories.BillingRepository
	workshopRepo repositories.WorkshopRepository
	audit        *AuditService
}

func NewBillingService(billingRepo repositories.BillingRepository, workshopRepo repositories.WorkshopRepository, audit *AuditService) *BillingService {
	return &BillingService{
		billingRepo:  billingRepo,
		workshopRepo: workshopRepo,
		audit:        audit,
	}
}

type CreateBillingInput struct {
	Month         string  `json:"month" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	InvoiceNumber *string `json:"invoice_number"`
	Status        string  `json:"status"`
	Note          *string `json:"note"`
}

// Create records one billing fact for the month. Several entries for the
// same (workshop, month) are allowed, e.g. a correction next to the
// original.
func (s *BillingService) Create(ctx context.Context, workshopID uuid.UUID, input *CreateBillingInput, actorEmail *string) (*models.BillingEntry, error) {
	if err := common.ValidateBillingMonth(input.Month); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}
	status := input.Status
	if status == "" {
		status = models.BillingStatusUnpaid
	}
	if status != models.BillingStatusPaid && status != models.BillingStatusUnpaid {
		return nil, fmt.Errorf("%w: status must be paid or unpaid", ErrValidation)
	}

	workshop, err := s.workshopRepo.GetByID(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workshop: %w", err)
	}
	if workshop == nil {
		return nil, ErrNotFound
	}

	entry := &models.BillingEntry{
		ID:            uuid.New(),
		WorkshopID:    workshopID,
		Month:         input.Month,
		Amount:        input.Amount,
		InvoiceNumber: input.InvoiceNumber,
		Status:        status,
		Note:          input.Note,
	}
	if err := s.billingRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create billing entry: %w", err)
	}

	s.audit.Record(ctx, "billing.create", fmt.Sprintf("Billing entry %s added for %s", entry.Month, workshop.Name), actorEmail, models.JSONB{
		"workshop_id": workshopID.String(),
		"entry_id":    entry.ID.String(),
		"month":       entry.Month,
	})
	return entry, nil
}

func (s *BillingService) List(ctx context.Context, workshopID uuid.UUID) ([]*models.BillingEntry, error) {
	workshop, err := s.workshopRepo.GetByID(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workshop: %w", err)
	}
	if workshop == nil {
		return nil, ErrNotFound
	}
	return s.billingRepo.ListByWorkshop(ctx, workshopID)
}

type UpdateBillingInput struct {
	Month         *string  `json:"month"`
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0"`
	InvoiceNumber *string  `json:"invoice_number"`
	Status        *string  `json:"status"`
	Note          *string  `json:"note"`
}

// Update edits one entry. An entry belonging to another workshop reads as
// absent, never as forbidden.
func (s *BillingService) Update(ctx context.Context, workshopID, entryID uuid.UUID, input *UpdateBillingInput, actorEmail *string) (*models.BillingEntry, error) {
	entry, err := s.billingRepo.GetByID(ctx, workshopID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	if input.Month != nil {
		if err := common.ValidateBillingMonth(*input.Month); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		entry.Month = *input.Month
	}
	if input.Amount != nil {
		if *input.Amount < 0 {
			return nil, fmt.Errorf("%w: amount cannot be negative", ErrValidation)
		}
		entry.Amount = *input.Amount
	}
	if input.InvoiceNumber != nil {
		entry.InvoiceNumber = input.InvoiceNumber
	}
	if input.Status != nil {
		if *input.Status != models.BillingStatusPaid && *input.Status != models.BillingStatusUnpaid {
			return nil, fmt.Errorf("%w: status must be paid or unpaid", ErrValidation)
		}
		entry.Status = *input.Status
	}
	if input.Note != nil {
		entry.Note = input.Note
	}

	if err := s.billingRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update billing entry: %w", err)
	}

	s.audit.Record(ctx, "billing.update", fmt.Sprintf("Billing entry %s updated", entry.Month), actorEmail, models.JSONB{
		"workshop_id": workshopID.String(),
		"entry_id":    entry.ID.String(),
	})
	return entry, nil
}

// ToggleStatus flips one entry between paid and unpaid.
func (s *BillingService) ToggleStatus(ctx context.Context, workshopID, entryID uuid.UUID, actorEmail *string) (*models.BillingEntry, error) {
	entry, err := s.billingRepo.GetByID(ctx, workshopID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing entry: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	status := models.BillingStatusPaid
	if entry.Status == models.BillingStatusPaid {
		status = models.BillingStatusUnpaid
	}
	return s.Update(ctx, workshopID, entryID, &UpdateBillingInput{Status: &status}, actorEmail)
}
