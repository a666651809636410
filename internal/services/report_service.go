package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"warsztatplus/internal/caching"
	"warsztatplus/internal/common"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
)

const vinCacheTTL = 2 * time.Minute

type ReportService struct {
	reportRepo   repositories.ReportRepository
	workshopRepo repositories.WorkshopRepository
	settings     *SettingsService
	cache        caching.CacheService
	audit        *AuditService
}

func NewReportService(
	reportRepo repositories.ReportRepository,
	workshopRepo repositories.WorkshopRepository,
	settings *SettingsService,
	cache caching.CacheService,
	audit *AuditService,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		workshopRepo: workshopRepo,
		settings:     settings,
		cache:        cache,
		audit:        audit,
	}
}

type CreateReportInput struct {
	VIN                   string  `json:"vin" validate:"required"`
	RegistrationNumber    *string `json:"registration_number"`
	MileageKm             *int    `json:"mileage_km" validate:"omitempty,gte=0"`
	FirstRegistrationDate *string `json:"first_registration_date"`
	Status                string  `json:"status"`
	Summary               *string `json:"summary"`
}

// Create submits a new report. It always enters the moderation queue as
// pending, whatever the payload says.
func (s *ReportService) Create(ctx context.Context, workshopID uuid.UUID, input *CreateReportInput) (*models.Report, error) {
	vin, err := common.NormalizeVIN(input.VIN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.FirstRegistrationDate != nil {
		if err := common.ValidateDateFormat(*input.FirstRegistrationDate, "first_registration_date"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	status, err := s.resolveStatusLabel(ctx, input.Status)
	if err != nil {
		return nil, err
	}

	workshop, err := s.workshopRepo.GetByID(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workshop: %w", err)
	}
	if workshop == nil {
		return nil, ErrNotFound
	}

	report := &models.Report{
		ID:                    uuid.New(),
		VIN:                   vin,
		RegistrationNumber:    input.RegistrationNumber,
		WorkshopName:          workshop.Name,
		WorkshopID:            &workshop.ID,
		MileageKm:             input.MileageKm,
		FirstRegistrationDate: input.FirstRegistrationDate,
		Status:                status,
		ApprovalStatus:        models.ApprovalPending,
		Summary:               input.Summary,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func (s *ReportService) resolveStatusLabel(ctx context.Context, status string) (string, error) {
	if status == "" {
		return models.DefaultReportStatus, nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	for _, option := range settings.StatusOptions {
		if option == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status label %q", ErrValidation, status)
}

func (s *ReportService) List(ctx context.Context, workshopID *uuid.UUID) ([]*models.Report, error) {
	if workshopID != nil {
		return s.reportRepo.ListByWorkshop(ctx, *workshopID)
	}
	return s.reportRepo.List(ctx)
}

func (s *ReportService) ListMine(ctx context.Context, workshopID uuid.UUID) ([]*models.Report, error) {
	return s.reportRepo.ListByWorkshop(ctx, workshopID)
}

type UpdateReportInput struct {
	VIN                   *string `json:"vin"`
	RegistrationNumber    *string `json:"registration_number"`
	MileageKm             *int    `json:"mileage_km" validate:"omitempty,gte=0"`
	FirstRegistrationDate *string `json:"first_registration_date"`
	Status                *string `json:"status"`
	Summary               *string `json:"summary"`
}

// UpdateAsWorkshop edits the workshop's own report. A report belonging to
// another workshop reads as absent. An approved report cannot be edited.
// Any accepted edit resets the report to pending and clears the prior
// moderation stamps, as a fresh submission.
func (s *ReportService) UpdateAsWorkshop(ctx context.Context, workshopID, reportID uuid.UUID, input *UpdateReportInput) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil || report.WorkshopID == nil || *report.WorkshopID != workshopID {
		return nil, ErrNotFound
	}
	if report.ApprovalStatus == models.ApprovalApproved {
		return nil, fmt.Errorf("%w: approved reports cannot be edited", ErrForbidden)
	}

	if err := s.applyUpdate(ctx, report, input); err != nil {
		return nil, err
	}

	report.ApprovalStatus = models.ApprovalPending
	report.ModerationNote = nil
	report.ModeratedBy = nil
	report.ModeratedAt = nil

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	s.invalidateVINCache(ctx, report.VIN)
	return report, nil
}

// UpdateAsAdmin edits any report without touching its moderation state.
func (s *ReportService) UpdateAsAdmin(ctx context.Context, reportID uuid.UUID, input *UpdateReportInput) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return nil, ErrNotFound
	}

	if err := s.applyUpdate(ctx, report, input); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	s.invalidateVINCache(ctx, report.VIN)
	return report, nil
}

func (s *ReportService) applyUpdate(ctx context.Context, report *models.Report, input *UpdateReportInput) error {
	if input.VIN != nil {
		vin, err := common.NormalizeVIN(*input.VIN)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		s.invalidateVINCache(ctx, report.VIN)
		report.VIN = vin
	}
	if input.RegistrationNumber != nil {
		report.RegistrationNumber = input.RegistrationNumber
	}
	if input.MileageKm != nil {
		if *input.MileageKm < 0 {
			return fmt.Errorf("%w: mileage_km cannot be negative", ErrValidation)
		}
		report.MileageKm = input.MileageKm
	}
	if input.FirstRegistrationDate != nil {
		if err := common.ValidateDateFormat(*input.FirstRegistrationDate, "first_registration_date"); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		report.FirstRegistrationDate = input.FirstRegistrationDate
	}
	if input.Status != nil {
		status, err := s.resolveStatusLabel(ctx, *input.Status)
		if err != nil {
			return err
		}
		report.Status = status
	}
	if input.Summary != nil {
		report.Summary = input.Summary
	}
	return nil
}

type ModerateReportInput struct {
	ApprovalStatus string  `json:"approval_status" validate:"required,oneof=approved rejected pending"`
	ModerationNote *string `json:"moderation_note"`
}

// Moderate records the admin's verdict. Setting the status a report already
// has does not restamp the moderation fields.
func (s *ReportService) Moderate(ctx context.Context, reportID uuid.UUID, input *ModerateReportInput, actorEmail *string) (*models.Report, error) {
	switch input.ApprovalStatus {
	case models.ApprovalApproved, models.ApprovalRejected, models.ApprovalPending:
	default:
		return nil, fmt.Errorf("%w: unknown approval status %q", ErrValidation, input.ApprovalStatus)
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return nil, ErrNotFound
	}

	if report.ApprovalStatus != input.ApprovalStatus {
		now := time.Now()
		report.ApprovalStatus = input.ApprovalStatus
		report.ModeratedAt = &now
		report.ModeratedBy = actorEmail
	}
	if input.ModerationNote != nil {
		report.ModerationNote = input.ModerationNote
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to moderate report: %w", err)
	}

	s.invalidateVINCache(ctx, report.VIN)
	s.audit.Record(ctx, "report.moderate", fmt.Sprintf("Report %s set to %s", report.ID, report.ApprovalStatus), actorEmail, models.JSONB{
		"report_id":       report.ID.String(),
		"approval_status": report.ApprovalStatus,
	})
	return report, nil
}

// LookupByVIN serves the public vehicle history: approved reports only,
// most recently updated first.
func (s *ReportService) LookupByVIN(ctx context.Context, rawVIN string) ([]*models.Report, error) {
	vin, err := common.NormalizeVIN(rawVIN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if cached, err := s.cache.GetVINReports(ctx, vin); err == nil && cached != nil {
		return cached, nil
	}

	reports, err := s.reportRepo.FindApprovedByVIN(ctx, vin)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reports: %w", err)
	}
	if reports == nil {
		reports = []*models.Report{}
	}

	if err := s.cache.SetVINReports(ctx, vin, reports, vinCacheTTL); err != nil {
		log.Printf("WARN: failed to cache VIN lookup for %s: %v", vin, err)
	}
	return reports, nil
}

func (s *ReportService) invalidateVINCache(ctx context.Context, vin string) {
	if err := s.cache.DeleteVINReports(ctx, vin); err != nil {
		log.Printf("WARN: failed to invalidate VIN cache for %s: %v", vin, err)
	}
}
