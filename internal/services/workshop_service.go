package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"warsztatplus/internal/caching"
	"warsztatplus/internal/contract"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const publicWorkshopsCacheTTL = 5 * time.Minute

const pgUniqueViolation = "23505"

type WorkshopService struct {
	workshopRepo     repositories.WorkshopRepository
	workshopUserRepo repositories.WorkshopUserRepository
	settings         *SettingsService
	cache            caching.CacheService
	audit            *AuditService
}

func NewWorkshopService(
	workshopRepo repositories.WorkshopRepository,
	workshopUserRepo repositories.WorkshopUserRepository,
	settings *SettingsService,
	cache caching.CacheService,
	audit *AuditService,
) *WorkshopService {
	return &WorkshopService{
		workshopRepo:     workshopRepo,
		workshopUserRepo: workshopUserRepo,
		settings:         settings,
		cache:            cache,
		audit:            audit,
	}
}

// refresh applies the contract lifecycle rules against the current clock
// and persists any resulting transition. Transitions happen only here, on
// read paths, never from the scheduler.
func (s *WorkshopService) refresh(ctx context.Context, workshop *models.Workshop) {
	if !contract.Evaluate(workshop, time.Now()) {
		return
	}
	if err := s.workshopRepo.UpdateContractState(ctx, workshop); err != nil {
		log.Printf("WARN: failed to persist contract transition for workshop %s: %v", workshop.ID, err)
	}
}

func (s *WorkshopService) List(ctx context.Context) ([]*models.Workshop, error) {
	workshops, err := s.workshopRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	for _, w := range workshops {
		s.refresh(ctx, w)
	}
	return workshops, nil
}

// PublicWorkshop is the directory projection exposed without authentication.
type PublicWorkshop struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address *string   `json:"address"`
	City    *string   `json:"city"`
	Phone   *string   `json:"phone"`
}

func (s *WorkshopService) ListPublic(ctx context.Context) ([]*PublicWorkshop, error) {
	if cached, err := s.cache.GetPublicWorkshops(ctx); err == nil && cached != nil {
		return projectPublic(cached), nil
	}

	workshops, err := s.workshopRepo.ListByStatus(ctx, models.WorkshopStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	active := workshops[:0]
	for _, w := range workshops {
		s.refresh(ctx, w)
		if w.Active() {
			active = append(active, w)
		}
	}

	if err := s.cache.SetPublicWorkshops(ctx, active, publicWorkshopsCacheTTL); err != nil {
		log.Printf("WARN: failed to cache public workshop directory: %v", err)
	}
	return projectPublic(active), nil
}

func projectPublic(workshops []*models.Workshop) []*PublicWorkshop {
	out := make([]*PublicWorkshop, 0, len(workshops))
	for _, w := range workshops {
		out = append(out, &PublicWorkshop{
			ID:      w.ID,
			Name:    w.Name,
			Address: w.Address,
			City:    w.City,
			Phone:   w.Phone,
		})
	}
	return out
}

func (s *WorkshopService) Get(ctx context.Context, id uuid.UUID) (*models.Workshop, error) {
	workshop, err := s.workshopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load workshop: %w", err)
	}
	if workshop == nil {
		return nil, ErrNotFound
	}
	s.refresh(ctx, workshop)
	return workshop, nil
}

type CreateWorkshopInput struct {
	Name                      string   `json:"name" validate:"required"`
	Address                   *string  `json:"address"`
	City                      *string  `json:"city"`
	Phone                     *string  `json:"phone"`
	Email                     *string  `json:"email" validate:"omitempty,email"`
	BillingEmail              *string  `json:"billing_email" validate:"omitempty,email"`
	Notes                     *string  `json:"notes"`
	SubscriptionAmount        *float64 `json:"subscription_amount" validate:"omitempty,gte=0"`
	SubscriptionInitialAmount *float64 `json:"subscription_initial_amount" validate:"omitempty,gte=0"`
	SubscriptionInitialNote   *string  `json:"subscription_initial_note"`
	LoginEmail                string   `json:"login_email" validate:"required,email"`
	LoginPassword             string   `json:"login_password" validate:"required,min=8"`
}

// Create persists the workshop row and its paired login account. When the
// login email is already taken the workshop row is removed again and the
// caller sees a conflict, so the two rows stay paired or absent together.
func (s *WorkshopService) Create(ctx context.Context, input *CreateWorkshopInput, actorEmail *string) (*models.Workshop, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	workshop := &models.Workshop{
		ID:                        uuid.New(),
		Name:                      strings.TrimSpace(input.Name),
		Address:                   input.Address,
		City:                      input.City,
		Phone:                     input.Phone,
		Email:                     input.Email,
		BillingEmail:              input.BillingEmail,
		Status:                    models.WorkshopStatusActive,
		Notes:                     input.Notes,
		SubscriptionAmount:        input.SubscriptionAmount,
		SubscriptionStartDate:     &now,
		SubscriptionInitialAmount: input.SubscriptionInitialAmount,
		SubscriptionInitialNote:   input.SubscriptionInitialNote,
		LicenseStart:              now,
		LicenseEnd:                contract.AddMonths(now, settings.LicenseMonths),
		ContractFixedEnd:          contract.AddMonths(now, contract.ContractMonths),
		ContractStatus:            models.ContractStatusFixed,
	}
	if workshop.Name == "" {
		return nil, fmt.Errorf("%w: workshop name is required", ErrValidation)
	}

	if err := s.workshopRepo.Create(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.LoginPassword), bcrypt.DefaultCost)
	if err != nil {
		_ = s.workshopRepo.Delete(ctx, workshop.ID)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.WorkshopUser{
		ID:           uuid.New(),
		WorkshopID:   workshop.ID,
		Email:        strings.ToLower(strings.TrimSpace(input.LoginEmail)),
		PasswordHash: string(hash),
		Role:         "workshop",
	}
	if err := s.workshopUserRepo.Create(ctx, user); err != nil {
		if delErr := s.workshopRepo.Delete(ctx, workshop.ID); delErr != nil {
			log.Printf("WARN: failed to roll back workshop %s after account error: %v", workshop.ID, delErr)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: login email %s is taken", ErrConflict, user.Email)
		}
		return nil, fmt.Errorf("failed to create workshop account: %w", err)
	}

	workshop.LoginEmail = &user.Email
	s.invalidatePublicCache(ctx)
	s.audit.Record(ctx, "workshop.create", fmt.Sprintf("Workshop %s created", workshop.Name), actorEmail, models.JSONB{
		"workshop_id": workshop.ID.String(),
	})
	return workshop, nil
}

type UpdateWorkshopInput struct {
	Name                      *string  `json:"name"`
	Address                   *string  `json:"address"`
	City                      *string  `json:"city"`
	Phone                     *string  `json:"phone"`
	Email                     *string  `json:"email" validate:"omitempty,email"`
	BillingEmail              *string  `json:"billing_email" validate:"omitempty,email"`
	Notes                     *string  `json:"notes"`
	SubscriptionAmount        *float64 `json:"subscription_amount" validate:"omitempty,gte=0"`
	SubscriptionInitialAmount *float64 `json:"subscription_initial_amount" validate:"omitempty,gte=0"`
	SubscriptionInitialNote   *string  `json:"subscription_initial_note"`
	LoginEmail                *string  `json:"login_email" validate:"omitempty,email"`
}

func (s *WorkshopService) Update(ctx context.Context, id uuid.UUID, input *UpdateWorkshopInput, actorEmail *string) (*models.Workshop, error) {
	workshop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: workshop name cannot be empty", ErrValidation)
		}
		workshop.Name = name
	}
	if input.Address != nil {
		workshop.Address = input.Address
	}
	if input.City != nil {
		workshop.City = input.City
	}
	if input.Phone != nil {
		workshop.Phone = input.Phone
	}
	if input.Email != nil {
		workshop.Email = input.Email
	}
	if input.BillingEmail != nil {
		workshop.BillingEmail = input.BillingEmail
	}
	if input.Notes != nil {
		workshop.Notes = input.Notes
	}
	if input.SubscriptionAmount != nil {
		workshop.SubscriptionAmount = input.SubscriptionAmount
	}
	if input.SubscriptionInitialAmount != nil {
		workshop.SubscriptionInitialAmount = input.SubscriptionInitialAmount
	}
	if input.SubscriptionInitialNote != nil {
		workshop.SubscriptionInitialNote = input.SubscriptionInitialNote
	}

	if err := s.workshopRepo.Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}

	if input.LoginEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*input.LoginEmail))
		if err := s.workshopUserRepo.UpdateEmail(ctx, id, email); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return nil, fmt.Errorf("%w: login email %s is taken", ErrConflict, email)
			}
			return nil, fmt.Errorf("failed to update workshop account: %w", err)
		}
		workshop.LoginEmail = &email
	}

	s.invalidatePublicCache(ctx)
	s.audit.Record(ctx, "workshop.update", fmt.Sprintf("Workshop %s updated", workshop.Name), actorEmail, models.JSONB{
		"workshop_id": workshop.ID.String(),
	})
	return workshop, nil
}

// ExtendLicense moves the license end forward by the given number of
// months, falling back to the configured default when months is zero.
// Day-of-month overflow clamps to the last day of the resulting month.
func (s *WorkshopService) ExtendLicense(ctx context.Context, id uuid.UUID, months int, actorEmail *string) (*models.Workshop, error) {
	if months < 0 {
		return nil, fmt.Errorf("%w: months must be positive", ErrValidation)
	}

	workshop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if months == 0 {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		months = settings.LicenseMonths
	}
	workshop.LicenseEnd = contract.AddMonths(workshop.LicenseEnd, months)

	if err := s.workshopRepo.Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to extend license: %w", err)
	}

	s.audit.Record(ctx, "workshop.license_extend", fmt.Sprintf("License for %s extended to %s", workshop.Name, workshop.LicenseEnd.Format("2006-01-02")), actorEmail, models.JSONB{
		"workshop_id": workshop.ID.String(),
		"license_end": workshop.LicenseEnd.Format(time.RFC3339),
	})
	return workshop, nil
}

// SetActive flips a workshop between active and inactive. It changes the
// visibility status only, never the contract phase.
func (s *WorkshopService) SetActive(ctx context.Context, id uuid.UUID, active bool, actorEmail *string) (*models.Workshop, error) {
	workshop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		workshop.Status = models.WorkshopStatusActive
	} else {
		workshop.Status = models.WorkshopStatusInactive
	}

	if err := s.workshopRepo.Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to update workshop status: %w", err)
	}

	s.invalidatePublicCache(ctx)
	s.audit.Record(ctx, "workshop.set_active", fmt.Sprintf("Workshop %s set %s", workshop.Name, workshop.Status), actorEmail, models.JSONB{
		"workshop_id": workshop.ID.String(),
		"status":      workshop.Status,
	})
	return workshop, nil
}

// IssueTermination starts the notice period. Only an indefinite contract
// can be terminated; the notice runs to the end of the month three months
// out.
func (s *WorkshopService) IssueTermination(ctx context.Context, id uuid.UUID, actorEmail *string) (*models.Workshop, error) {
	workshop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if workshop.ContractStatus != models.ContractStatusIndefinite {
		return nil, fmt.Errorf("%w: only an indefinite contract can be terminated, current state is %s", ErrInvalidState, workshop.ContractStatus)
	}

	now := time.Now()
	end := contract.TerminationEnd(now)
	workshop.TerminationNoticeDate = &now
	workshop.TerminationEndDate = &end
	workshop.ContractStatus = models.ContractStatusNotice
	workshop.Status = models.WorkshopStatusNotice

	if err := s.workshopRepo.Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to issue termination: %w", err)
	}

	s.invalidatePublicCache(ctx)
	s.audit.Record(ctx, "workshop.termination_issue", fmt.Sprintf("Termination issued for %s, effective %s", workshop.Name, end.Format("2006-01-02")), actorEmail, models.JSONB{
		"workshop_id":          workshop.ID.String(),
		"termination_end_date": end.Format(time.RFC3339),
	})
	return workshop, nil
}

// CancelTermination withdraws a pending notice. Without a pending notice it
// is a no-op. The contract returns to indefinite or fixed depending on
// whether the fixed term had already rolled over.
func (s *WorkshopService) CancelTermination(ctx context.Context, id uuid.UUID, actorEmail *string) (*models.Workshop, error) {
	workshop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if workshop.TerminationNoticeDate == nil {
		return workshop, nil
	}

	workshop.TerminationNoticeDate = nil
	workshop.TerminationEndDate = nil
	workshop.TerminatedAt = nil
	if workshop.ContractIndefiniteSince != nil {
		workshop.ContractStatus = models.ContractStatusIndefinite
	} else {
		workshop.ContractStatus = models.ContractStatusFixed
	}
	workshop.Status = models.WorkshopStatusActive

	if err := s.workshopRepo.Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to cancel termination: %w", err)
	}

	s.invalidatePublicCache(ctx)
	s.audit.Record(ctx, "workshop.termination_cancel", fmt.Sprintf("Termination cancelled for %s", workshop.Name), actorEmail, models.JSONB{
		"workshop_id": workshop.ID.String(),
	})
	return workshop, nil
}

func (s *WorkshopService) Delete(ctx context.Context, id uuid.UUID, actorEmail *string) error {
	workshop, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.workshopUserRepo.DeleteByWorkshopID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workshop account: %w", err)
	}
	if err := s.workshopRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}

	s.invalidatePublicCache(ctx)
	s.audit.Record(ctx, "workshop.delete", fmt.Sprintf("Workshop %s deleted", workshop.Name), actorEmail, models.JSONB{
		"workshop_id": id.String(),
	})
	return nil
}

func (s *WorkshopService) invalidatePublicCache(ctx context.Context) {
	if err := s.cache.DeletePublicWorkshops(ctx); err != nil {
		log.Printf("WARN: failed to invalidate public workshop cache: %v", err)
	}
}
