package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"warsztatplus/internal/caching"
	"warsztatplus/internal/models"
	"warsztatplus/internal/repositories"
)

const (
	settingsKeyLicenseMonths = "license_months"
	settingsKeyStatusOptions = "status_options"

	settingsCacheTTL = 10 * time.Minute
)

// SettingsService reads and writes the flat system configuration. Reads go
// through the cache; every write invalidates it.
type SettingsService struct {
	settingsRepo repositories.SettingsRepository
	cache        caching.CacheService
	audit        *AuditService
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, cache caching.CacheService, audit *AuditService) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		cache:        cache,
		audit:        audit,
	}
}

func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	if cached, err := s.cache.GetSettings(ctx); err == nil && cached != nil {
		return cached, nil
	}

	rows, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := models.DefaultSettings()
	if raw, ok := rows[settingsKeyLicenseMonths]; ok {
		months, err := strconv.Atoi(raw)
		if err != nil || months < 1 {
			log.Printf("WARN: ignoring malformed %s value %q", settingsKeyLicenseMonths, raw)
		} else {
			settings.LicenseMonths = months
		}
	}
	if raw, ok := rows[settingsKeyStatusOptions]; ok {
		var options []string
		if err := json.Unmarshal([]byte(raw), &options); err != nil || len(options) == 0 {
			log.Printf("WARN: ignoring malformed %s value %q", settingsKeyStatusOptions, raw)
		} else {
			settings.StatusOptions = options
		}
	}

	if err := s.cache.SetSettings(ctx, settings, settingsCacheTTL); err != nil {
		log.Printf("WARN: failed to cache settings: %v", err)
	}
	return settings, nil
}

type SettingsUpdate struct {
	LicenseMonths *int     `json:"license_months" validate:"omitempty,min=1,max=120"`
	StatusOptions []string `json:"status_options" validate:"omitempty,min=1,dive,required"`
}

func (s *SettingsService) Update(ctx context.Context, update *SettingsUpdate, actorEmail *string) (*models.Settings, error) {
	if update.LicenseMonths == nil && update.StatusOptions == nil {
		return nil, fmt.Errorf("%w: no settings fields provided", ErrValidation)
	}

	if update.LicenseMonths != nil {
		if *update.LicenseMonths < 1 {
			return nil, fmt.Errorf("%w: license_months must be positive", ErrValidation)
		}
		if err := s.settingsRepo.Upsert(ctx, settingsKeyLicenseMonths, strconv.Itoa(*update.LicenseMonths)); err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}
	if update.StatusOptions != nil {
		encoded, err := json.Marshal(update.StatusOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode status options: %w", err)
		}
		if err := s.settingsRepo.Upsert(ctx, settingsKeyStatusOptions, string(encoded)); err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	if err := s.cache.DeleteSettings(ctx); err != nil {
		log.Printf("WARN: failed to invalidate settings cache: %v", err)
	}

	s.audit.Record(ctx, "settings.update", "System settings updated", actorEmail, models.JSONB{
		"license_months": update.LicenseMonths,
		"status_options": update.StatusOptions,
	})

	return s.Get(ctx)
}

// EnsureDefaults seeds any missing settings keys on startup.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	rows, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	defaults := models.DefaultSettings()
	if _, ok := rows[settingsKeyLicenseMonths]; !ok {
		if err := s.settingsRepo.Upsert(ctx, settingsKeyLicenseMonths, strconv.Itoa(defaults.LicenseMonths)); err != nil {
			return err
		}
	}
	if _, ok := rows[settingsKeyStatusOptions]; !ok {
		encoded, err := json.Marshal(defaults.StatusOptions)
		if err != nil {
			return err
		}
		if err := s.settingsRepo.Upsert(ctx, settingsKeyStatusOptions, string(encoded)); err != nil {
			return err
		}
	}
	return nil
}
