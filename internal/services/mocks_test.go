package services

import (
	"context"
	"time"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared by the service tests.

type MockWorkshopRepository struct {
	mock.Mock
}

func (m *MockWorkshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	args := m.Called(ctx, workshop)
	return args.Error(0)
}

func (m *MockWorkshopRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workshop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) List(ctx context.Context) ([]*models.Workshop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) ListByStatus(ctx context.Context, status string) ([]*models.Workshop, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*models.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) Update(ctx context.Context, workshop *models.Workshop) error {
	args := m.Called(ctx, workshop)
	return args.Error(0)
}

func (m *MockWorkshopRepository) UpdateContractState(ctx context.Context, workshop *models.Workshop) error {
	args := m.Called(ctx, workshop)
	return args.Error(0)
}

func (m *MockWorkshopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkshopUserRepository struct {
	mock.Mock
}

func (m *MockWorkshopUserRepository) Create(ctx context.Context, user *models.WorkshopUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockWorkshopUserRepository) GetByEmail(ctx context.Context, email string) (*models.WorkshopUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkshopUser), args.Error(1)
}

func (m *MockWorkshopUserRepository) GetByWorkshopID(ctx context.Context, workshopID uuid.UUID) (*models.WorkshopUser, error) {
	args := m.Called(ctx, workshopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkshopUser), args.Error(1)
}

func (m *MockWorkshopUserRepository) UpdateEmail(ctx context.Context, workshopID uuid.UUID, email string) error {
	args := m.Called(ctx, workshopID, email)
	return args.Error(0)
}

func (m *MockWorkshopUserRepository) UpdatePassword(ctx context.Context, workshopID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, workshopID, passwordHash)
	return args.Error(0)
}

func (m *MockWorkshopUserRepository) DeleteByWorkshopID(ctx context.Context, workshopID uuid.UUID) error {
	args := m.Called(ctx, workshopID)
	return args.Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context) ([]*models.Report, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Report), args.Error(1)
}

func (m *MockReportRepository) ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.Report, error) {
	args := m.Called(ctx, workshopID)
	return args.Get(0).([]*models.Report), args.Error(1)
}

func (m *MockReportRepository) FindApprovedByVIN(ctx context.Context, vin string) ([]*models.Report, error) {
	args := m.Called(ctx, vin)
	return args.Get(0).([]*models.Report), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type MockBillingRepository struct {
	mock.Mock
}

func (m *MockBillingRepository) Create(ctx context.Context, entry *models.BillingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBillingRepository) GetByID(ctx context.Context, workshopID, id uuid.UUID) (*models.BillingEntry, error) {
	args := m.Called(ctx, workshopID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BillingEntry), args.Error(1)
}

func (m *MockBillingRepository) ListByWorkshop(ctx context.Context, workshopID uuid.UUID) ([]*models.BillingEntry, error) {
	args := m.Called(ctx, workshopID)
	return args.Get(0).([]*models.BillingEntry), args.Error(1)
}

func (m *MockBillingRepository) Update(ctx context.Context, entry *models.BillingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditLogsRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if admin := args.Get(0); admin != nil {
		return admin.(*models.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// noopCache is a CacheService that never hits and never fails, keeping the
// cache out of the way in tests that exercise database-backed paths.
type noopCache struct{}

func (noopCache) GetSettings(ctx context.Context) (*models.Settings, error) { return nil, nil }
func (noopCache) SetSettings(ctx context.Context, settings *models.Settings, ttl time.Duration) error {
	return nil
}
func (noopCache) DeleteSettings(ctx context.Context) error { return nil }
func (noopCache) GetPublicWorkshops(ctx context.Context) ([]*models.Workshop, error) {
	return nil, nil
}
func (noopCache) SetPublicWorkshops(ctx context.Context, workshops []*models.Workshop, ttl time.Duration) error {
	return nil
}
func (noopCache) DeletePublicWorkshops(ctx context.Context) error { return nil }
func (noopCache) GetVINReports(ctx context.Context, vin string) ([]*models.Report, error) {
	return nil, nil
}
func (noopCache) SetVINReports(ctx context.Context, vin string, reports []*models.Report, ttl time.Duration) error {
	return nil
}
func (noopCache) DeleteVINReports(ctx context.Context, vin string) error { return nil }
func (noopCache) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}
func (noopCache) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	return nil
}
