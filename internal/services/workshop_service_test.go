package services

import (
	"context"
	"testing"
	"time"

	"warsztatplus/internal/contract"
	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WorkshopServiceTestSuite struct {
	suite.Suite
	workshopRepo *MockWorkshopRepository
	userRepo     *MockWorkshopUserRepository
	settingsRepo *MockSettingsRepository
	auditRepo    *MockAuditLogsRepository
	service      *WorkshopService
	ctx          context.Context
}

func (s *WorkshopServiceTestSuite) SetupTest() {
	s.workshopRepo = new(MockWorkshopRepository)
	s.userRepo = new(MockWorkshopUserRepository)
	s.settingsRepo = new(MockSettingsRepository)
	s.auditRepo = new(MockAuditLogsRepository)
	s.ctx = context.Background()

	audit := NewAuditService(s.auditRepo)
	settings := NewSettingsService(s.settingsRepo, noopCache{}, audit)
	s.service = NewWorkshopService(s.workshopRepo, s.userRepo, settings, noopCache{}, audit)

	s.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// indefiniteWorkshop is stable under evaluation: no pending transition.
func indefiniteWorkshop() *models.Workshop {
	since := time.Now().AddDate(-1, 0, 0)
	return &models.Workshop{
		ID:                      uuid.New(),
		Name:                    "Auto Serwis Kowalski",
		Status:                  models.WorkshopStatusActive,
		LicenseStart:            since,
		LicenseEnd:              time.Now().AddDate(1, 0, 0),
		ContractFixedEnd:        since,
		ContractIndefiniteSince: &since,
		ContractStatus:          models.ContractStatusIndefinite,
	}
}

func fixedWorkshop() *models.Workshop {
	return &models.Workshop{
		ID:               uuid.New(),
		Name:             "Warsztat Nowak",
		Status:           models.WorkshopStatusActive,
		LicenseStart:     time.Now(),
		LicenseEnd:       time.Now().AddDate(1, 0, 0),
		ContractFixedEnd: time.Now().AddDate(0, 6, 0),
		ContractStatus:   models.ContractStatusFixed,
	}
}

func (s *WorkshopServiceTestSuite) TestIssueTerminationRequiresIndefinite() {
	workshop := fixedWorkshop()
	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)

	_, err := s.service.IssueTermination(s.ctx, workshop.ID, nil)

	assert.ErrorIs(s.T(), err, ErrInvalidState)
	assert.Nil(s.T(), workshop.TerminationNoticeDate)
	assert.Nil(s.T(), workshop.TerminationEndDate)
	assert.Equal(s.T(), models.ContractStatusFixed, workshop.ContractStatus)
	s.workshopRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *WorkshopServiceTestSuite) TestIssueTerminationStampsNoticeFields() {
	workshop := indefiniteWorkshop()
	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)
	s.workshopRepo.On("Update", s.ctx, workshop).Return(nil)

	updated, err := s.service.IssueTermination(s.ctx, workshop.ID, nil)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.ContractStatusNotice, updated.ContractStatus)
	assert.Equal(s.T(), models.WorkshopStatusNotice, updated.Status)
	assert.NotNil(s.T(), updated.TerminationNoticeDate)
	if assert.NotNil(s.T(), updated.TerminationEndDate) {
		// End of the month three months from the notice date.
		end := *updated.TerminationEndDate
		next := end.Add(24 * time.Hour)
		assert.Equal(s.T(), 1, next.Day())
	}
}

func (s *WorkshopServiceTestSuite) TestCancelTerminationRestoresIndefinite() {
	workshop := indefiniteWorkshop()
	notice := time.Now().AddDate(0, -1, 0)
	end := time.Now().AddDate(0, 2, 0)
	workshop.TerminationNoticeDate = &notice
	workshop.TerminationEndDate = &end
	workshop.ContractStatus = models.ContractStatusNotice
	workshop.Status = models.WorkshopStatusNotice

	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)
	s.workshopRepo.On("Update", s.ctx, workshop).Return(nil)

	updated, err := s.service.CancelTermination(s.ctx, workshop.ID, nil)

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), updated.TerminationNoticeDate)
	assert.Nil(s.T(), updated.TerminationEndDate)
	assert.Nil(s.T(), updated.TerminatedAt)
	assert.Equal(s.T(), models.ContractStatusIndefinite, updated.ContractStatus)
	assert.Equal(s.T(), models.WorkshopStatusActive, updated.Status)
}

func (s *WorkshopServiceTestSuite) TestCancelTerminationWithoutNoticeIsNoop() {
	workshop := indefiniteWorkshop()
	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)

	updated, err := s.service.CancelTermination(s.ctx, workshop.ID, nil)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.ContractStatusIndefinite, updated.ContractStatus)
	s.workshopRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *WorkshopServiceTestSuite) TestCreateRollsBackWorkshopOnLoginConflict() {
	s.settingsRepo.On("GetAll", s.ctx).Return(map[string]string{}, nil)
	s.workshopRepo.On("Create", s.ctx, mock.AnythingOfType("*models.Workshop")).Return(nil)
	s.userRepo.On("Create", s.ctx, mock.AnythingOfType("*models.WorkshopUser")).
		Return(&pgconn.PgError{Code: pgUniqueViolation})
	s.workshopRepo.On("Delete", s.ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	_, err := s.service.Create(s.ctx, &CreateWorkshopInput{
		Name:          "Warsztat Testowy",
		LoginEmail:    "taken@example.com",
		LoginPassword: "haslo1234",
	}, nil)

	assert.ErrorIs(s.T(), err, ErrConflict)
	s.workshopRepo.AssertCalled(s.T(), "Delete", s.ctx, mock.AnythingOfType("uuid.UUID"))
}

func (s *WorkshopServiceTestSuite) TestCreateSetsContractWindowFromSettings() {
	s.settingsRepo.On("GetAll", s.ctx).Return(map[string]string{"license_months": "6"}, nil)
	s.workshopRepo.On("Create", s.ctx, mock.AnythingOfType("*models.Workshop")).Return(nil)
	s.userRepo.On("Create", s.ctx, mock.AnythingOfType("*models.WorkshopUser")).Return(nil)

	workshop, err := s.service.Create(s.ctx, &CreateWorkshopInput{
		Name:          "Warsztat Testowy",
		LoginEmail:    "Nowy@Example.com",
		LoginPassword: "haslo1234",
	}, nil)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.WorkshopStatusActive, workshop.Status)
	assert.Equal(s.T(), models.ContractStatusFixed, workshop.ContractStatus)
	assert.Equal(s.T(), "nowy@example.com", *workshop.LoginEmail)
	assert.WithinDuration(s.T(), contract.AddMonths(time.Now(), 6), workshop.LicenseEnd, time.Minute)
	assert.WithinDuration(s.T(), contract.AddMonths(time.Now(), 12), workshop.ContractFixedEnd, time.Minute)
}

func (s *WorkshopServiceTestSuite) TestExtendLicenseClampsDayOverflow() {
	workshop := indefiniteWorkshop()
	workshop.LicenseEnd = time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC)
	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)
	s.workshopRepo.On("Update", s.ctx, workshop).Return(nil)

	updated, err := s.service.ExtendLicense(s.ctx, workshop.ID, 1, nil)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC), updated.LicenseEnd)
}

func (s *WorkshopServiceTestSuite) TestGetPersistsLazyTransition() {
	workshop := fixedWorkshop()
	workshop.ContractFixedEnd = time.Now().AddDate(0, -1, 0)
	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)
	s.workshopRepo.On("UpdateContractState", s.ctx, workshop).Return(nil)

	updated, err := s.service.Get(s.ctx, workshop.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.ContractStatusIndefinite, updated.ContractStatus)
	assert.NotNil(s.T(), updated.ContractIndefiniteSince)
	s.workshopRepo.AssertCalled(s.T(), "UpdateContractState", s.ctx, workshop)
}

func (s *WorkshopServiceTestSuite) TestGetUnknownWorkshop() {
	id := uuid.New()
	s.workshopRepo.On("GetByID", s.ctx, id).Return(nil, nil)

	_, err := s.service.Get(s.ctx, id)

	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *WorkshopServiceTestSuite) TestSetActiveFlipsStatusOnly() {
	workshop := indefiniteWorkshop()
	s.workshopRepo.On("GetByID", s.ctx, workshop.ID).Return(workshop, nil)
	s.workshopRepo.On("Update", s.ctx, workshop).Return(nil)

	updated, err := s.service.SetActive(s.ctx, workshop.ID, false, nil)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.WorkshopStatusInactive, updated.Status)
	assert.Equal(s.T(), models.ContractStatusIndefinite, updated.ContractStatus)
}

func TestWorkshopServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkshopServiceTestSuite))
}
