package services

import (
	"context"
	"testing"
	"time"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	reportRepo   *MockReportRepository
	workshopRepo *MockWorkshopRepository
	settingsRepo *MockSettingsRepository
	auditRepo    *MockAuditLogsRepository
	service      *ReportService
	ctx          context.Context
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.reportRepo = new(MockReportRepository)
	s.workshopRepo = new(MockWorkshopRepository)
	s.settingsRepo = new(MockSettingsRepository)
	s.auditRepo = new(MockAuditLogsRepository)
	s.ctx = context.Background()

	audit := NewAuditService(s.auditRepo)
	settings := NewSettingsService(s.settingsRepo, noopCache{}, audit)
	s.service = NewReportService(s.reportRepo, s.workshopRepo, settings, noopCache{}, audit)

	s.auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	s.settingsRepo.On("GetAll", mock.Anything).Return(map[string]string{}, nil).Maybe()
}

func pendingReport(workshopID uuid.UUID) *models.Report {
	return &models.Report{
		ID:             uuid.New(),
		VIN:            "WVWZZZ1JZXW000001",
		WorkshopName:   "Auto Serwis Kowalski",
		WorkshopID:     &workshopID,
		Status:         models.DefaultReportStatus,
		ApprovalStatus: models.ApprovalPending,
	}
}

func (s *ReportServiceTestSuite) TestCreateStartsPending() {
	workshopID := uuid.New()
	s.workshopRepo.On("GetByID", s.ctx, workshopID).Return(&models.Workshop{
		ID:   workshopID,
		Name: "Auto Serwis Kowalski",
	}, nil)
	s.reportRepo.On("Create", s.ctx, mock.AnythingOfType("*models.Report")).Return(nil)

	report, err := s.service.Create(s.ctx, workshopID, &CreateReportInput{
		VIN: "wvwzzz1jzxw000001",
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.ApprovalPending, report.ApprovalStatus)
	assert.Equal(s.T(), "WVWZZZ1JZXW000001", report.VIN)
	assert.Equal(s.T(), models.DefaultReportStatus, report.Status)
	assert.Equal(s.T(), "Auto Serwis Kowalski", report.WorkshopName)
}

func (s *ReportServiceTestSuite) TestCreateRejectsMalformedVIN() {
	_, err := s.service.Create(s.ctx, uuid.New(), &CreateReportInput{VIN: "ABC!"})

	assert.ErrorIs(s.T(), err, ErrValidation)
	s.reportRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestWorkshopEditResetsToPending() {
	workshopID := uuid.New()
	report := pendingReport(workshopID)
	report.ApprovalStatus = models.ApprovalRejected
	note := "odrzucono"
	actor := "admin@example.com"
	now := time.Now()
	report.ModerationNote = &note
	report.ModeratedBy = &actor
	report.ModeratedAt = &now

	s.reportRepo.On("GetByID", s.ctx, report.ID).Return(report, nil)
	s.reportRepo.On("Update", s.ctx, report).Return(nil)

	summary := "wymiana rozrzadu"
	updated, err := s.service.UpdateAsWorkshop(s.ctx, workshopID, report.ID, &UpdateReportInput{
		Summary: &summary,
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.ApprovalPending, updated.ApprovalStatus)
	assert.Nil(s.T(), updated.ModerationNote)
	assert.Nil(s.T(), updated.ModeratedBy)
	assert.Nil(s.T(), updated.ModeratedAt)
	assert.Equal(s.T(), &summary, updated.Summary)
}

func (s *ReportServiceTestSuite) TestWorkshopCannotEditApprovedReport() {
	workshopID := uuid.New()
	report := pendingReport(workshopID)
	report.ApprovalStatus = models.ApprovalApproved
	s.reportRepo.On("GetByID", s.ctx, report.ID).Return(report, nil)

	summary := "proba edycji"
	_, err := s.service.UpdateAsWorkshop(s.ctx, workshopID, report.ID, &UpdateReportInput{Summary: &summary})

	assert.ErrorIs(s.T(), err, ErrForbidden)
	s.reportRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *ReportServiceTestSuite) TestForeignReportReadsAsAbsent() {
	report := pendingReport(uuid.New())
	s.reportRepo.On("GetByID", s.ctx, report.ID).Return(report, nil)

	summary := "cudzy raport"
	_, err := s.service.UpdateAsWorkshop(s.ctx, uuid.New(), report.ID, &UpdateReportInput{Summary: &summary})

	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *ReportServiceTestSuite) TestModerateStampsOnce() {
	report := pendingReport(uuid.New())
	s.reportRepo.On("GetByID", s.ctx, report.ID).Return(report, nil)
	s.reportRepo.On("Update", s.ctx, report).Return(nil)

	actor := "admin@example.com"
	updated, err := s.service.Moderate(s.ctx, report.ID, &ModerateReportInput{
		ApprovalStatus: models.ApprovalApproved,
	}, &actor)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.ApprovalApproved, updated.ApprovalStatus)
	assert.Equal(s.T(), &actor, updated.ModeratedBy)
	firstStamp := updated.ModeratedAt
	assert.NotNil(s.T(), firstStamp)

	// Re-sending the same verdict does not restamp.
	updated, err = s.service.Moderate(s.ctx, report.ID, &ModerateReportInput{
		ApprovalStatus: models.ApprovalApproved,
	}, &actor)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), firstStamp, updated.ModeratedAt)
}

func (s *ReportServiceTestSuite) TestModerateRejectsUnknownStatus() {
	_, err := s.service.Moderate(s.ctx, uuid.New(), &ModerateReportInput{ApprovalStatus: "published"}, nil)

	assert.ErrorIs(s.T(), err, ErrValidation)
}

func (s *ReportServiceTestSuite) TestLookupByVINNormalizesInput() {
	s.reportRepo.On("FindApprovedByVIN", s.ctx, "WVWZZZ1JZXW000001").
		Return([]*models.Report{}, nil)

	reports, err := s.service.LookupByVIN(s.ctx, "  wvwzzz1jzxw000001 ")

	assert.NoError(s.T(), err)
	assert.Empty(s.T(), reports)
	s.reportRepo.AssertCalled(s.T(), "FindApprovedByVIN", s.ctx, "WVWZZZ1JZXW000001")
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
