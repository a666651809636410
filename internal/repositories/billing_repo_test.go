package repositories

import (
	"context"
	"testing"
	"time"

	"warsztatplus/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BillingRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       BillingRepository
	workshopID uuid.UUID
	entryID    uuid.UUID
	ctx        context.Context
}

func (suite *BillingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBillingRepo(mock)
	suite.workshopID = uuid.New()
	suite.entryID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *BillingRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestBillingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BillingRepoTestSuite))
}

func stringPtr(s string) *string { return &s }

func (suite *BillingRepoTestSuite) TestCreate() {
	entry := &models.BillingEntry{
		ID:            suite.entryID,
		WorkshopID:    suite.workshopID,
		Month:         "2024-03",
		Amount:        499,
		InvoiceNumber: stringPtr("FV/2024/03/1"),
		Status:        models.BillingStatusUnpaid,
	}

	suite.mock.ExpectExec(`INSERT INTO workshop_billing`).
		WithArgs(entry.ID, entry.WorkshopID, entry.Month, entry.Amount, entry.InvoiceNumber, entry.Status, entry.Note).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, entry)
	assert.NoError(suite.T(), err)
}

func (suite *BillingRepoTestSuite) TestGetByID_ScopedToWorkshop() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "workshop_id", "month", "amount", "invoice_number", "status", "note", "created_at", "updated_at"}).
		AddRow(suite.entryID, suite.workshopID, "2024-03", 499.0, (*string)(nil), "unpaid", (*string)(nil), now, now)

	suite.mock.ExpectQuery(`SELECT .+ FROM workshop_billing WHERE id = \$1 AND workshop_id = \$2`).
		WithArgs(suite.entryID, suite.workshopID).
		WillReturnRows(rows)

	entry, err := suite.repo.GetByID(suite.ctx, suite.workshopID, suite.entryID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), entry)
	assert.Equal(suite.T(), "2024-03", entry.Month)
	assert.Equal(suite.T(), models.BillingStatusUnpaid, entry.Status)
}

func (suite *BillingRepoTestSuite) TestGetByID_WrongWorkshopReturnsNil() {
	otherWorkshop := uuid.New()
	suite.mock.ExpectQuery(`SELECT .+ FROM workshop_billing WHERE id = \$1 AND workshop_id = \$2`).
		WithArgs(suite.entryID, otherWorkshop).
		WillReturnRows(pgxmock.NewRows([]string{"id", "workshop_id", "month", "amount", "invoice_number", "status", "note", "created_at", "updated_at"}))

	entry, err := suite.repo.GetByID(suite.ctx, otherWorkshop, suite.entryID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), entry)
}

func (suite *BillingRepoTestSuite) TestListByWorkshop_OrderedByMonthDesc() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "workshop_id", "month", "amount", "invoice_number", "status", "note", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.workshopID, "2024-04", 499.0, (*string)(nil), "unpaid", (*string)(nil), now, now).
		AddRow(uuid.New(), suite.workshopID, "2024-03", 499.0, (*string)(nil), "paid", (*string)(nil), now, now)

	suite.mock.ExpectQuery(`ORDER BY month DESC, updated_at DESC`).
		WithArgs(suite.workshopID).
		WillReturnRows(rows)

	entries, err := suite.repo.ListByWorkshop(suite.ctx, suite.workshopID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), entries, 2)
	assert.Equal(suite.T(), "2024-04", entries[0].Month)
}

func (suite *BillingRepoTestSuite) TestUpdate_NoRowsIsError() {
	entry := &models.BillingEntry{
		ID:         suite.entryID,
		WorkshopID: suite.workshopID,
		Month:      "2024-03",
		Amount:     250,
		Status:     models.BillingStatusPaid,
	}

	suite.mock.ExpectExec(`UPDATE workshop_billing`).
		WithArgs(entry.Month, entry.Amount, entry.InvoiceNumber, entry.Status, entry.Note, entry.ID, entry.WorkshopID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.ctx, entry)
	assert.Error(suite.T(), err)
}
