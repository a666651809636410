package repositories

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SettingsRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo SettingsRepository
	ctx  context.Context
}

func (suite *SettingsRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSettingsRepo(mock)
	suite.ctx = context.Background()
}

func (suite *SettingsRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestSettingsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsRepoTestSuite))
}

func (suite *SettingsRepoTestSuite) TestGetAll() {
	rows := pgxmock.NewRows([]string{"key", "value"}).
		AddRow("license_months", "12").
		AddRow("status_options", `["W trakcie","Zakończony"]`)

	suite.mock.ExpectQuery(`SELECT key, value FROM settings`).
		WillReturnRows(rows)

	settings, err := suite.repo.GetAll(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), settings, 2)
	assert.Equal(suite.T(), "12", settings["license_months"])
}

// The upsert names only columns the migration creates: key, value, updated_at.
func (suite *SettingsRepoTestSuite) TestUpsert() {
	suite.mock.ExpectExec(`INSERT INTO settings \(key, value, updated_at\)\s+VALUES \(\$1, \$2, NOW\(\)\)\s+ON CONFLICT \(key\) DO UPDATE SET value = EXCLUDED\.value, updated_at = EXCLUDED\.updated_at`).
		WithArgs("license_months", "6").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.ctx, "license_months", "6")
	assert.NoError(suite.T(), err)
}

func (suite *SettingsRepoTestSuite) TestUpsertOverwritesExisting() {
	suite.mock.ExpectExec(`ON CONFLICT \(key\) DO UPDATE`).
		WithArgs("status_options", `["Nowy"]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.ctx, "status_options", `["Nowy"]`)
	assert.NoError(suite.T(), err)
}
