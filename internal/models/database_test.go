package models_test

import (
	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestConnectInvalidDSN() {
	err := models.Connect("\000")
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestCreateSetsID() {
	budget := suite.createTestBudget(models.Budget{})
	assert.NotEqual(suite.T(), uuid.Nil, budget.ID)
	assert.False(suite.T(), budget.CreatedAt.IsZero())
}

// Querying a resource that does not exist returns an error naming the
// resource type.
func (suite *TestSuiteStandard) TestResourceNotFound() {
	var budget models.Budget
	err := models.DB.First(&budget, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "budget")

	var alert models.BudgetAlert
	err = models.DB.First(&alert, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Contains(suite.T(), err.Error(), "budget alert")
}

// When the database is closed, users get a generic error message instead of
// driver internals.
func (suite *TestSuiteStandard) TestGeneralErrorOnClosedDB() {
	suite.CloseDB()

	var budget models.Budget
	err := models.DB.First(&budget, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
