package models_test

import (
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestAlertTypeInvalid() {
	alert := models.BudgetAlert{Type: "informational"}
	err := alert.BeforeSave(&gorm.DB{})
	assert.ErrorIs(suite.T(), err, models.ErrAlertTypeInvalid)
}

// There can be at most one unacknowledged alert of a type per budget.
func (suite *TestSuiteStandard) TestAlertUniquePerBudgetAndType() {
	budget := suite.createTestBudget(models.Budget{OrganizationID: uuid.New()})

	_ = suite.createTestAlert(models.BudgetAlert{
		BudgetID:            budget.ID,
		OrganizationID:      budget.OrganizationID,
		Type:                models.AlertTypeWarning,
		ThresholdPercentage: 80,
		CurrentPercentage:   85,
	})

	duplicate := models.BudgetAlert{
		BudgetID:            budget.ID,
		OrganizationID:      budget.OrganizationID,
		Type:                models.AlertTypeWarning,
		ThresholdPercentage: 80,
		CurrentPercentage:   90,
	}
	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrAlertAlreadyOpen)

	// A different type for the same budget is fine
	critical := models.BudgetAlert{
		BudgetID:            budget.ID,
		OrganizationID:      budget.OrganizationID,
		Type:                models.AlertTypeCritical,
		ThresholdPercentage: 95,
		CurrentPercentage:   97,
	}
	assert.Nil(suite.T(), models.DB.Create(&critical).Error)
}

// Once the open alert is acknowledged, a new one of the same type can be
// raised for the budget.
func (suite *TestSuiteStandard) TestAlertReopensAfterAcknowledgement() {
	budget := suite.createTestBudget(models.Budget{OrganizationID: uuid.New()})

	alert := suite.createTestAlert(models.BudgetAlert{
		BudgetID:            budget.ID,
		OrganizationID:      budget.OrganizationID,
		Type:                models.AlertTypeWarning,
		ThresholdPercentage: 80,
		CurrentPercentage:   85,
	})

	ackedBy := uuid.New()
	ackedAt := time.Now().UTC()
	require.Nil(suite.T(), models.DB.Model(&alert).Updates(map[string]any{
		"acknowledged":    true,
		"acknowledged_by": ackedBy,
		"acknowledged_at": ackedAt,
	}).Error)

	reopened := models.BudgetAlert{
		BudgetID:            budget.ID,
		OrganizationID:      budget.OrganizationID,
		Type:                models.AlertTypeWarning,
		ThresholdPercentage: 80,
		CurrentPercentage:   88,
	}
	assert.Nil(suite.T(), models.DB.Create(&reopened).Error)
}
