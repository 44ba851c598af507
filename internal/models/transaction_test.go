package models_test

import (
	"testing"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	budget := suite.createTestBudget(models.Budget{})

	transaction := suite.createTestTransaction(models.BudgetTransaction{
		BudgetID:       budget.ID,
		OrganizationID: budget.OrganizationID,
		Amount:         decimal.NewFromInt(10),
		Note:           " Invoice 2026-117  ",
	})

	assert.Equal(suite.T(), "Invoice 2026-117", transaction.Note)
}

func (suite *TestSuiteStandard) TestTransactionBeforeSave() {
	tests := []struct {
		name        string
		transaction models.BudgetTransaction
		err         error
	}{
		{
			"Valid expense",
			models.BudgetTransaction{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(100)},
			nil,
		},
		{
			"Valid negative adjustment",
			models.BudgetTransaction{Type: models.TransactionTypeAdjustment, Amount: decimal.NewFromInt(-100)},
			nil,
		},
		{
			"Invalid type",
			models.BudgetTransaction{Type: "refund", Amount: decimal.NewFromInt(100)},
			models.ErrTransactionTypeInvalid,
		},
		{
			"Zero amount",
			models.BudgetTransaction{Type: models.TransactionTypeAdjustment},
			models.ErrAmountZero,
		},
		{
			"Negative expense",
			models.BudgetTransaction{Type: models.TransactionTypeExpense, Amount: decimal.NewFromInt(-100)},
			models.ErrAmountNotPositive,
		},
		{
			"Negative transfer",
			models.BudgetTransaction{Type: models.TransactionTypeTransfer, Amount: decimal.NewFromInt(-100)},
			models.ErrAmountNotPositive,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.transaction.BeforeSave(&gorm.DB{})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// The transaction log is append-only, updating or deleting a recorded
// transaction must fail.
func (suite *TestSuiteStandard) TestTransactionImmutable() {
	budget := suite.createTestBudget(models.Budget{OrganizationID: uuid.New()})

	transaction := suite.createTestTransaction(models.BudgetTransaction{
		BudgetID:       budget.ID,
		OrganizationID: budget.OrganizationID,
		Amount:         decimal.NewFromInt(50),
	})

	err := models.DB.Model(&transaction).Update("note", "changed my mind").Error
	assert.ErrorIs(suite.T(), err, models.ErrTransactionImmutable)

	err = models.DB.Delete(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrTransactionImmutable)

	// The record is unchanged
	var reloaded models.BudgetTransaction
	require.Nil(suite.T(), models.DB.First(&reloaded, transaction.ID).Error)
	assert.Equal(suite.T(), "", reloaded.Note)
	assert.True(suite.T(), reloaded.Amount.Equal(decimal.NewFromInt(50)))
}
