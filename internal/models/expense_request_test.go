package models_test

import (
	"testing"

	"github.com/costwatch/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestRequestStatusTerminal() {
	tests := []struct {
		status   models.RequestStatus
		terminal bool
	}{
		{models.RequestStatusPending, false},
		{models.RequestStatusApproved, true},
		{models.RequestStatusRejected, true},
		{models.RequestStatusCancelled, true},
	}

	for _, tt := range tests {
		suite.T().Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func (suite *TestSuiteStandard) TestRequestTrimWhitespace() {
	request := suite.createTestRequest(models.ExpenseRequest{
		Title:       " New drill press ",
		Description: "  Replacement for the broken one ",
		Category:    " tools  ",
	})

	assert.Equal(suite.T(), "New drill press", request.Title)
	assert.Equal(suite.T(), "Replacement for the broken one", request.Description)
	assert.Equal(suite.T(), "tools", request.Category)
}

func (suite *TestSuiteStandard) TestRequestBeforeSave() {
	tests := []struct {
		name    string
		request models.ExpenseRequest
		err     error
	}{
		{
			"Valid",
			models.ExpenseRequest{Status: models.RequestStatusPending, Amount: decimal.NewFromInt(600)},
			nil,
		},
		{
			"Invalid status",
			models.ExpenseRequest{Status: "deferred", Amount: decimal.NewFromInt(600)},
			models.ErrRequestStatusInvalid,
		},
		{
			"Zero amount",
			models.ExpenseRequest{Status: models.RequestStatusPending},
			models.ErrAmountNotPositive,
		},
		{
			"Negative amount",
			models.ExpenseRequest{Status: models.RequestStatusPending, Amount: decimal.NewFromInt(-1)},
			models.ErrAmountNotPositive,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.request.BeforeSave(&gorm.DB{})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
