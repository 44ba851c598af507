package ledger_test

import (
	"github.com/costwatch/backend/internal/ledger"
	"github.com/costwatch/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// raiseWarning pushes the budget over its warning threshold and returns the
// raised alert.
func (suite *TestSuiteStandard) raiseWarning(budget models.Budget) models.BudgetAlert {
	amount := budget.TotalAmount.Mul(decimal.NewFromFloat(0.85)).Sub(budget.SpentAmount)

	result, err := suite.service.ApplySpend(suite.admin, budget.ID, amount, nil, "")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), result.Alerts, 1)

	return result.Alerts[0]
}

func (suite *TestSuiteStandard) TestAcknowledgeAlert() {
	budget := suite.createTestBudget(ledger.BudgetParams{})
	alert := suite.raiseWarning(budget)

	acknowledged, err := suite.service.AcknowledgeAlert(suite.member, alert.ID)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), acknowledged.Acknowledged)
	assert.Equal(suite.T(), suite.member.UserID, *acknowledged.AcknowledgedBy)
	assert.NotNil(suite.T(), acknowledged.AcknowledgedAt)
}

// Acknowledging twice is an error, the second caller learns that someone was
// faster.
func (suite *TestSuiteStandard) TestAcknowledgeAlertTwice() {
	budget := suite.createTestBudget(ledger.BudgetParams{})
	alert := suite.raiseWarning(budget)

	_, err := suite.service.AcknowledgeAlert(suite.member, alert.ID)
	require.Nil(suite.T(), err)

	_, err = suite.service.AcknowledgeAlert(suite.admin, alert.ID)
	assert.ErrorIs(suite.T(), err, ledger.ErrAlertAlreadyAcknowledged)
}

func (suite *TestSuiteStandard) TestAcknowledgeAlertScopedToOrganization() {
	budget := suite.createTestBudget(ledger.BudgetParams{})
	alert := suite.raiseWarning(budget)

	_, err := suite.service.AcknowledgeAlert(suite.stranger, alert.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

// After the open alert is acknowledged, crossing the threshold again raises a
// new one.
func (suite *TestSuiteStandard) TestAlertRaisedAgainAfterAcknowledgement() {
	budget := suite.createTestBudget(ledger.BudgetParams{TotalAmount: decimal.NewFromInt(1000)})
	alert := suite.raiseWarning(budget)

	_, err := suite.service.AcknowledgeAlert(suite.admin, alert.ID)
	require.Nil(suite.T(), err)

	// Drop below the threshold, then cross it again
	_, err = suite.service.ApplyAdjustment(suite.admin, budget.ID, decimal.NewFromInt(-150), "")
	require.Nil(suite.T(), err)

	result, err := suite.service.ApplySpend(suite.admin, budget.ID, decimal.NewFromInt(150), nil, "")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), result.Alerts, 1)
	assert.Equal(suite.T(), models.AlertTypeWarning, result.Alerts[0].Type)
}

func (suite *TestSuiteStandard) TestListAlerts() {
	first := suite.createTestBudget(ledger.BudgetParams{})
	second := suite.createTestBudget(ledger.BudgetParams{})

	alert := suite.raiseWarning(first)
	_ = suite.raiseWarning(second)

	_, err := suite.service.AcknowledgeAlert(suite.admin, alert.ID)
	require.Nil(suite.T(), err)

	alerts, count, err := suite.service.ListAlerts(suite.admin, ledger.AlertFilter{})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), alerts, 2)
	assert.Equal(suite.T(), int64(2), count)

	alerts, _, err = suite.service.ListAlerts(suite.admin, ledger.AlertFilter{BudgetID: first.ID})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), alerts, 1)

	acknowledged := false
	alerts, _, err = suite.service.ListAlerts(suite.admin, ledger.AlertFilter{Acknowledged: &acknowledged})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), alerts, 1)
	assert.Equal(suite.T(), second.ID, alerts[0].BudgetID)

	alerts, _, err = suite.service.ListAlerts(suite.admin, ledger.AlertFilter{Type: models.AlertTypeCritical})
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), alerts)

	_, _, err = suite.service.ListAlerts(suite.admin, ledger.AlertFilter{Type: "informational"})
	assert.ErrorIs(suite.T(), err, models.ErrAlertTypeInvalid)

	// Other organizations see nothing
	alerts, _, err = suite.service.ListAlerts(suite.stranger, ledger.AlertFilter{})
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), alerts)
}
