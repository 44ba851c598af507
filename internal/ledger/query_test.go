package ledger_test

import (
	"github.com/costwatch/backend/internal/ledger"
	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestGetBudgetStatus() {
	budget := suite.createTestBudget(ledger.BudgetParams{TotalAmount: decimal.NewFromInt(1000)})

	_, err := suite.service.ApplySpend(suite.admin, budget.ID, decimal.NewFromInt(850), nil, "")
	require.Nil(suite.T(), err)

	report, err := suite.service.GetBudgetStatus(suite.admin, budget.ID)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), 85.0, report.UtilizationPercentage)
	require.Len(suite.T(), report.OpenAlerts, 1)
	assert.Equal(suite.T(), models.AlertTypeWarning, report.OpenAlerts[0].Type)
	assert.Len(suite.T(), report.RecentTransactions, 1)
	assert.True(suite.T(), report.SpentLast30Days.Equal(decimal.NewFromInt(850)))
}

func (suite *TestSuiteStandard) TestListBudgets() {
	projectID := uuid.New()

	_ = suite.createTestBudget(ledger.BudgetParams{ProjectID: &projectID})
	monthly := suite.createTestBudget(ledger.BudgetParams{Type: models.BudgetTypeMonthly})

	_, err := suite.service.UpdateStatus(suite.admin, monthly.ID, models.BudgetStatusPaused)
	require.Nil(suite.T(), err)

	budgets, count, err := suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 2)
	assert.Equal(suite.T(), int64(2), count)

	budgets, _, err = suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{Status: models.BudgetStatusPaused})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), budgets, 1)
	assert.Equal(suite.T(), monthly.ID, budgets[0].ID)

	budgets, _, err = suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{ProjectID: projectID})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 1)

	budgets, _, err = suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{Type: models.BudgetTypeYearly})
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), budgets)

	_, _, err = suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{Status: "archived"})
	assert.ErrorIs(suite.T(), err, models.ErrBudgetStatusInvalid)

	_, _, err = suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{Type: "weekly"})
	assert.ErrorIs(suite.T(), err, models.ErrBudgetTypeInvalid)

	budgets, _, err = suite.service.ListBudgets(suite.stranger, ledger.BudgetFilter{})
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), budgets)
}

func (suite *TestSuiteStandard) TestListBudgetsPagination() {
	for i := 0; i < 3; i++ {
		_ = suite.createTestBudget(ledger.BudgetParams{})
	}

	budgets, count, err := suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{Limit: 2})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 2)
	assert.Equal(suite.T(), int64(3), count)

	budgets, count, err = suite.service.ListBudgets(suite.admin, ledger.BudgetFilter{Offset: 2, Limit: 2})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), budgets, 1)
	assert.Equal(suite.T(), int64(3), count)
}

func (suite *TestSuiteStandard) TestGetDashboard() {
	high := suite.createTestBudget(ledger.BudgetParams{TotalAmount: decimal.NewFromInt(1000)})
	low := suite.createTestBudget(ledger.BudgetParams{TotalAmount: decimal.NewFromInt(1000)})

	_, err := suite.service.ApplySpend(suite.admin, high.ID, decimal.NewFromInt(900), nil, "")
	require.Nil(suite.T(), err)

	_, err = suite.service.ApplySpend(suite.admin, low.ID, decimal.NewFromInt(100), nil, "")
	require.Nil(suite.T(), err)

	_ = suite.createTestRequest(suite.member, ledger.RequestParams{})

	dashboard, err := suite.service.GetDashboard(suite.admin)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), dashboard.TotalBudgeted.Equal(decimal.NewFromInt(2000)))
	assert.True(suite.T(), dashboard.TotalSpent.Equal(decimal.NewFromInt(1000)))
	assert.True(suite.T(), dashboard.TotalRemaining.Equal(decimal.NewFromInt(1000)))
	assert.Equal(suite.T(), int64(2), dashboard.BudgetsByStatus[models.BudgetStatusActive])
	assert.Equal(suite.T(), int64(1), dashboard.OpenAlerts)
	assert.Equal(suite.T(), int64(1), dashboard.PendingRequests)

	// Sorted by utilization, most utilized first
	require.Len(suite.T(), dashboard.TopUtilized, 2)
	assert.Equal(suite.T(), high.ID, dashboard.TopUtilized[0].BudgetID)
	assert.Equal(suite.T(), 90.0, dashboard.TopUtilized[0].UtilizationPercentage)
	assert.Equal(suite.T(), low.ID, dashboard.TopUtilized[1].BudgetID)
}

func (suite *TestSuiteStandard) TestGetDashboardTruncatesTopUtilized() {
	for i := 0; i < 7; i++ {
		_ = suite.createTestBudget(ledger.BudgetParams{})
	}

	dashboard, err := suite.service.GetDashboard(suite.admin)
	require.Nil(suite.T(), err)

	assert.Len(suite.T(), dashboard.TopUtilized, 5)
	assert.Equal(suite.T(), int64(7), dashboard.BudgetsByStatus[models.BudgetStatusActive])
}

func (suite *TestSuiteStandard) TestListTransactions() {
	budget := suite.createTestBudget(ledger.BudgetParams{})

	for i := 0; i < 3; i++ {
		_, err := suite.service.ApplySpend(suite.admin, budget.ID, decimal.NewFromInt(10), nil, "")
		require.Nil(suite.T(), err)
	}

	transactions, count, err := suite.service.ListTransactions(suite.admin, budget.ID, 0, 2)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), transactions, 2)
	assert.Equal(suite.T(), int64(3), count)

	// Unknown budgets report not found instead of an empty list
	_, _, err = suite.service.ListTransactions(suite.admin, uuid.New(), 0, 50)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	_, _, err = suite.service.ListTransactions(suite.stranger, budget.ID, 0, 50)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
