package models_test

import (
	"testing"
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestBudgetTrimWhitespace() {
	name := " Data center hardware  "
	description := "  Racks, servers and cabling "

	budget := suite.createTestBudget(models.Budget{
		Name:        name,
		Description: description,
	})

	assert.Equal(suite.T(), "Data center hardware", budget.Name)
	assert.Equal(suite.T(), "Racks, servers and cabling", budget.Description)
}

func (suite *TestSuiteStandard) TestBudgetBeforeSave() {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		budget models.Budget
		err    error
	}{
		{
			"Valid",
			models.Budget{
				Name:              "Valid",
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           end,
				WarningThreshold:  80,
				CriticalThreshold: 95,
			},
			nil,
		},
		{
			"Invalid type",
			models.Budget{
				Type:              "weekly",
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           end,
				CriticalThreshold: 95,
			},
			models.ErrBudgetTypeInvalid,
		},
		{
			"Invalid status",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            "archived",
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           end,
				CriticalThreshold: 95,
			},
			models.ErrBudgetStatusInvalid,
		},
		{
			"Zero total amount",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				StartDate:         start,
				EndDate:           end,
				CriticalThreshold: 95,
			},
			models.ErrTotalAmountNotPositive,
		},
		{
			"Negative total amount",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(-500),
				StartDate:         start,
				EndDate:           end,
				CriticalThreshold: 95,
			},
			models.ErrTotalAmountNotPositive,
		},
		{
			"End date before start date",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         end,
				EndDate:           start,
				CriticalThreshold: 95,
			},
			models.ErrBudgetPeriodInvalid,
		},
		{
			"End date equal to start date",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           start,
				CriticalThreshold: 95,
			},
			models.ErrBudgetPeriodInvalid,
		},
		{
			"Threshold above 100",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           end,
				WarningThreshold:  80,
				CriticalThreshold: 110,
			},
			models.ErrThresholdOutOfRange,
		},
		{
			"Negative threshold",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           end,
				WarningThreshold:  -5,
				CriticalThreshold: 95,
			},
			models.ErrThresholdOutOfRange,
		},
		{
			"Warning above critical",
			models.Budget{
				Type:              models.BudgetTypeProject,
				Status:            models.BudgetStatusActive,
				TotalAmount:       decimal.NewFromInt(1000),
				StartDate:         start,
				EndDate:           end,
				WarningThreshold:  95,
				CriticalThreshold: 80,
			},
			models.ErrThresholdOrder,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.budget.BeforeSave(&gorm.DB{})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetUtilizationPercentage() {
	tests := []struct {
		name        string
		total       int64
		spent       int64
		utilization float64
	}{
		{"Unspent", 1000, 0, 0},
		{"Partially spent", 1000, 850, 85},
		{"Fully spent", 1000, 1000, 100},
		{"Overspent", 1000, 1050, 105},
		{"Zero total", 0, 500, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			budget := models.Budget{
				TotalAmount: decimal.NewFromInt(tt.total),
				SpentAmount: decimal.NewFromInt(tt.spent),
			}

			assert.Equal(t, tt.utilization, budget.UtilizationPercentage())
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetThresholdEvaluation() {
	tests := []struct {
		name       string
		spent      int64
		warning    bool
		critical   bool
		overBudget bool
	}{
		{"Below all thresholds", 700, false, false, false},
		{"Exactly at warning", 800, true, false, false},
		{"Between thresholds", 900, true, false, false},
		{"Exactly at critical", 950, true, true, false},
		{"At total", 1000, true, true, false},
		{"Over budget", 1050, true, true, true},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			budget := models.Budget{
				TotalAmount:       decimal.NewFromInt(1000),
				SpentAmount:       decimal.NewFromInt(tt.spent),
				WarningThreshold:  80,
				CriticalThreshold: 95,
			}

			assert.Equal(t, tt.warning, budget.IsWarning(), "IsWarning")
			assert.Equal(t, tt.critical, budget.IsCritical(), "IsCritical")
			assert.Equal(t, tt.overBudget, budget.IsOverBudget(), "IsOverBudget")
		})
	}
}
