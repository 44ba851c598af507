package ledger

import (
	"cmp"
	"fmt"
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const (
	defaultListLimit    = 50
	recentTransactions  = 10
	spendTrendDays      = 30
	dashboardTopBudgets = 5
)

// listLimit clamps a requested page size to a sane default.
func listLimit(limit int) int {
	if limit <= 0 || limit > defaultListLimit {
		return defaultListLimit
	}

	return limit
}

// BudgetFilter narrows ListBudgets. Zero values mean no filtering.
type BudgetFilter struct {
	Status    models.BudgetStatus
	Type      models.BudgetType
	ProjectID uuid.UUID
	Offset    int
	Limit     int
}

// BudgetStatusReport is the full picture of one budget: the budget itself,
// its utilization, the open alerts, the most recent transactions and the
// spend of the last 30 days.
type BudgetStatusReport struct {
	Budget                models.Budget              `json:"budget"`
	UtilizationPercentage float64                    `json:"utilizationPercentage"`
	OpenAlerts            []models.BudgetAlert       `json:"openAlerts"`
	RecentTransactions    []models.BudgetTransaction `json:"recentTransactions"`
	SpentLast30Days       decimal.Decimal            `json:"spentLast30Days"`
}

// Dashboard aggregates the budget situation of one organization.
type Dashboard struct {
	TotalBudgeted   decimal.Decimal               `json:"totalBudgeted"`
	TotalSpent      decimal.Decimal               `json:"totalSpent"`
	TotalRemaining  decimal.Decimal               `json:"totalRemaining"`
	BudgetsByStatus map[models.BudgetStatus]int64 `json:"budgetsByStatus"`
	OpenAlerts      int64                         `json:"openAlerts"`
	PendingRequests int64                         `json:"pendingRequests"`
	TopUtilized     []BudgetUtilization           `json:"topUtilized"`
}

// BudgetUtilization is one entry of the dashboard's top utilization list.
type BudgetUtilization struct {
	BudgetID              uuid.UUID           `json:"budgetId"`
	Name                  string              `json:"name"`
	Status                models.BudgetStatus `json:"status"`
	TotalAmount           decimal.Decimal     `json:"totalAmount"`
	SpentAmount           decimal.Decimal     `json:"spentAmount"`
	UtilizationPercentage float64             `json:"utilizationPercentage"`
}

// GetBudget loads one budget of the organization.
func (s *Service) GetBudget(actor Actor, id uuid.UUID) (models.Budget, error) {
	return s.getBudget(actor, id)
}

// GetBudgetStatus builds the status report for one budget.
func (s *Service) GetBudgetStatus(actor Actor, id uuid.UUID) (BudgetStatusReport, error) {
	budget, err := s.getBudget(actor, id)
	if err != nil {
		return BudgetStatusReport{}, err
	}

	alerts, err := openAlerts(s.db, budget.ID)
	if err != nil {
		return BudgetStatusReport{}, err
	}

	var transactions []models.BudgetTransaction

	err = s.db.
		Where("budget_id = ?", budget.ID).
		Order("created_at DESC").
		Limit(recentTransactions).
		Find(&transactions).Error
	if err != nil {
		return BudgetStatusReport{}, err
	}

	since := time.Now().UTC().AddDate(0, 0, -spendTrendDays)

	var recentSpend decimal.NullDecimal

	err = s.db.Model(&models.BudgetTransaction{}).
		Where("budget_id = ? AND type = ? AND created_at >= ?", budget.ID, models.TransactionTypeExpense, since).
		Select("SUM(amount)").
		Scan(&recentSpend).Error
	if err != nil {
		return BudgetStatusReport{}, err
	}

	return BudgetStatusReport{
		Budget:                budget,
		UtilizationPercentage: budget.UtilizationPercentage(),
		OpenAlerts:            alerts,
		RecentTransactions:    transactions,
		SpentLast30Days:       recentSpend.Decimal,
	}, nil
}

// ListBudgets returns the organization's budgets, newest first.
func (s *Service) ListBudgets(actor Actor, filter BudgetFilter) ([]models.Budget, int64, error) {
	query := s.db.Model(&models.Budget{}).
		Where("organization_id = ?", actor.OrganizationID)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, fmt.Errorf("%w: %s", models.ErrBudgetStatusInvalid, filter.Status)
		}

		query = query.Where("status = ?", filter.Status)
	}

	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, 0, fmt.Errorf("%w: %s", models.ErrBudgetTypeInvalid, filter.Type)
		}

		query = query.Where("type = ?", filter.Type)
	}

	if filter.ProjectID != uuid.Nil {
		query = query.Where("project_id = ?", filter.ProjectID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var budgets []models.Budget

	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(listLimit(filter.Limit)).
		Find(&budgets).Error
	if err != nil {
		return nil, 0, err
	}

	return budgets, count, nil
}

// GetDashboard aggregates totals, status counts, open alerts, pending
// requests and the most utilized budgets of the organization.
func (s *Service) GetDashboard(actor Actor) (Dashboard, error) {
	var budgets []models.Budget

	err := s.db.
		Where("organization_id = ?", actor.OrganizationID).
		Find(&budgets).Error
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		TotalBudgeted:   decimal.Zero,
		TotalSpent:      decimal.Zero,
		TotalRemaining:  decimal.Zero,
		BudgetsByStatus: make(map[models.BudgetStatus]int64),
	}

	for _, budget := range budgets {
		dashboard.TotalBudgeted = dashboard.TotalBudgeted.Add(budget.TotalAmount)
		dashboard.TotalSpent = dashboard.TotalSpent.Add(budget.SpentAmount)
		dashboard.TotalRemaining = dashboard.TotalRemaining.Add(budget.RemainingAmount)
		dashboard.BudgetsByStatus[budget.Status]++

		dashboard.TopUtilized = append(dashboard.TopUtilized, BudgetUtilization{
			BudgetID:              budget.ID,
			Name:                  budget.Name,
			Status:                budget.Status,
			TotalAmount:           budget.TotalAmount,
			SpentAmount:           budget.SpentAmount,
			UtilizationPercentage: budget.UtilizationPercentage(),
		})
	}

	slices.SortStableFunc(dashboard.TopUtilized, func(a, b BudgetUtilization) int {
		return cmp.Compare(b.UtilizationPercentage, a.UtilizationPercentage)
	})

	if len(dashboard.TopUtilized) > dashboardTopBudgets {
		dashboard.TopUtilized = dashboard.TopUtilized[:dashboardTopBudgets]
	}

	err = s.db.Model(&models.BudgetAlert{}).
		Where("organization_id = ? AND acknowledged = ?", actor.OrganizationID, false).
		Count(&dashboard.OpenAlerts).Error
	if err != nil {
		return Dashboard{}, err
	}

	err = s.db.Model(&models.ExpenseRequest{}).
		Where("organization_id = ? AND status = ?", actor.OrganizationID, models.RequestStatusPending).
		Count(&dashboard.PendingRequests).Error
	if err != nil {
		return Dashboard{}, err
	}

	return dashboard, nil
}

// ListTransactions returns the transaction log of one budget, newest first.
func (s *Service) ListTransactions(actor Actor, budgetID uuid.UUID, offset, limit int) ([]models.BudgetTransaction, int64, error) {
	// Resolve the budget first so that foreign IDs report not found
	budget, err := s.getBudget(actor, budgetID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.BudgetTransaction{}).
		Where("budget_id = ?", budget.ID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var transactions []models.BudgetTransaction

	err = query.
		Order("created_at DESC").
		Offset(offset).
		Limit(listLimit(limit)).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
