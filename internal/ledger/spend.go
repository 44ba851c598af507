package ledger

import (
	"errors"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SpendResult reports what one spend application did to a budget.
type SpendResult struct {
	Budget      models.Budget
	Transaction models.BudgetTransaction
	Alerts      []models.BudgetAlert
}

// ApplySpend applies an expense amount to a budget.
//
// It atomically increments the spent amount, appends the transaction record,
// evaluates the alert thresholds against the crossing and flips the budget
// status to exceeded when more than the total amount has been spent.
//
// Concurrent applications to the same budget are serialized with optimistic
// locking on the budget version. Lost races are retried internally, only when
// all attempts are used up ErrConcurrencyConflict surfaces.
func (s *Service) ApplySpend(actor Actor, budgetID uuid.UUID, amount decimal.Decimal, expenseID *uuid.UUID, note string) (SpendResult, error) {
	if !actor.Admin {
		return SpendResult{}, ErrUnauthorized
	}

	if !amount.IsPositive() {
		return SpendResult{}, models.ErrAmountNotPositive
	}

	var result SpendResult

	err := retryOnConflict(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = applySpend(tx, actor, budgetID, amount, models.TransactionTypeExpense, note, expenseID)
			return err
		})
	})
	if err != nil {
		return SpendResult{}, err
	}

	s.notifyAlerts(result.Budget, result.Alerts)

	return result, nil
}

// ApplyAdjustment applies a signed compensating amount to a budget.
//
// Adjustments are the only way to reduce the spent amount of a budget, and
// they can never push it below zero. They go through the same atomic unit and
// threshold evaluation as expenses.
func (s *Service) ApplyAdjustment(actor Actor, budgetID uuid.UUID, amount decimal.Decimal, note string) (SpendResult, error) {
	if !actor.Admin {
		return SpendResult{}, ErrUnauthorized
	}

	if amount.IsZero() {
		return SpendResult{}, models.ErrAmountZero
	}

	var result SpendResult

	err := retryOnConflict(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = applySpend(tx, actor, budgetID, amount, models.TransactionTypeAdjustment, note, nil)
			return err
		})
	})
	if err != nil {
		return SpendResult{}, err
	}

	s.notifyAlerts(result.Budget, result.Alerts)

	return result, nil
}

// applySpend is the atomic unit shared by ApplySpend, ApplyAdjustment and the
// approval of expense requests. It must run inside tx and does not retry,
// callers handle ErrConcurrencyConflict.
func applySpend(tx *gorm.DB, actor Actor, budgetID uuid.UUID, amount decimal.Decimal, transactionType models.TransactionType, note string, expenseID *uuid.UUID) (SpendResult, error) {
	budget, err := getBudgetTx(tx, actor.OrganizationID, budgetID)
	if err != nil {
		return SpendResult{}, err
	}

	oldUtilization := budget.UtilizationPercentage()

	newSpent := budget.SpentAmount.Add(amount)
	if newSpent.IsNegative() {
		return SpendResult{}, ErrAdjustmentExceedsSpend
	}

	updates := map[string]any{
		"spent_amount":     newSpent,
		"remaining_amount": budget.TotalAmount.Sub(newSpent),
		"version":          gorm.Expr("version + 1"),
	}

	// Completed budgets stay completed, everything else becomes exceeded when
	// the total amount is used up.
	newStatus := budget.Status
	if newSpent.GreaterThan(budget.TotalAmount) && budget.Status != models.BudgetStatusCompleted {
		newStatus = models.BudgetStatusExceeded
	}

	if newStatus != budget.Status {
		updates["status"] = newStatus
	}

	// Compare-and-swap on the version read above. A lost race means another
	// spend application changed the budget between our read and this write,
	// in that case nothing may be written since the crossing evaluation below
	// would be based on a stale utilization.
	result := tx.Model(&budget).
		Where("version = ?", budget.Version).
		Updates(updates)
	if result.Error != nil {
		return SpendResult{}, result.Error
	}

	if result.RowsAffected == 0 {
		return SpendResult{}, ErrConcurrencyConflict
	}

	transaction := models.BudgetTransaction{
		BudgetID:       budget.ID,
		OrganizationID: budget.OrganizationID,
		Amount:         amount,
		Type:           transactionType,
		Note:           note,
		ExpenseID:      expenseID,
		CreatedBy:      actor.UserID,
	}

	err = tx.Create(&transaction).Error
	if err != nil {
		return SpendResult{}, err
	}

	// Update the snapshot to the state we just wrote so that the crossing
	// evaluation sees the post-update utilization within the same transaction.
	budget.SpentAmount = newSpent
	budget.RemainingAmount = budget.TotalAmount.Sub(newSpent)
	budget.Status = newStatus
	budget.Version++

	alerts, err := emitAlerts(tx, budget, oldUtilization)
	if err != nil {
		return SpendResult{}, err
	}

	return SpendResult{
		Budget:      budget,
		Transaction: transaction,
		Alerts:      alerts,
	}, nil
}

// emitAlerts creates alerts for all thresholds that this application crossed.
//
// A threshold counts as crossed when the new utilization is at or above it
// and the old utilization was below it. Being above a threshold alone never
// raises an alert, otherwise every expense on an already-warning budget would
// alert again. Tiers are evaluated independently and in descending severity,
// a single large application can cross both.
//
// Per budget at most one unacknowledged alert of a type may exist. That is
// checked here and enforced again by the partial unique index on
// budget_alerts, which closes the race between check and insert.
func emitAlerts(tx *gorm.DB, budget models.Budget, oldUtilization float64) ([]models.BudgetAlert, error) {
	newUtilization := budget.UtilizationPercentage()

	tiers := []struct {
		alertType models.AlertType
		threshold float64
	}{
		{models.AlertTypeCritical, budget.CriticalThreshold},
		{models.AlertTypeWarning, budget.WarningThreshold},
	}

	var alerts []models.BudgetAlert

	for _, tier := range tiers {
		if newUtilization < tier.threshold || oldUtilization >= tier.threshold {
			continue
		}

		var open int64

		err := tx.Model(&models.BudgetAlert{}).
			Where("budget_id = ? AND type = ? AND acknowledged = ?", budget.ID, tier.alertType, false).
			Count(&open).Error
		if err != nil {
			return nil, err
		}

		if open > 0 {
			continue
		}

		alert := models.BudgetAlert{
			BudgetID:            budget.ID,
			OrganizationID:      budget.OrganizationID,
			Type:                tier.alertType,
			ThresholdPercentage: tier.threshold,
			CurrentPercentage:   newUtilization,
		}

		err = tx.Create(&alert).Error
		if errors.Is(err, models.ErrAlertAlreadyOpen) {
			// The index caught a concurrent insert, the alert exists
			continue
		}

		if err != nil {
			return nil, err
		}

		alerts = append(alerts, alert)
	}

	return alerts, nil
}
