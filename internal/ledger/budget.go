package ledger

import (
	"errors"
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Default alert thresholds in percent, used when a budget is created without
// explicit values.
const (
	DefaultWarningThreshold  = 80.0
	DefaultCriticalThreshold = 95.0
)

// BudgetParams are the values needed to create a new budget.
type BudgetParams struct {
	Name              string
	Description       string
	Type              models.BudgetType
	TotalAmount       decimal.Decimal
	StartDate         time.Time
	EndDate           time.Time
	ProjectID         *uuid.UUID
	WarningThreshold  *float64
	CriticalThreshold *float64
	RequiresApproval  bool
	ApproverID        *uuid.UUID
	MaxSingleExpense  *decimal.Decimal
}

// CreateBudget creates a new, immediately active budget.
//
// For project budgets, the period may not overlap the period of another
// budget for the same project unless that budget is completed. Two periods
// overlap iff a.start <= b.end && b.start <= a.end.
func (s *Service) CreateBudget(actor Actor, params BudgetParams) (models.Budget, error) {
	if !actor.Admin {
		return models.Budget{}, ErrUnauthorized
	}

	if !params.EndDate.After(params.StartDate) {
		return models.Budget{}, ErrInvalidRange
	}

	warning := DefaultWarningThreshold
	if params.WarningThreshold != nil {
		warning = *params.WarningThreshold
	}

	critical := DefaultCriticalThreshold
	if params.CriticalThreshold != nil {
		critical = *params.CriticalThreshold
	}

	if params.ProjectID != nil {
		var existing models.Budget

		err := s.db.
			Where("organization_id = ? AND project_id = ? AND status <> ?",
				actor.OrganizationID, params.ProjectID, models.BudgetStatusCompleted).
			Where("start_date <= ? AND end_date >= ?", params.EndDate, params.StartDate).
			First(&existing).Error
		if err == nil {
			return models.Budget{}, ErrOverlappingBudget
		}

		if !errors.Is(err, models.ErrResourceNotFound) {
			return models.Budget{}, err
		}
	}

	budget := models.Budget{
		OrganizationID:    actor.OrganizationID,
		ProjectID:         params.ProjectID,
		Name:              params.Name,
		Description:       params.Description,
		Type:              params.Type,
		Status:            models.BudgetStatusActive,
		TotalAmount:       params.TotalAmount,
		SpentAmount:       decimal.Zero,
		RemainingAmount:   params.TotalAmount,
		StartDate:         params.StartDate,
		EndDate:           params.EndDate,
		WarningThreshold:  warning,
		CriticalThreshold: critical,
		RequiresApproval:  params.RequiresApproval,
		ApproverID:        params.ApproverID,
		MaxSingleExpense:  params.MaxSingleExpense,
		CreatedBy:         actor.UserID,
	}

	err := s.db.Create(&budget).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// LimitsParams is a partial update of the configuration of a budget.
// Fields that are nil stay unchanged.
type LimitsParams struct {
	Name              *string
	Description       *string
	WarningThreshold  *float64
	CriticalThreshold *float64
	RequiresApproval  *bool
	ApproverID        *uuid.UUID
	MaxSingleExpense  *decimal.Decimal
}

// UpdateLimits applies a partial update to the configuration of a budget.
//
// Only configuration fields can be updated here. The total and spent amounts
// and the transaction log can never be touched through this operation.
func (s *Service) UpdateLimits(actor Actor, id uuid.UUID, params LimitsParams) (models.Budget, error) {
	if !actor.Admin {
		return models.Budget{}, ErrUnauthorized
	}

	budget, err := s.getBudget(actor, id)
	if err != nil {
		return models.Budget{}, err
	}

	if params.Name != nil {
		budget.Name = *params.Name
	}

	if params.Description != nil {
		budget.Description = *params.Description
	}

	if params.WarningThreshold != nil {
		budget.WarningThreshold = *params.WarningThreshold
	}

	if params.CriticalThreshold != nil {
		budget.CriticalThreshold = *params.CriticalThreshold
	}

	if params.RequiresApproval != nil {
		budget.RequiresApproval = *params.RequiresApproval
	}

	if params.ApproverID != nil {
		budget.ApproverID = params.ApproverID
	}

	if params.MaxSingleExpense != nil {
		budget.MaxSingleExpense = params.MaxSingleExpense
	}

	// Validate the merged state, not the incoming partial one
	if budget.WarningThreshold < 0 || budget.WarningThreshold > 100 ||
		budget.CriticalThreshold < 0 || budget.CriticalThreshold > 100 {
		return models.Budget{}, models.ErrThresholdOutOfRange
	}

	if budget.WarningThreshold > budget.CriticalThreshold {
		return models.Budget{}, models.ErrThresholdOrder
	}

	// Write the configuration columns only. The spend columns are guarded by
	// the version counter of the spend recorder and stay untouched here.
	err = s.db.Model(&budget).
		Updates(map[string]any{
			"name":               budget.Name,
			"description":        budget.Description,
			"warning_threshold":  budget.WarningThreshold,
			"critical_threshold": budget.CriticalThreshold,
			"requires_approval":  budget.RequiresApproval,
			"approver_id":        budget.ApproverID,
			"max_single_expense": budget.MaxSingleExpense,
		}).Error
	if err != nil {
		return models.Budget{}, err
	}

	return s.getBudget(actor, id)
}

// allowedTransitions lists the valid manual budget status transitions.
// Completed is terminal. The exceeded status is set by the spend recorder,
// manually it can only move on to completed.
var allowedTransitions = map[models.BudgetStatus][]models.BudgetStatus{
	models.BudgetStatusDraft:    {models.BudgetStatusActive},
	models.BudgetStatusActive:   {models.BudgetStatusPaused, models.BudgetStatusCompleted},
	models.BudgetStatusPaused:   {models.BudgetStatusActive, models.BudgetStatusCompleted},
	models.BudgetStatusExceeded: {models.BudgetStatusCompleted},
}

// UpdateStatus performs a manual budget status transition.
func (s *Service) UpdateStatus(actor Actor, id uuid.UUID, status models.BudgetStatus) (models.Budget, error) {
	if !actor.Admin {
		return models.Budget{}, ErrUnauthorized
	}

	if !status.Valid() {
		return models.Budget{}, models.ErrBudgetStatusInvalid
	}

	budget, err := s.getBudget(actor, id)
	if err != nil {
		return models.Budget{}, err
	}

	allowed := false
	for _, target := range allowedTransitions[budget.Status] {
		if target == status {
			allowed = true
			break
		}
	}

	if !allowed {
		return models.Budget{}, ErrStatusTransitionInvalid
	}

	// Guard against a concurrent transition or spend application flipping the
	// status between our read and this write.
	result := s.db.Model(&budget).
		Where("status = ?", budget.Status).
		Update("status", status)
	if result.Error != nil {
		return models.Budget{}, result.Error
	}

	if result.RowsAffected == 0 {
		return models.Budget{}, ErrConcurrencyConflict
	}

	return s.getBudget(actor, id)
}

// getBudget loads one budget of the organization of the actor. IDs of other
// organizations behave exactly like IDs that do not exist.
func (s *Service) getBudget(actor Actor, id uuid.UUID) (models.Budget, error) {
	var budget models.Budget

	err := s.db.
		Where("organization_id = ?", actor.OrganizationID).
		First(&budget, id).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// getBudgetTx is getBudget within an existing transaction.
func getBudgetTx(tx *gorm.DB, organizationID, id uuid.UUID) (models.Budget, error) {
	var budget models.Budget

	err := tx.
		Where("organization_id = ?", organizationID).
		First(&budget, id).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}
