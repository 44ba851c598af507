package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetType classifies the scope of a spending envelope.
type BudgetType string

const (
	BudgetTypeProject    BudgetType = "project"
	BudgetTypeDepartment BudgetType = "department"
	BudgetTypeMonthly    BudgetType = "monthly"
	BudgetTypeQuarterly  BudgetType = "quarterly"
	BudgetTypeYearly     BudgetType = "yearly"
	BudgetTypeCustom     BudgetType = "custom"
)

// Valid reports whether the type is one of the known budget types.
func (t BudgetType) Valid() bool {
	switch t {
	case BudgetTypeProject, BudgetTypeDepartment, BudgetTypeMonthly,
		BudgetTypeQuarterly, BudgetTypeYearly, BudgetTypeCustom:
		return true
	}

	return false
}

// BudgetStatus is the lifecycle state of a budget.
type BudgetStatus string

const (
	BudgetStatusDraft     BudgetStatus = "draft"
	BudgetStatusActive    BudgetStatus = "active"
	BudgetStatusPaused    BudgetStatus = "paused"
	BudgetStatusCompleted BudgetStatus = "completed"
	BudgetStatusExceeded  BudgetStatus = "exceeded"
)

// Valid reports whether the status is one of the known budget statuses.
func (s BudgetStatus) Valid() bool {
	switch s {
	case BudgetStatusDraft, BudgetStatusActive, BudgetStatusPaused,
		BudgetStatusCompleted, BudgetStatusExceeded:
		return true
	}

	return false
}

// Budget represents a bounded spending envelope for an organization.
//
// SpentAmount is a cache of the sum of all BudgetTransactions for the budget
// and must only be changed together with an appended transaction. The Version
// column is the optimistic locking counter for those updates.
type Budget struct {
	DefaultModel
	OrganizationID    uuid.UUID        `json:"organizationId" gorm:"index" example:"6b2d1a42-0f0d-4a5e-b03e-ae6d9722ba50"` // Organization the budget belongs to
	ProjectID         *uuid.UUID       `json:"projectId" gorm:"index" example:"902e06d5-29ec-4eb4-9250-7b9e87b979e6"`    // Project the budget is scoped to, if any
	Name              string           `json:"name" example:"Office construction" default:""`
	Description       string           `json:"description" example:"Everything for the new office building" default:""`
	Type              BudgetType       `json:"type" example:"project"`
	Status            BudgetStatus     `json:"status" example:"active"`
	TotalAmount       decimal.Decimal  `json:"totalAmount" gorm:"type:DECIMAL(20,8)" example:"10000"`  // Fixed at creation
	SpentAmount       decimal.Decimal  `json:"spentAmount" gorm:"type:DECIMAL(20,8)" example:"8500"`   // Sum of all transactions
	RemainingAmount   decimal.Decimal  `json:"remainingAmount" gorm:"type:DECIMAL(20,8)" example:"1500"`
	Version           uint             `json:"-"` // Optimistic locking counter for spend updates
	StartDate         time.Time        `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate           time.Time        `json:"endDate" example:"2024-06-30T00:00:00Z"`
	WarningThreshold  float64          `json:"warningThreshold" example:"80" default:"80"`   // Percent utilization that raises a warning alert
	CriticalThreshold float64          `json:"criticalThreshold" example:"95" default:"95"`  // Percent utilization that raises a critical alert
	RequiresApproval  bool             `json:"requiresApproval" example:"true" default:"false"`
	ApproverID        *uuid.UUID       `json:"approverId"`                                      // User that approves expense requests for the budget
	MaxSingleExpense  *decimal.Decimal `json:"maxSingleExpense" gorm:"type:DECIMAL(20,8)"`      // Cap for a single expense, unlimited when unset
	CreatedBy         uuid.UUID        `json:"createdBy"`
}

// BeforeSave trims whitespace and validates the fields that do not depend
// on other resources.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)

	if !b.Type.Valid() {
		return ErrBudgetTypeInvalid
	}

	if !b.Status.Valid() {
		return ErrBudgetStatusInvalid
	}

	if !b.TotalAmount.IsPositive() {
		return ErrTotalAmountNotPositive
	}

	if !b.EndDate.After(b.StartDate) {
		return ErrBudgetPeriodInvalid
	}

	if b.WarningThreshold < 0 || b.WarningThreshold > 100 ||
		b.CriticalThreshold < 0 || b.CriticalThreshold > 100 {
		return ErrThresholdOutOfRange
	}

	if b.WarningThreshold > b.CriticalThreshold {
		return ErrThresholdOrder
	}

	return nil
}

// UtilizationPercentage returns the spent share of the total amount in percent.
//
// A budget with a total amount of zero has a utilization of 0 so that callers
// never divide by zero. Whether such a budget is over budget is a separate
// question, see IsOverBudget.
func (b Budget) UtilizationPercentage() float64 {
	if b.TotalAmount.IsZero() {
		return 0
	}

	utilization, _ := b.SpentAmount.Div(b.TotalAmount).Mul(decimal.NewFromInt(100)).Float64()
	return utilization
}

// IsWarning reports whether utilization has reached the warning threshold.
func (b Budget) IsWarning() bool {
	return b.UtilizationPercentage() >= b.WarningThreshold
}

// IsCritical reports whether utilization has reached the critical threshold.
func (b Budget) IsCritical() bool {
	return b.UtilizationPercentage() >= b.CriticalThreshold
}

// IsOverBudget reports whether more than the total amount has been spent.
func (b Budget) IsOverBudget() bool {
	return b.SpentAmount.GreaterThan(b.TotalAmount)
}
