package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies how an application against a budget came to be.
type TransactionType string

const (
	TransactionTypeExpense    TransactionType = "expense"
	TransactionTypeAdjustment TransactionType = "adjustment"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeAdjustment, TransactionTypeTransfer:
		return true
	}

	return false
}

// BudgetTransaction is one application against a budget.
//
// Transactions are append-only. They are the source of truth for the
// SpentAmount of their budget: the sum of all transaction amounts for a budget
// always equals its SpentAmount. Adjustments carry signed amounts.
type BudgetTransaction struct {
	DefaultModel
	BudgetID       uuid.UUID       `json:"budgetId" gorm:"index"`
	Budget         Budget          `json:"-"`
	OrganizationID uuid.UUID       `json:"organizationId" gorm:"index"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"271.50"`
	Type           TransactionType `json:"type" example:"expense"`
	Note           string          `json:"note" example:"Building material delivery" default:""`
	ExpenseID      *uuid.UUID      `json:"expenseId"` // The expense that caused this transaction, if any
	CreatedBy      uuid.UUID       `json:"createdBy"`
}

func (t *BudgetTransaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.Amount.IsZero() {
		return ErrAmountZero
	}

	// Only adjustments may reduce the spent amount
	if t.Type != TransactionTypeAdjustment && !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}

// BeforeUpdate rejects every update, the transaction log is append-only.
func (t *BudgetTransaction) BeforeUpdate(_ *gorm.DB) error {
	return ErrTransactionImmutable
}

// BeforeDelete rejects every delete, the transaction log is append-only.
func (t *BudgetTransaction) BeforeDelete(_ *gorm.DB) error {
	return ErrTransactionImmutable
}
