package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is the real expense record created when an expense request is
// approved or when an expense is recorded directly.
type Expense struct {
	DefaultModel
	OrganizationID uuid.UUID       `json:"organizationId" gorm:"index"`
	UserID         uuid.UUID       `json:"userId" gorm:"index"`
	ProjectID      *uuid.UUID      `json:"projectId"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"600"`
	Category       string          `json:"category" example:"materials" default:""`
	Description    string          `json:"description" default:""`
	ReceiptURL     string          `json:"receiptUrl" default:""`
	ExpenseDate    time.Time       `json:"expenseDate" example:"2024-03-12T00:00:00Z"`
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)

	if !e.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = time.Now().In(time.UTC)
	} else {
		e.ExpenseDate = e.ExpenseDate.In(time.UTC)
	}

	return nil
}

// AfterFind updates the expense date to use UTC as timezone.
func (e *Expense) AfterFind(_ *gorm.DB) error {
	e.ExpenseDate = e.ExpenseDate.In(time.UTC)
	return nil
}
