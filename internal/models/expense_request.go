package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of an expense request.
//
// A request starts as pending and moves to exactly one of the other states.
// All non-pending states are terminal.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether the status is one of the known request statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusCancelled:
		return true
	}

	return false
}

// Terminal reports whether the status permits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s != RequestStatusPending
}

// ExpenseRequest is a proposed expense that needs a decision before it
// becomes real spend against a budget.
type ExpenseRequest struct {
	DefaultModel
	OrganizationID      uuid.UUID       `json:"organizationId" gorm:"index"`
	Title               string          `json:"title" example:"New drill press" default:""`
	Description         string          `json:"description" default:""`
	Amount              decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"600"`
	Category            string          `json:"category" example:"materials" default:""`
	BudgetID            *uuid.UUID      `json:"budgetId" gorm:"index"` // The budget the expense counts against, if any
	Budget              *Budget         `json:"-"`
	RequestedBy         uuid.UUID       `json:"requestedBy"`
	Status              RequestStatus   `json:"status" example:"pending"`
	ApprovedBy          *uuid.UUID      `json:"approvedBy"`
	DecidedAt           *time.Time      `json:"decidedAt"`
	RejectionReason     string          `json:"rejectionReason" default:""`
	ReceiptURL          string          `json:"receiptUrl" default:""`
	SupportingDocuments string          `json:"supportingDocuments" default:""` // JSON array of document URLs
}

func (r *ExpenseRequest) BeforeSave(_ *gorm.DB) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)

	if !r.Status.Valid() {
		return ErrRequestStatusInvalid
	}

	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
