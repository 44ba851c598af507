package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Budget validation errors
var (
	ErrTotalAmountNotPositive = errors.New("the total amount of a budget must be larger than zero")
	ErrBudgetPeriodInvalid    = errors.New("the end date of a budget must be after its start date")
	ErrThresholdOutOfRange    = errors.New("alert thresholds must be between 0 and 100 percent")
	ErrThresholdOrder         = errors.New("the warning threshold must not be larger than the critical threshold")
	ErrBudgetTypeInvalid      = errors.New("the specified budget type is invalid")
	ErrBudgetStatusInvalid    = errors.New("the specified budget status is invalid")
)

// Transaction validation errors
var (
	ErrAmountNotPositive      = errors.New("the amount must be larger than zero")
	ErrAmountZero             = errors.New("the amount must not be zero")
	ErrTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
	ErrTransactionImmutable   = errors.New("budget transactions cannot be changed after they are recorded")
)

// Alert errors
var (
	ErrAlertTypeInvalid = errors.New("the specified alert type is invalid")

	// ErrAlertAlreadyOpen is returned when an unacknowledged alert of the same
	// type already exists for the budget. The partial unique index on
	// budget_alerts enforces this, the error is translated in createUpdateCallback.
	ErrAlertAlreadyOpen = errors.New("an unacknowledged alert of this type already exists for the budget")
)

// Expense request errors
var (
	ErrRequestStatusInvalid = errors.New("the specified expense request status is invalid")
)
