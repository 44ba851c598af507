package ledger

import (
	"errors"
)

var (
	// ErrInvalidRange is returned when a budget period ends before it starts.
	ErrInvalidRange = errors.New("the end date must be after the start date")

	// ErrOverlappingBudget is returned when a project already has a budget
	// whose period overlaps the requested one.
	ErrOverlappingBudget = errors.New("the project already has a budget for an overlapping period")

	// ErrExceedsSingleExpenseLimit is returned when a proposed expense is larger
	// than the per-expense cap of the budget.
	ErrExceedsSingleExpenseLimit = errors.New("the amount exceeds the maximum single expense limit of the budget")

	// ErrInsufficientBudget is returned when a proposed expense is larger than
	// the remaining amount of the budget.
	ErrInsufficientBudget = errors.New("the remaining budget is not sufficient for this amount")

	// ErrRequestNotPending is returned for decisions on requests that already
	// have one. Deciding twice is a caller bug, not a no-op.
	ErrRequestNotPending = errors.New("the expense request is not pending")

	// ErrAlertAlreadyAcknowledged is returned when an alert is acknowledged a
	// second time. Acknowledging twice is a caller bug, not a no-op.
	ErrAlertAlreadyAcknowledged = errors.New("the alert has already been acknowledged")

	// ErrStatusTransitionInvalid is returned for budget status transitions that
	// are not allowed, e.g. reopening a completed budget.
	ErrStatusTransitionInvalid = errors.New("this status transition is not allowed")

	// ErrConcurrencyConflict is returned when a concurrent update won the race
	// for the same budget and all retries were used up. Callers can retry.
	ErrConcurrencyConflict = errors.New("the budget was changed concurrently, please retry")

	// ErrAdjustmentExceedsSpend is returned when a negative adjustment would
	// push the spent amount below zero.
	ErrAdjustmentExceedsSpend = errors.New("the adjustment would reduce the spent amount below zero")

	// ErrUnauthorized is returned when the acting user may not perform the
	// operation.
	ErrUnauthorized = errors.New("you are not allowed to perform this action")
)
