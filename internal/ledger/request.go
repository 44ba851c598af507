package ledger

import (
	"fmt"
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RequestParams are the values needed to create a new expense request.
type RequestParams struct {
	Title               string
	Description         string
	Amount              decimal.Decimal
	Category            string
	BudgetID            *uuid.UUID
	ReceiptURL          string
	SupportingDocuments string
}

// RequestFilter narrows ListRequests. Zero values mean no filtering.
type RequestFilter struct {
	Status   models.RequestStatus
	BudgetID uuid.UUID
	Offset   int
	Limit    int
}

// DecisionResult is the outcome of deciding an expense request. Expense and
// Spend are only set when the request was approved against a budget.
type DecisionResult struct {
	Request models.ExpenseRequest
	Expense *models.Expense
	Spend   *SpendResult
}

// CreateRequest admits a proposed expense into the approval workflow.
//
// When the request targets a budget, the budget limits are checked here, at
// admission time: the amount may not exceed the single expense cap and must
// fit into the remaining amount. Both checks happen before anything is
// persisted, a rejected request leaves no trace.
func (s *Service) CreateRequest(actor Actor, params RequestParams) (models.ExpenseRequest, error) {
	if !params.Amount.IsPositive() {
		return models.ExpenseRequest{}, models.ErrAmountNotPositive
	}

	var budget *models.Budget

	if params.BudgetID != nil {
		loaded, err := s.getBudget(actor, *params.BudgetID)
		if err != nil {
			return models.ExpenseRequest{}, err
		}

		if loaded.MaxSingleExpense != nil && params.Amount.GreaterThan(*loaded.MaxSingleExpense) {
			return models.ExpenseRequest{}, ErrExceedsSingleExpenseLimit
		}

		if params.Amount.GreaterThan(loaded.RemainingAmount) {
			return models.ExpenseRequest{}, ErrInsufficientBudget
		}

		budget = &loaded
	}

	request := models.ExpenseRequest{
		OrganizationID:      actor.OrganizationID,
		Title:               params.Title,
		Description:         params.Description,
		Amount:              params.Amount,
		Category:            params.Category,
		BudgetID:            params.BudgetID,
		RequestedBy:         actor.UserID,
		Status:              models.RequestStatusPending,
		ReceiptURL:          params.ReceiptURL,
		SupportingDocuments: params.SupportingDocuments,
	}

	err := s.db.Create(&request).Error
	if err != nil {
		return models.ExpenseRequest{}, err
	}

	if budget != nil && budget.RequiresApproval && budget.ApproverID != nil {
		s.notifier.ApprovalRequired(request, *budget.ApproverID)
	}

	return request, nil
}

// DecideRequest approves or rejects a pending expense request.
//
// Admins can decide any request of their organization, the configured
// approver of the linked budget can decide requests against that budget.
//
// A rejection only flips the status and stores the reason. An approval
// creates the real expense record and, for budget-linked requests, applies
// the spend, all within one transaction together with the status flip: if
// the spend application fails, the approval rolls back entirely.
func (s *Service) DecideRequest(actor Actor, id uuid.UUID, approve bool, rejectionReason string) (DecisionResult, error) {
	var result DecisionResult

	err := retryOnConflict(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			var err error
			result, err = s.decideRequest(tx, actor, id, approve, rejectionReason)
			return err
		})
	})
	if err != nil {
		return DecisionResult{}, err
	}

	if result.Spend != nil {
		s.notifyAlerts(result.Spend.Budget, result.Spend.Alerts)
	}

	return result, nil
}

func (s *Service) decideRequest(tx *gorm.DB, actor Actor, id uuid.UUID, approve bool, rejectionReason string) (DecisionResult, error) {
	request, err := getRequestTx(tx, actor.OrganizationID, id)
	if err != nil {
		return DecisionResult{}, err
	}

	if request.Status != models.RequestStatusPending {
		return DecisionResult{}, ErrRequestNotPending
	}

	if !actor.Admin {
		authorized := false

		if request.BudgetID != nil {
			budget, err := getBudgetTx(tx, actor.OrganizationID, *request.BudgetID)
			if err != nil {
				return DecisionResult{}, err
			}

			authorized = budget.ApproverID != nil && *budget.ApproverID == actor.UserID
		}

		if !authorized {
			return DecisionResult{}, ErrUnauthorized
		}
	}

	status := models.RequestStatusApproved
	if !approve {
		status = models.RequestStatusRejected
	}

	now := time.Now().UTC()

	updates := map[string]any{
		"status":      status,
		"approved_by": actor.UserID,
		"decided_at":  now,
	}

	if !approve {
		updates["rejection_reason"] = rejectionReason
	}

	// Guard the status flip against a concurrent decision or cancellation.
	flip := tx.Model(&request).
		Where("status = ?", models.RequestStatusPending).
		Updates(updates)
	if flip.Error != nil {
		return DecisionResult{}, flip.Error
	}

	if flip.RowsAffected == 0 {
		return DecisionResult{}, ErrRequestNotPending
	}

	request.Status = status
	request.ApprovedBy = &actor.UserID
	request.DecidedAt = &now
	if !approve {
		request.RejectionReason = rejectionReason
	}

	if !approve {
		return DecisionResult{Request: request}, nil
	}

	expense := models.Expense{
		OrganizationID: request.OrganizationID,
		UserID:         request.RequestedBy,
		Amount:         request.Amount,
		Category:       request.Category,
		Description:    request.Description,
		ReceiptURL:     request.ReceiptURL,
		ExpenseDate:    now,
	}

	err = tx.Create(&expense).Error
	if err != nil {
		return DecisionResult{}, err
	}

	result := DecisionResult{Request: request, Expense: &expense}

	if request.BudgetID != nil {
		note := fmt.Sprintf("expense request %s: %s", request.ID, request.Title)

		spend, err := applySpend(tx, actor, *request.BudgetID, request.Amount, models.TransactionTypeExpense, note, &expense.ID)
		if err != nil {
			return DecisionResult{}, err
		}

		result.Spend = &spend
	}

	return result, nil
}

// CancelRequest withdraws a pending expense request. Only the requester can
// cancel, admins included, a decision by anyone else goes through
// DecideRequest.
func (s *Service) CancelRequest(actor Actor, id uuid.UUID) (models.ExpenseRequest, error) {
	request, err := getRequestTx(s.db, actor.OrganizationID, id)
	if err != nil {
		return models.ExpenseRequest{}, err
	}

	if request.RequestedBy != actor.UserID {
		return models.ExpenseRequest{}, ErrUnauthorized
	}

	if request.Status != models.RequestStatusPending {
		return models.ExpenseRequest{}, ErrRequestNotPending
	}

	now := time.Now().UTC()

	flip := s.db.Model(&request).
		Where("status = ?", models.RequestStatusPending).
		Updates(map[string]any{
			"status":     models.RequestStatusCancelled,
			"decided_at": now,
		})
	if flip.Error != nil {
		return models.ExpenseRequest{}, flip.Error
	}

	if flip.RowsAffected == 0 {
		return models.ExpenseRequest{}, ErrRequestNotPending
	}

	request.Status = models.RequestStatusCancelled
	request.DecidedAt = &now

	return request, nil
}

// GetRequest loads one expense request. Admins see every request of the
// organization, everyone else only their own.
func (s *Service) GetRequest(actor Actor, id uuid.UUID) (models.ExpenseRequest, error) {
	request, err := getRequestTx(s.db, actor.OrganizationID, id)
	if err != nil {
		return models.ExpenseRequest{}, err
	}

	if !actor.Admin && request.RequestedBy != actor.UserID {
		return models.ExpenseRequest{}, ErrUnauthorized
	}

	return request, nil
}

// ListRequests returns expense requests, newest first. Admins see all
// requests of the organization, everyone else only their own.
func (s *Service) ListRequests(actor Actor, filter RequestFilter) ([]models.ExpenseRequest, int64, error) {
	query := s.db.Model(&models.ExpenseRequest{}).
		Where("organization_id = ?", actor.OrganizationID)

	if !actor.Admin {
		query = query.Where("requested_by = ?", actor.UserID)
	}

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, 0, fmt.Errorf("%w: %s", models.ErrRequestStatusInvalid, filter.Status)
		}

		query = query.Where("status = ?", filter.Status)
	}

	if filter.BudgetID != uuid.Nil {
		query = query.Where("budget_id = ?", filter.BudgetID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ExpenseRequest

	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(listLimit(filter.Limit)).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, count, nil
}

// getRequestTx loads one expense request of the organization.
func getRequestTx(tx *gorm.DB, organizationID, id uuid.UUID) (models.ExpenseRequest, error) {
	var request models.ExpenseRequest

	err := tx.
		Where("organization_id = ?", organizationID).
		First(&request, id).Error
	if err != nil {
		return models.ExpenseRequest{}, err
	}

	return request, nil
}
