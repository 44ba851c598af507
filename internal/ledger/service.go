// Package ledger implements the budget tracking engine: budget lifecycle,
// atomic spend recording with threshold alerting, and the expense request
// approval workflow.
package ledger

import (
	"errors"
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier is the sink for events that should reach users, e.g. email or push.
//
// Delivery is fire-and-forget: implementations must not block for long and
// their failures never affect the ledger, so none of the methods return errors.
type Notifier interface {
	// AlertRaised is called once for every alert that has been committed.
	AlertRaised(budget models.Budget, alert models.BudgetAlert)

	// ApprovalRequired is called when a new expense request needs a decision
	// by the given approver.
	ApprovalRequired(request models.ExpenseRequest, approver uuid.UUID)
}

// Actor identifies who performs an operation. It is derived from the identity
// headers of the request, authentication itself happens upstream.
type Actor struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Admin          bool
}

// Service bundles the budget engine operations over one database.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService returns a Service using the given database handle and notifier.
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{
		db:       db,
		notifier: notifier,
	}
}

// Spend applications are retried on optimistic locking conflicts since those
// are expected under load. Only when all attempts are used up the conflict
// surfaces to the caller.
const (
	spendAttempts = 3
	spendBackoff  = 25 * time.Millisecond
)

// retryOnConflict runs fn up to spendAttempts times, backing off between
// attempts, as long as it fails with ErrConcurrencyConflict.
func retryOnConflict(fn func() error) error {
	var err error

	for attempt := 0; attempt < spendAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * spendBackoff)
		}

		err = fn()
		if !errors.Is(err, ErrConcurrencyConflict) {
			return err
		}
	}

	return err
}

// notifyAlerts hands all raised alerts to the notifier. It must only be
// called after the transaction that created the alerts has been committed.
func (s *Service) notifyAlerts(budget models.Budget, alerts []models.BudgetAlert) {
	for _, alert := range alerts {
		s.notifier.AlertRaised(budget, alert)
	}
}
