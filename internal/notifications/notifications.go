// Package notifications delivers ledger events to users.
//
// The only implementation shipped here logs the events, delivery channels
// like email or push are attached by implementing ledger.Notifier.
package notifications

import (
	"github.com/costwatch/backend/internal/ledger"
	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogSink writes every event to a structured log. It satisfies
// ledger.Notifier and never blocks.
type LogSink struct {
	log zerolog.Logger
}

var _ ledger.Notifier = LogSink{}

// NewLogSink returns a sink logging through the given logger.
func NewLogSink(log zerolog.Logger) LogSink {
	return LogSink{log: log}
}

func (s LogSink) AlertRaised(budget models.Budget, alert models.BudgetAlert) {
	s.log.Warn().
		Str("event", "alert_raised").
		Str("budget_id", budget.ID.String()).
		Str("budget_name", budget.Name).
		Str("organization_id", budget.OrganizationID.String()).
		Str("alert_id", alert.ID.String()).
		Str("type", string(alert.Type)).
		Float64("threshold", alert.ThresholdPercentage).
		Float64("utilization", alert.CurrentPercentage).
		Msg("budget alert raised")
}

func (s LogSink) ApprovalRequired(request models.ExpenseRequest, approver uuid.UUID) {
	s.log.Info().
		Str("event", "approval_required").
		Str("request_id", request.ID.String()).
		Str("organization_id", request.OrganizationID.String()).
		Str("requested_by", request.RequestedBy.String()).
		Str("approver", approver.String()).
		Str("amount", request.Amount.String()).
		Msg("expense request awaits decision")
}
