package ledger

import (
	"fmt"
	"time"

	"github.com/costwatch/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertFilter narrows ListAlerts. Zero values mean no filtering.
type AlertFilter struct {
	BudgetID     uuid.UUID
	Type         models.AlertType
	Acknowledged *bool
	Offset       int
	Limit        int
}

// AcknowledgeAlert marks an alert as handled by the acting user.
//
// Acknowledging is a one-way operation and idempotency is deliberately not
// provided: a second acknowledgement returns ErrAlertAlreadyAcknowledged so
// that two users racing on the same alert both learn who was first.
func (s *Service) AcknowledgeAlert(actor Actor, id uuid.UUID) (models.BudgetAlert, error) {
	var alert models.BudgetAlert

	err := s.db.Where("organization_id = ?", actor.OrganizationID).First(&alert, id).Error
	if err != nil {
		return models.BudgetAlert{}, err
	}

	if alert.Acknowledged {
		return models.BudgetAlert{}, ErrAlertAlreadyAcknowledged
	}

	now := time.Now().UTC()

	result := s.db.Model(&alert).
		Where("acknowledged = ?", false).
		Updates(map[string]any{
			"acknowledged":    true,
			"acknowledged_by": actor.UserID,
			"acknowledged_at": now,
		})
	if result.Error != nil {
		return models.BudgetAlert{}, result.Error
	}

	if result.RowsAffected == 0 {
		return models.BudgetAlert{}, ErrAlertAlreadyAcknowledged
	}

	alert.Acknowledged = true
	alert.AcknowledgedBy = &actor.UserID
	alert.AcknowledgedAt = &now

	return alert, nil
}

// ListAlerts returns the organization's alerts, newest first.
func (s *Service) ListAlerts(actor Actor, filter AlertFilter) ([]models.BudgetAlert, int64, error) {
	query := s.db.Model(&models.BudgetAlert{}).
		Where("organization_id = ?", actor.OrganizationID)

	if filter.BudgetID != uuid.Nil {
		query = query.Where("budget_id = ?", filter.BudgetID)
	}

	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, 0, fmt.Errorf("%w: %s", models.ErrAlertTypeInvalid, filter.Type)
		}

		query = query.Where("type = ?", filter.Type)
	}

	if filter.Acknowledged != nil {
		query = query.Where("acknowledged = ?", *filter.Acknowledged)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var alerts []models.BudgetAlert

	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(listLimit(filter.Limit)).
		Find(&alerts).Error
	if err != nil {
		return nil, 0, err
	}

	return alerts, count, nil
}

// openAlerts returns the unacknowledged alerts for a budget.
func openAlerts(db *gorm.DB, budgetID uuid.UUID) ([]models.BudgetAlert, error) {
	var alerts []models.BudgetAlert

	err := db.
		Where("budget_id = ? AND acknowledged = ?", budgetID, false).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	return alerts, nil
}
