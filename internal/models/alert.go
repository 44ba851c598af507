package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlertType is the severity tier of a budget alert.
type AlertType string

const (
	AlertTypeWarning  AlertType = "warning"
	AlertTypeCritical AlertType = "critical"
	AlertTypeExceeded AlertType = "exceeded"
)

// Valid reports whether the type is one of the known alert types.
func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeWarning, AlertTypeCritical, AlertTypeExceeded:
		return true
	}

	return false
}

// BudgetAlert records a threshold crossing for a budget.
//
// For every budget there can be at most one unacknowledged alert per type.
// The partial unique index enforces this at the storage layer so that
// concurrent spend applications cannot create duplicates.
type BudgetAlert struct {
	DefaultModel
	BudgetID            uuid.UUID  `json:"budgetId" gorm:"index;uniqueIndex:budget_alerts_open,where:acknowledged = 0"`
	Budget              Budget     `json:"-"`
	OrganizationID      uuid.UUID  `json:"organizationId" gorm:"index"`
	Type                AlertType  `json:"type" gorm:"uniqueIndex:budget_alerts_open,where:acknowledged = 0" example:"warning"`
	ThresholdPercentage float64    `json:"thresholdPercentage" example:"80"` // The configured threshold that was crossed
	CurrentPercentage   float64    `json:"currentPercentage" example:"85"`   // The utilization that triggered the alert
	Acknowledged        bool       `json:"acknowledged" default:"false"`
	AcknowledgedBy      *uuid.UUID `json:"acknowledgedBy"`
	AcknowledgedAt      *time.Time `json:"acknowledgedAt"`
}

func (a *BudgetAlert) BeforeSave(_ *gorm.DB) error {
	if !a.Type.Valid() {
		return ErrAlertTypeInvalid
	}

	return nil
}
