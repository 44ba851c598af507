// Package v1 implements the v1 API of the budget engine.
package v1

import (
	"github.com/costwatch/backend/internal/ledger"
	"github.com/gin-gonic/gin"
)

// Controller holds the dependencies of the v1 API handlers.
type Controller struct {
	Ledger *ledger.Service
}

// NewController returns a Controller using the given ledger service.
func NewController(service *ledger.Service) Controller {
	return Controller{Ledger: service}
}

// RegisterRoutes registers the v1 API routes with the RouterGroup
// that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterRequestRoutes(r.Group("/expense-requests"))
	co.RegisterAlertRoutes(r.Group("/alerts"))
	co.RegisterDashboardRoutes(r.Group("/dashboard"))
}
