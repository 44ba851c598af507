package v1

import (
	"net/http"

	"github.com/costwatch/backend/internal/httputil"
	"github.com/costwatch/backend/internal/identity"
	"github.com/costwatch/backend/internal/ledger"
	"github.com/costwatch/backend/internal/models"
	cw_uuid "github.com/costwatch/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// RegisterAlertRoutes registers the routes for alerts with
// the RouterGroup that is passed.
func (co Controller) RegisterAlertRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAlertList)
		r.GET("", co.GetAlerts)
	}

	// Alert with ID
	{
		r.OPTIONS("/:id/acknowledge", OptionsAlertAcknowledge)
		r.POST("/:id/acknowledge", co.AcknowledgeAlert)
	}
}

type AlertResponse struct {
	Error *string             `json:"error" example:"the alert has already been acknowledged"` // The error, if any occurred
	Data  *models.BudgetAlert `json:"data"`                                                    // The resource
}

type AlertListResponse struct {
	Data       []models.BudgetAlert `json:"data"`       // List of resources
	Error      *string              `json:"error"`      // The error, if any occurred
	Pagination *Pagination          `json:"pagination"` // Pagination information
}

type AlertQueryFilter struct {
	BudgetID     cw_uuid.UUID `form:"budget"`       // By budget ID
	Type         string       `form:"type"`         // By alert type
	Acknowledged *bool        `form:"acknowledged"` // By acknowledgement state
	Offset       int          `form:"offset"`       // The offset of the first alert returned. Defaults to 0.
	Limit        int          `form:"limit"`        // Maximum number of alerts to return. Defaults to 50.
}

func (f AlertQueryFilter) filter() ledger.AlertFilter {
	return ledger.AlertFilter{
		BudgetID:     f.BudgetID.UUID,
		Type:         models.AlertType(f.Type),
		Acknowledged: f.Acknowledged,
		Offset:       f.Offset,
		Limit:        f.Limit,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Router			/v1/alerts [options]
func OptionsAlertList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/alerts/{id}/acknowledge [options]
func OptionsAlertAcknowledge(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		List alerts
// @Description	Returns the alerts of the organization, newest first
// @Tags			Alerts
// @Produce		json
// @Success		200	{object}	AlertListResponse
// @Failure		400	{object}	AlertListResponse
// @Failure		500	{object}	AlertListResponse
// @Router			/v1/alerts [get]
// @Param			budget			query	string	false	"Filter by budget ID"
// @Param			type			query	string	false	"Filter by alert type"
// @Param			acknowledged	query	bool	false	"Filter by acknowledgement state"
// @Param			offset			query	uint	false	"The offset of the first alert returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of alerts to return. Defaults to 50."
func (co Controller) GetAlerts(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var filter AlertQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, AlertListResponse{Error: &e})
		return
	}

	alerts, total, err := co.Ledger.ListAlerts(id.Actor(), filter.filter())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AlertListResponse{Error: &e})
		return
	}

	if alerts == nil {
		alerts = []models.BudgetAlert{}
	}

	c.JSON(http.StatusOK, AlertListResponse{
		Data: alerts,
		Pagination: &Pagination{
			Count:  len(alerts),
			Offset: filter.Offset,
			Limit:  filter.Limit,
			Total:  total,
		},
	})
}

// @Summary		Acknowledge alert
// @Description	Marks an alert as handled. Acknowledging an already acknowledged alert fails.
// @Tags			Alerts
// @Produce		json
// @Success		200	{object}	AlertResponse
// @Failure		400	{object}	AlertResponse
// @Failure		404	{object}	AlertResponse
// @Failure		500	{object}	AlertResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/alerts/{id}/acknowledge [post]
func (co Controller) AcknowledgeAlert(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AlertResponse{Error: &e})
		return
	}

	alert, err := co.Ledger.AcknowledgeAlert(id.Actor(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AlertResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AlertResponse{Data: &alert})
}
