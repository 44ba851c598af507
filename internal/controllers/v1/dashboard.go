package v1

import (
	"net/http"

	"github.com/costwatch/backend/internal/httputil"
	"github.com/costwatch/backend/internal/identity"
	"github.com/costwatch/backend/internal/ledger"
	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", co.GetDashboard)
}

type DashboardResponse struct {
	Error *string           `json:"error"` // The error, if any occurred
	Data  *ledger.Dashboard `json:"data"`  // The dashboard
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns aggregated totals, status counts, open alerts, pending requests and the most utilized budgets of the organization
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
func (co Controller) GetDashboard(c *gin.Context) {
	id, _ := identity.FromContext(c)

	dashboard, err := co.Ledger.GetDashboard(id.Actor())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}
