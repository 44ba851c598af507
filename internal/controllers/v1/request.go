package v1

import (
	"net/http"

	"github.com/costwatch/backend/internal/httputil"
	"github.com/costwatch/backend/internal/identity"
	"github.com/gin-gonic/gin"
)

// RegisterRequestRoutes registers the routes for expense requests with
// the RouterGroup that is passed.
func (co Controller) RegisterRequestRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRequestList)
		r.GET("", co.GetRequests)
		r.POST("", co.CreateRequest)
	}

	// Request with ID
	{
		r.OPTIONS("/:id", OptionsRequestDetail)
		r.GET("/:id", co.GetRequest)

		r.OPTIONS("/:id/decide", OptionsRequestDecide)
		r.POST("/:id/decide", co.DecideRequest)

		r.OPTIONS("/:id/cancel", OptionsRequestCancel)
		r.POST("/:id/cancel", co.CancelRequest)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseRequests
// @Success		204
// @Router			/v1/expense-requests [options]
func OptionsRequestList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseRequests
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-requests/{id} [options]
func OptionsRequestDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseRequests
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-requests/{id}/decide [options]
func OptionsRequestDecide(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			ExpenseRequests
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expense-requests/{id}/cancel [options]
func OptionsRequestCancel(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create expense request
// @Description	Admits a proposed expense into the approval workflow. Budget limits are checked before anything is persisted.
// @Tags			ExpenseRequests
// @Accept			json
// @Produce		json
// @Success		201		{object}	RequestResponse
// @Failure		400		{object}	RequestResponse
// @Failure		404		{object}	RequestResponse
// @Failure		500		{object}	RequestResponse
// @Param			request	body		RequestEditable	true	"ExpenseRequest"
// @Router			/v1/expense-requests [post]
func (co Controller) CreateRequest(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var editable RequestEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequestResponse{Error: &e})
		return
	}

	request, err := co.Ledger.CreateRequest(id.Actor(), editable.params())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequestResponse{Error: &e})
		return
	}

	data := newRequest(c, request)
	c.JSON(http.StatusCreated, RequestResponse{Data: &data})
}

// @Summary		List expense requests
// @Description	Returns a list of expense requests. Admins see all requests of their organization, everyone else their own.
// @Tags			ExpenseRequests
// @Produce		json
// @Success		200	{object}	RequestListResponse
// @Failure		400	{object}	RequestListResponse
// @Failure		500	{object}	RequestListResponse
// @Router			/v1/expense-requests [get]
// @Param			status	query	string	false	"Filter by status"
// @Param			budget	query	string	false	"Filter by budget ID"
// @Param			offset	query	uint	false	"The offset of the first request returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of requests to return. Defaults to 50."
func (co Controller) GetRequests(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var filter RequestQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, RequestListResponse{Error: &e})
		return
	}

	requests, total, err := co.Ledger.ListRequests(id.Actor(), filter.filter())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequestListResponse{Error: &e})
		return
	}

	data := make([]Request, 0, len(requests))
	for _, request := range requests {
		data = append(data, newRequest(c, request))
	}

	c.JSON(http.StatusOK, RequestListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  filter.Limit,
			Total:  total,
		},
	})
}

// @Summary		Get expense request
// @Description	Returns a specific expense request
// @Tags			ExpenseRequests
// @Produce		json
// @Success		200	{object}	RequestResponse
// @Failure		400	{object}	RequestResponse
// @Failure		404	{object}	RequestResponse
// @Failure		500	{object}	RequestResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expense-requests/{id} [get]
func (co Controller) GetRequest(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RequestResponse{Error: &e})
		return
	}

	request, err := co.Ledger.GetRequest(id.Actor(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequestResponse{Error: &e})
		return
	}

	data := newRequest(c, request)
	c.JSON(http.StatusOK, RequestResponse{Data: &data})
}

// @Summary		Decide expense request
// @Description	Approves or rejects a pending expense request. An approval creates the expense and applies the spend atomically.
// @Tags			ExpenseRequests
// @Accept			json
// @Produce		json
// @Success		200			{object}	DecisionResponse
// @Failure		400			{object}	DecisionResponse
// @Failure		403			{object}	DecisionResponse
// @Failure		404			{object}	DecisionResponse
// @Failure		409			{object}	DecisionResponse
// @Failure		500			{object}	DecisionResponse
// @Param			id			path		URIID				true	"ID formatted as string"
// @Param			decision	body		DecisionEditable	true	"Decision"
// @Router			/v1/expense-requests/{id}/decide [post]
func (co Controller) DecideRequest(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DecisionResponse{Error: &e})
		return
	}

	var editable DecisionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DecisionResponse{Error: &e})
		return
	}

	result, err := co.Ledger.DecideRequest(id.Actor(), uri.ID.UUID, editable.Approved, editable.RejectionReason)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DecisionResponse{Error: &e})
		return
	}

	data := newDecision(c, result)
	c.JSON(http.StatusOK, DecisionResponse{Data: &data})
}

// @Summary		Cancel expense request
// @Description	Withdraws a pending expense request. Only the requester can cancel.
// @Tags			ExpenseRequests
// @Produce		json
// @Success		200	{object}	RequestResponse
// @Failure		400	{object}	RequestResponse
// @Failure		403	{object}	RequestResponse
// @Failure		404	{object}	RequestResponse
// @Failure		500	{object}	RequestResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expense-requests/{id}/cancel [post]
func (co Controller) CancelRequest(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, RequestResponse{Error: &e})
		return
	}

	request, err := co.Ledger.CancelRequest(id.Actor(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RequestResponse{Error: &e})
		return
	}

	data := newRequest(c, request)
	c.JSON(http.StatusOK, RequestResponse{Data: &data})
}
