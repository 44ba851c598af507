package v1

import (
	"net/http"

	"github.com/costwatch/backend/internal/httputil"
	"github.com/costwatch/backend/internal/identity"
	"github.com/costwatch/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for Budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudgetLimits)

		r.OPTIONS("/:id/status", OptionsBudgetStatus)
		r.PATCH("/:id/status", co.UpdateBudgetStatus)

		r.OPTIONS("/:id/report", OptionsBudgetReport)
		r.GET("/:id/report", co.GetBudgetReport)

		r.OPTIONS("/:id/transactions", OptionsBudgetTransactions)
		r.GET("/:id/transactions", co.GetBudgetTransactions)

		r.OPTIONS("/:id/spend", OptionsBudgetSpend)
		r.POST("/:id/spend", co.RecordSpend)

		r.OPTIONS("/:id/adjust", OptionsBudgetAdjust)
		r.POST("/:id/adjust", co.RecordAdjustment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/status [options]
func OptionsBudgetStatus(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/report [options]
func OptionsBudgetReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/transactions [options]
func OptionsBudgetTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/spend [options]
func OptionsBudgetSpend(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/adjust [options]
func OptionsBudgetAdjust(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Create budget
// @Description	Creates a new, immediately active budget
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := co.Ledger.CreateBudget(id.Actor(), editable.params())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		List budgets
// @Description	Returns a list of budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			status	query	string	false	"Filter by status"
// @Param			type	query	string	false	"Filter by budget type"
// @Param			project	query	string	false	"Filter by project ID"
// @Param			offset	query	uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Budgets to return. Defaults to 50."
func (co Controller) GetBudgets(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{Error: &e})
		return
	}

	budgets, total, err := co.Ledger.ListBudgets(id.Actor(), filter.filter())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &e})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  filter.Limit,
			Total:  total,
		},
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	budget, err := co.Ledger.GetBudget(id.Actor(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget limits
// @Description	Updates the configuration of a budget. Spend data is never touched.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID					true	"ID formatted as string"
// @Param			budget	body		BudgetLimitsEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudgetLimits(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	var editable BudgetLimitsEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := co.Ledger.UpdateLimits(id.Actor(), uri.ID.UUID, editable.params())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Transition budget status
// @Description	Performs a manual budget status transition
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		409		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID					true	"ID formatted as string"
// @Param			status	body		BudgetStatusEditable	true	"Status"
// @Router			/v1/budgets/{id}/status [patch]
func (co Controller) UpdateBudgetStatus(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	var editable BudgetStatusEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := co.Ledger.UpdateStatus(id.Actor(), uri.ID.UUID, editable.Status)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Get budget report
// @Description	Returns the status report of a budget: utilization, open alerts, recent transactions and the spend of the last 30 days
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetReportResponse
// @Failure		400	{object}	BudgetReportResponse
// @Failure		404	{object}	BudgetReportResponse
// @Failure		500	{object}	BudgetReportResponse
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/budgets/{id}/report [get]
func (co Controller) GetBudgetReport(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetReportResponse{Error: &e})
		return
	}

	report, err := co.Ledger.GetBudgetStatus(id.Actor(), uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReportResponse{Error: &e})
		return
	}

	alerts := report.OpenAlerts
	if alerts == nil {
		alerts = []models.BudgetAlert{}
	}

	transactions := report.RecentTransactions
	if transactions == nil {
		transactions = []models.BudgetTransaction{}
	}

	data := BudgetReport{
		Budget:                newBudget(c, report.Budget),
		UtilizationPercentage: report.UtilizationPercentage,
		OpenAlerts:            alerts,
		RecentTransactions:    transactions,
		SpentLast30Days:       report.SpentLast30Days,
	}

	c.JSON(http.StatusOK, BudgetReportResponse{Data: &data})
}

// @Summary		List budget transactions
// @Description	Returns the transaction log of a budget, newest first
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		404	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Param			id		path	URIID	true	"ID formatted as string"
// @Param			offset	query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/budgets/{id}/transactions [get]
func (co Controller) GetBudgetTransactions(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	var page PageQuery
	if err := c.Bind(&page); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	transactions, total, err := co.Ledger.ListTransactions(id.Actor(), uri.ID.UUID, page.Offset, page.Limit)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	if transactions == nil {
		transactions = []models.BudgetTransaction{}
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			Count:  len(transactions),
			Offset: page.Offset,
			Limit:  page.Limit,
			Total:  total,
		},
	})
}

// @Summary		Record spend
// @Description	Applies an expense amount to a budget, evaluating the alert thresholds
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	SpendResponse
// @Failure		400		{object}	SpendResponse
// @Failure		403		{object}	SpendResponse
// @Failure		404		{object}	SpendResponse
// @Failure		409		{object}	SpendResponse
// @Failure		500		{object}	SpendResponse
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			spend	body		SpendEditable	true	"Spend"
// @Router			/v1/budgets/{id}/spend [post]
func (co Controller) RecordSpend(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, SpendResponse{Error: &e})
		return
	}

	var editable SpendEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{Error: &e})
		return
	}

	result, err := co.Ledger.ApplySpend(id.Actor(), uri.ID.UUID, editable.Amount, editable.ExpenseID, editable.Note)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{Error: &e})
		return
	}

	data := newSpendResult(c, result)
	c.JSON(http.StatusCreated, SpendResponse{Data: &data})
}

// @Summary		Record adjustment
// @Description	Applies a signed compensating amount to a budget
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201			{object}	SpendResponse
// @Failure		400			{object}	SpendResponse
// @Failure		403			{object}	SpendResponse
// @Failure		404			{object}	SpendResponse
// @Failure		409			{object}	SpendResponse
// @Failure		500			{object}	SpendResponse
// @Param			id			path		URIID				true	"ID formatted as string"
// @Param			adjustment	body		AdjustmentEditable	true	"Adjustment"
// @Router			/v1/budgets/{id}/adjust [post]
func (co Controller) RecordAdjustment(c *gin.Context) {
	id, _ := identity.FromContext(c)

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, SpendResponse{Error: &e})
		return
	}

	var editable AdjustmentEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{Error: &e})
		return
	}

	result, err := co.Ledger.ApplyAdjustment(id.Actor(), uri.ID.UUID, editable.Amount, editable.Note)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{Error: &e})
		return
	}

	data := newSpendResult(c, result)
	c.JSON(http.StatusCreated, SpendResponse{Data: &data})
}
