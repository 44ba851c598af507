package v1

import (
	"fmt"
	"time"

	"github.com/costwatch/backend/internal/ledger"
	"github.com/costwatch/backend/internal/models"
	cw_uuid "github.com/costwatch/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	Name              string            `json:"name" example:"Q3 Cloud Infrastructure" default:""`                                           // Name of the budget
	Description       string            `json:"description" example:"Covers all cloud spend for Q3" default:""`                              // Description of the budget
	Type              models.BudgetType `json:"type" example:"quarterly"`                                                                    // Type of the budget
	TotalAmount       decimal.Decimal   `json:"totalAmount" example:"10000" minimum:"0.00000001" multipleOf:"0.00000001"`                    // Total amount, fixed at creation
	StartDate         time.Time         `json:"startDate" example:"2026-07-01T00:00:00Z"`                                                    // Start of the budget period
	EndDate           time.Time         `json:"endDate" example:"2026-09-30T00:00:00Z"`                                                      // End of the budget period, must be after the start
	ProjectID         *uuid.UUID        `json:"projectId" example:"86b2815f-4e17-4741-91d6-d677a717e0c9"`                                    // The project this budget belongs to, if any
	WarningThreshold  *float64          `json:"warningThreshold" example:"80" minimum:"0" maximum:"100"`                                     // Warning threshold in percent, defaults to 80
	CriticalThreshold *float64          `json:"criticalThreshold" example:"95" minimum:"0" maximum:"100"`                                    // Critical threshold in percent, defaults to 95
	RequiresApproval  bool              `json:"requiresApproval" example:"true" default:"false"`                                             // Do expenses against this budget need approval?
	ApproverID        *uuid.UUID        `json:"approverId" example:"9e1dc96b-9b6e-47b2-b60f-0ba8e54fb8ba"`                                   // The user deciding expense requests for this budget
	MaxSingleExpense  *decimal.Decimal  `json:"maxSingleExpense" example:"500" minimum:"0.00000001" multipleOf:"0.00000001"`                 // Cap for a single expense, if any
}

// params returns the ledger parameters for the API representation of the editable fields
func (editable BudgetEditable) params() ledger.BudgetParams {
	return ledger.BudgetParams{
		Name:              editable.Name,
		Description:       editable.Description,
		Type:              editable.Type,
		TotalAmount:       editable.TotalAmount,
		StartDate:         editable.StartDate,
		EndDate:           editable.EndDate,
		ProjectID:         editable.ProjectID,
		WarningThreshold:  editable.WarningThreshold,
		CriticalThreshold: editable.CriticalThreshold,
		RequiresApproval:  editable.RequiresApproval,
		ApproverID:        editable.ApproverID,
		MaxSingleExpense:  editable.MaxSingleExpense,
	}
}

type BudgetLimitsEditable struct {
	Name              *string          `json:"name" example:"Q3 Cloud Infrastructure"` // New name, unchanged if omitted
	Description       *string          `json:"description"`                            // New description, unchanged if omitted
	WarningThreshold  *float64         `json:"warningThreshold" example:"75"`          // New warning threshold in percent
	CriticalThreshold *float64         `json:"criticalThreshold" example:"90"`         // New critical threshold in percent
	RequiresApproval  *bool            `json:"requiresApproval" example:"true"`        // New approval requirement
	ApproverID        *uuid.UUID       `json:"approverId"`                             // New approver
	MaxSingleExpense  *decimal.Decimal `json:"maxSingleExpense" example:"750"`         // New single expense cap
}

func (editable BudgetLimitsEditable) params() ledger.LimitsParams {
	return ledger.LimitsParams{
		Name:              editable.Name,
		Description:       editable.Description,
		WarningThreshold:  editable.WarningThreshold,
		CriticalThreshold: editable.CriticalThreshold,
		RequiresApproval:  editable.RequiresApproval,
		ApproverID:        editable.ApproverID,
		MaxSingleExpense:  editable.MaxSingleExpense,
	}
}

type BudgetStatusEditable struct {
	Status models.BudgetStatus `json:"status" example:"paused"` // The status to transition to
}

type SpendEditable struct {
	Amount    decimal.Decimal `json:"amount" example:"600" minimum:"0.00000001" multipleOf:"0.00000001"` // Amount to apply
	Note      string          `json:"note" example:"Invoice 2026-075" default:""`                        // Note for the transaction log
	ExpenseID *uuid.UUID      `json:"expenseId"`                                                         // The originating expense, if any
}

type AdjustmentEditable struct {
	Amount decimal.Decimal `json:"amount" example:"-120" multipleOf:"0.00000001"` // Signed amount, negative reduces the spent amount
	Note   string          `json:"note" example:"Refund for returned hardware" default:""`
}

type BudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/budgets/82daffd6-ae98-4969-8404-8efd78bdbb26"`              // The budget itself
	Report       string `json:"report" example:"https://example.com/api/v1/budgets/82daffd6-ae98-4969-8404-8efd78bdbb26/report"`     // The status report of the budget
	Transactions string `json:"transactions" example:"https://example.com/api/v1/budgets/82daffd6-ae98-4969-8404-8efd78bdbb26/transactions"` // The transaction log of the budget
}

type Budget struct {
	models.Budget
	UtilizationPercentage float64     `json:"utilizationPercentage" example:"42.5"` // Spent amount relative to the total amount
	Links                 BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString("apiURL")

	return Budget{
		Budget:                model,
		UtilizationPercentage: model.UtilizationPercentage(),
		Links: BudgetLinks{
			Self:         fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Report:       fmt.Sprintf("%s/v1/budgets/%s/report", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/budgets/%s/transactions", url, model.ID),
		},
	}
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Budget `json:"data"`                                                          // The resource
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of resources
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SpendResult struct {
	Budget      Budget                   `json:"budget"`      // The budget after the application
	Transaction models.BudgetTransaction `json:"transaction"` // The transaction that was recorded
	Alerts      []models.BudgetAlert     `json:"alerts"`      // Alerts raised by this application
}

func newSpendResult(c *gin.Context, result ledger.SpendResult) SpendResult {
	alerts := result.Alerts
	if alerts == nil {
		alerts = []models.BudgetAlert{}
	}

	return SpendResult{
		Budget:      newBudget(c, result.Budget),
		Transaction: result.Transaction,
		Alerts:      alerts,
	}
}

type SpendResponse struct {
	Error *string      `json:"error" example:"there is no budget matching your query"` // The error, if any occurred
	Data  *SpendResult `json:"data"`                                                   // The result of the application
}

type BudgetReport struct {
	Budget                Budget                     `json:"budget"`
	UtilizationPercentage float64                    `json:"utilizationPercentage" example:"85"`
	OpenAlerts            []models.BudgetAlert       `json:"openAlerts"`
	RecentTransactions    []models.BudgetTransaction `json:"recentTransactions"`
	SpentLast30Days       decimal.Decimal            `json:"spentLast30Days" example:"2750"`
}

type BudgetReportResponse struct {
	Error *string       `json:"error" example:"there is no budget matching your query"` // The error, if any occurred
	Data  *BudgetReport `json:"data"`                                                   // The status report
}

type TransactionListResponse struct {
	Data       []models.BudgetTransaction `json:"data"`       // List of resources
	Error      *string                    `json:"error"`      // The error, if any occurred
	Pagination *Pagination                `json:"pagination"` // Pagination information
}

type BudgetQueryFilter struct {
	Status    string       `form:"status"`  // By status
	Type      string       `form:"type"`    // By budget type
	ProjectID cw_uuid.UUID `form:"project"` // By project ID
	Offset    int          `form:"offset"`  // The offset of the first Budget returned. Defaults to 0.
	Limit     int          `form:"limit"`   // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) filter() ledger.BudgetFilter {
	return ledger.BudgetFilter{
		Status:    models.BudgetStatus(f.Status),
		Type:      models.BudgetType(f.Type),
		ProjectID: f.ProjectID.UUID,
		Offset:    f.Offset,
		Limit:     f.Limit,
	}
}
