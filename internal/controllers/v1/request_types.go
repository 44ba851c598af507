package v1

import (
	"fmt"

	"github.com/costwatch/backend/internal/ledger"
	"github.com/costwatch/backend/internal/models"
	cw_uuid "github.com/costwatch/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RequestEditable struct {
	Title               string          `json:"title" example:"Conference tickets" default:""`                     // Short title of the expense
	Description         string          `json:"description" default:""`                                            // Longer description
	Amount              decimal.Decimal `json:"amount" example:"600" minimum:"0.00000001" multipleOf:"0.00000001"` // The proposed amount
	Category            string          `json:"category" example:"travel" default:""`                              // Expense category
	BudgetID            *uuid.UUID      `json:"budgetId"`                                                          // The budget the expense counts against, if any
	ReceiptURL          string          `json:"receiptUrl" default:""`                                             // Link to the receipt
	SupportingDocuments string          `json:"supportingDocuments" default:""`                                    // JSON array of document URLs
}

func (editable RequestEditable) params() ledger.RequestParams {
	return ledger.RequestParams{
		Title:               editable.Title,
		Description:         editable.Description,
		Amount:              editable.Amount,
		Category:            editable.Category,
		BudgetID:            editable.BudgetID,
		ReceiptURL:          editable.ReceiptURL,
		SupportingDocuments: editable.SupportingDocuments,
	}
}

type DecisionEditable struct {
	Approved        bool   `json:"approved" example:"false"`                            // Approve or reject the request
	RejectionReason string `json:"rejectionReason" example:"No budget left" default:""` // Why the request was rejected
}

type RequestLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expense-requests/99fc1b43-ee2f-4d19-8221-4a5405f6df45"` // The request itself
}

type Request struct {
	models.ExpenseRequest
	Links RequestLinks `json:"links"`
}

// newRequest returns the API v1 representation of the resource
func newRequest(c *gin.Context, model models.ExpenseRequest) Request {
	url := c.GetString("apiURL")

	return Request{
		ExpenseRequest: model,
		Links: RequestLinks{
			Self: fmt.Sprintf("%s/v1/expense-requests/%s", url, model.ID),
		},
	}
}

type RequestResponse struct {
	Error *string  `json:"error" example:"there is no expense request matching your query"` // The error, if any occurred
	Data  *Request `json:"data"`                                                            // The resource
}

type RequestListResponse struct {
	Data       []Request   `json:"data"`       // List of resources
	Error      *string     `json:"error"`      // The error, if any occurred
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type Decision struct {
	Request Request         `json:"request"` // The decided request
	Expense *models.Expense `json:"expense"` // The created expense, set on approval
	Spend   *SpendResult    `json:"spend"`   // The ledger effect, set on approval of budget-linked requests
}

func newDecision(c *gin.Context, result ledger.DecisionResult) Decision {
	decision := Decision{
		Request: newRequest(c, result.Request),
		Expense: result.Expense,
	}

	if result.Spend != nil {
		spend := newSpendResult(c, *result.Spend)
		decision.Spend = &spend
	}

	return decision
}

type DecisionResponse struct {
	Error *string   `json:"error" example:"the expense request is not pending"` // The error, if any occurred
	Data  *Decision `json:"data"`                                               // The decision outcome
}

type RequestQueryFilter struct {
	Status   string       `form:"status"` // By status
	BudgetID cw_uuid.UUID `form:"budget"` // By budget ID
	Offset   int          `form:"offset"` // The offset of the first request returned. Defaults to 0.
	Limit    int          `form:"limit"`  // Maximum number of requests to return. Defaults to 50.
}

func (f RequestQueryFilter) filter() ledger.RequestFilter {
	return ledger.RequestFilter{
		Status:   models.RequestStatus(f.Status),
		BudgetID: f.BudgetID.UUID,
		Offset:   f.Offset,
		Limit:    f.Limit,
	}
}
