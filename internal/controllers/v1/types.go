package v1

import (
	cw_uuid "github.com/costwatch/backend/internal/uuid"
)

type URIID struct {
	ID cw_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type PageQuery struct {
	Offset int `form:"offset"` // The offset of the first resource returned. Defaults to 0.
	Limit  int `form:"limit"`  // Maximum number of resources to return. Defaults to 50.
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset int   `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"87"`  // The total number of resources matching the query
}
