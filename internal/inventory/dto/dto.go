package dto

type MovementFilters struct {
	ProductID     string `json:"productId"`
	ReferenceType string `json:"referenceType,omitempty"`
	Page          int    `json:"page,omitempty"`
	PageSize      int    `json:"pageSize,omitempty"`
}
