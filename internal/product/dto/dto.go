package dto

import "github.com/fekuna/tagro-storefront-service/internal/model"

type ProductFilters struct {
	Category    model.Category `json:"category,omitempty"`
	SearchQuery string         `json:"q,omitempty"`         // name or description, either language
	SortBy      string         `json:"sortBy,omitempty"`    // name, price, created_at
	SortOrder   string         `json:"sortOrder,omitempty"` // asc, desc
	Page        int            `json:"page,omitempty"`
	PageSize    int            `json:"pageSize,omitempty"`
}
