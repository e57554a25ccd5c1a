package dto

type DealerFilters struct {
	Zone     string `json:"zone,omitempty"` // matches either language, case-insensitive
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
}
