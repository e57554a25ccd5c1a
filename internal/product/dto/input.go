package dto

import (
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name          model.LocalizedString
	Category      model.Category
	Description   model.LocalizedString
	Ingredients   model.LocalizedString
	Storage       model.LocalizedString
	Features      model.LocalizedString
	ImageURL      string
	Price         decimal.Decimal
	Stock         int
	WeightOptions []float64
}

// LocalizedUpdate sets one language of one bilingual field.
type LocalizedUpdate struct {
	Field model.LocalizedField `json:"field"`
	Lang  model.Language       `json:"lang"`
	Value string               `json:"value"`
}

// UpdateProductInput changes only the fields that are set.
type UpdateProductInput struct {
	ID            string
	Localized     []LocalizedUpdate
	Category      *model.Category
	ImageURL      *string
	Price         *decimal.Decimal
	Stock         *int
	WeightOptions *[]float64
}

type AddRatingInput struct {
	ProductID string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
}
