package model

import (
	"math"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFishFeed     Category = "Fish Feed"
	CategoryPoultryFeed  Category = "Poultry Feed"
	CategoryCattleFeed   Category = "Cattle Feed"
	CategoryFishMedicine Category = "Fish Medicine"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFishFeed, CategoryPoultryFeed, CategoryCattleFeed, CategoryFishMedicine:
		return true
	}
	return false
}

const (
	GuestUserID   = "guest"
	GuestUserName = "Valued Customer"
)

type Rating struct {
	UserID   string    `json:"userId" bson:"userId" yaml:"userId"`
	UserName string    `json:"userName" bson:"userName" yaml:"userName"`
	Rating   int       `json:"rating" bson:"rating" yaml:"rating"`
	Comment  string    `json:"comment,omitempty" bson:"comment,omitempty" yaml:"comment,omitempty"`
	Date     time.Time `json:"date" bson:"date" yaml:"date"`
}

type Product struct {
	BaseModel     `yaml:",inline"`
	Name          LocalizedString `json:"name" yaml:"name"`
	Category      Category        `json:"category" yaml:"category"`
	Description   LocalizedString `json:"description" yaml:"description"`
	Ingredients   LocalizedString `json:"ingredients" yaml:"ingredients"`
	Storage       LocalizedString `json:"storage" yaml:"storage"`
	Features      LocalizedString `json:"featuresAndAdvantages" yaml:"featuresAndAdvantages"`
	ImageURL      string          `json:"imageUrl" yaml:"imageUrl"`
	Price         decimal.Decimal `json:"price" yaml:"price"`
	Stock         int             `json:"stock" yaml:"stock"`
	WeightOptions []float64       `json:"weightOptions" yaml:"weightOptions"`
	Ratings       []Rating        `json:"ratings" yaml:"ratings"`
}

// LocalizedField names one of the product's bilingual text fields.
type LocalizedField string

const (
	FieldName        LocalizedField = "name"
	FieldDescription LocalizedField = "description"
	FieldIngredients LocalizedField = "ingredients"
	FieldStorage     LocalizedField = "storage"
	FieldFeatures    LocalizedField = "featuresAndAdvantages"
)

func (p *Product) localized(field LocalizedField) *LocalizedString {
	switch field {
	case FieldName:
		return &p.Name
	case FieldDescription:
		return &p.Description
	case FieldIngredients:
		return &p.Ingredients
	case FieldStorage:
		return &p.Storage
	case FieldFeatures:
		return &p.Features
	}
	return nil
}

func (p *Product) SetLocalized(field LocalizedField, lang Language, value string) error {
	target := p.localized(field)
	if target == nil {
		return apperror.Validation("unknown product field %q", field)
	}
	target.Set(lang, value)
	return nil
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	p.Price = price
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return apperror.Validation("stock must not be negative")
	}
	p.Stock = stock
	return nil
}

func (p *Product) SetCategory(c Category) error {
	if !c.Valid() {
		return apperror.Validation("unknown category %q", c)
	}
	p.Category = c
	return nil
}

func (p *Product) SetWeightOptions(opts []float64) error {
	for _, w := range opts {
		if w <= 0 {
			return apperror.Validation("weight options must be positive")
		}
	}
	p.WeightOptions = append([]float64(nil), opts...)
	return nil
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name.EN) == "" {
		return apperror.Validation("product name is required")
	}
	if !p.Category.Valid() {
		return apperror.Validation("unknown category %q", p.Category)
	}
	if p.Price.IsNegative() {
		return apperror.Validation("price must not be negative")
	}
	if p.Stock < 0 {
		return apperror.Validation("stock must not be negative")
	}
	for _, w := range p.WeightOptions {
		if w <= 0 {
			return apperror.Validation("weight options must be positive")
		}
	}
	return nil
}

func (p *Product) AddRating(r Rating) error {
	if r.Rating < 1 || r.Rating > 5 {
		return apperror.Validation("rating must be between 1 and 5")
	}
	if r.UserID == "" {
		r.UserID = GuestUserID
		r.UserName = GuestUserName
	}
	p.Ratings = append(p.Ratings, r)
	return nil
}

// AverageRating is the arithmetic mean of all ratings, 0 when unrated.
func (p *Product) AverageRating() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Ratings))
}

// Stars is the average rounded down, for star-fill rendering.
func (p *Product) Stars() int {
	return int(math.Floor(p.AverageRating()))
}

func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Description: p.Description,
	}
}
