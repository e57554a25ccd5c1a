package product

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	// AppendRating adds r to the product's ratings without rewriting the
	// rest of the row, so concurrent raters never lose each other's entries.
	AppendRating(ctx context.Context, productID string, r model.Rating) error
}
