package product

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	SearchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddRating(ctx context.Context, input *dto.AddRatingInput) (*model.Product, error)

	ViewRefresher
}

// ViewRefresher rebuilds the list cache and search document of a product
// whose row was changed outside the catalog, e.g. by a stock adjustment.
type ViewRefresher interface {
	RefreshProduct(ctx context.Context, id string) error
}
