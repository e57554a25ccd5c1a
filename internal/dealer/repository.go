package dealer

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, dealer *model.Dealer) error
	FindByID(ctx context.Context, id string) (*model.Dealer, error)
	FindAll(ctx context.Context, filters *dto.DealerFilters) ([]model.Dealer, int, error)
	Update(ctx context.Context, dealer *model.Dealer) error
	Delete(ctx context.Context, id string) error
}
