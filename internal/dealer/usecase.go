package dealer

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type UseCase interface {
	CreateDealer(ctx context.Context, input *dto.DealerInput) (*model.Dealer, error)
	GetDealer(ctx context.Context, id string) (*model.Dealer, error)
	ListDealers(ctx context.Context, filters *dto.DealerFilters) ([]model.Dealer, int, error)
	UpdateDealer(ctx context.Context, id string, input *dto.DealerInput) (*model.Dealer, error)
	DeleteDealer(ctx context.Context, id string) error
}
