package address

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/address/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
)

// UseCase manages a user's shipping addresses. A user with addresses always
// has exactly one default. Mutations return the full updated list.
type UseCase interface {
	ListAddresses(ctx context.Context, userID string) ([]model.Address, error)
	AddAddress(ctx context.Context, userID string, input *dto.AddressInput) ([]model.Address, error)
	EditAddress(ctx context.Context, userID, addressID string, input *dto.AddressInput) ([]model.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) ([]model.Address, error)
	SetDefaultAddress(ctx context.Context, userID, addressID string) ([]model.Address, error)
}
