package cart

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type UseCase interface {
	GetCart(ctx context.Context, userID string) (*model.Cart, error)
	AddToCart(ctx context.Context, userID, productID string, qty int) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID string) (*model.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, qty int) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	IsInCart(ctx context.Context, userID, productID string) (bool, error)
}
