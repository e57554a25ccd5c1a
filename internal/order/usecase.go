package order

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/order/dto"
)

type UseCase interface {
	// Checkout turns the user's cart into a Pending order and clears the cart.
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error)
	// Transition applies one state machine action on behalf of the actor.
	Transition(ctx context.Context, input *dto.TransitionInput) (*dto.TransitionResult, error)

	ListAllOrders(ctx context.Context) ([]model.Order, error)
	ListMyOrders(ctx context.Context, userID string) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID, actorID string, actorRole model.Role) (*model.Order, error)
}
