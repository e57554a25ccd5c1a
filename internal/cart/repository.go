package cart

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/cart/dto"
)

// Repository stores product id → quantity per user, remembering the order
// products were first added in.
type Repository interface {
	Lines(ctx context.Context, userID string) ([]dto.Line, error)
	// Add increments the line, creating it if needed.
	Add(ctx context.Context, userID, productID string, qty int) error
	// SetQuantity overwrites an existing line. Absent lines are left alone.
	SetQuantity(ctx context.Context, userID, productID string, qty int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}
