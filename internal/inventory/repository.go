package inventory

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/inventory/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/pkg/errors"
)

// ErrStockChanged means the stored level no longer matches the movement's
// QuantityBefore, i.e. another writer got there first.
var ErrStockChanged = errors.New("stock level changed concurrently")

type Repository interface {
	// GetStock returns nil when the product does not exist.
	GetStock(ctx context.Context, productID string) (*int, error)

	// AdjustStockWithMovement moves the product from QuantityBefore to
	// QuantityAfter and records the movement atomically.
	AdjustStockWithMovement(ctx context.Context, movement *model.StockMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
