package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/inventory"
	"github.com/fekuna/tagro-storefront-service/internal/inventory/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	locker    cache.Locker
	refresher product.ViewRefresher
	logger    logger.ZapLogger
	now       func() time.Time
}

// NewInventoryUseCase wires the stock ledger. refresher may be nil when no
// product views are cached.
func NewInventoryUseCase(repo inventory.Repository, locker cache.Locker, refresher product.ViewRefresher, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		locker:    locker,
		refresher: refresher,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, productID string) (int, error) {
	stock, err := uc.repo.GetStock(ctx, productID)
	if err != nil {
		return 0, errors.Wrap(err, "get stock")
	}
	if stock == nil {
		return 0, apperror.NotFound("product %s not found", productID)
	}
	return *stock, nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockMovement, error) {
	if input.QuantityChange == 0 {
		return nil, apperror.Validation("quantity change must not be zero")
	}

	var movement *model.StockMovement
	lockKey := fmt.Sprintf("lock:inventory:%s", input.ProductID)
	err := uc.locker.WithLock(ctx, lockKey, func() error {
		current, err := uc.GetStock(ctx, input.ProductID)
		if err != nil {
			return err
		}

		after := current + input.QuantityChange
		if after < 0 {
			return apperror.Precondition("insufficient stock for product %s: have %d, need %d",
				input.ProductID, current, -input.QuantityChange).WithCode("insufficient_stock")
		}

		movement = &model.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      input.ProductID,
			QuantityChange: input.QuantityChange,
			QuantityBefore: current,
			QuantityAfter:  after,
			Reason:         strings.TrimSpace(input.Reason),
			ReferenceType:  optional(input.ReferenceType),
			ReferenceID:    optional(input.ReferenceID),
			CreatedBy:      optional(input.UserID),
			CreatedAt:      uc.now(),
		}
		return uc.repo.AdjustStockWithMovement(ctx, movement)
	})
	switch {
	case err == nil:
		uc.refreshViews(ctx, input.ProductID)
		return movement, nil
	case errors.Is(err, inventory.ErrStockChanged):
		return nil, apperror.Precondition("stock for product %s changed, please retry", input.ProductID)
	case errors.Is(err, cache.ErrLockNotAcquired):
		uc.logger.Warn("inventory lock busy", zap.String("product_id", input.ProductID))
		return nil, apperror.Precondition("%s", cache.ErrLockNotAcquired.Error())
	}
	return nil, err
}

func (uc *inventoryUseCase) refreshViews(ctx context.Context, productID string) {
	if uc.refresher == nil {
		return
	}
	if err := uc.refresher.RefreshProduct(ctx, productID); err != nil {
		uc.logger.Warn("failed to refresh product views", zap.String("product_id", productID), zap.Error(err))
	}
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	if filters == nil || filters.ProductID == "" {
		return nil, 0, apperror.Validation("product id is required")
	}
	return uc.repo.ListMovements(ctx, filters)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
