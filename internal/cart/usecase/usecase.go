package usecase

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/cart"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type cartUseCase struct {
	repo     cart.Repository
	products product.Repository
	logger   logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, products product.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

// GetCart hydrates the stored lines with live product data. Lines whose
// product has been deleted are left out.
func (uc *cartUseCase) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	lines, err := uc.repo.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := &model.Cart{UserID: userID, Items: []model.CartItem{}}
	for _, line := range lines {
		p, err := uc.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "load cart product")
		}
		if p == nil {
			uc.logger.Debug("dropping deleted product from cart view",
				zap.String("user_id", userID), zap.String("product_id", line.ProductID))
			continue
		}
		c.Add(*p, line.Quantity)
	}
	return c, nil
}

func (uc *cartUseCase) AddToCart(ctx context.Context, userID, productID string, qty int) (*model.Cart, error) {
	if qty < 1 {
		return nil, apperror.Validation("quantity must be at least 1")
	}
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	if p == nil {
		return nil, apperror.NotFound("product %s not found", productID)
	}

	if err := uc.repo.Add(ctx, userID, productID, qty); err != nil {
		return nil, err
	}
	return uc.GetCart(ctx, userID)
}

func (uc *cartUseCase) RemoveFromCart(ctx context.Context, userID, productID string) (*model.Cart, error) {
	if err := uc.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return uc.GetCart(ctx, userID)
}

func (uc *cartUseCase) UpdateQuantity(ctx context.Context, userID, productID string, qty int) (*model.Cart, error) {
	if qty < 1 {
		return nil, apperror.Validation("quantity must be at least 1")
	}
	if err := uc.repo.SetQuantity(ctx, userID, productID, qty); err != nil {
		return nil, err
	}
	return uc.GetCart(ctx, userID)
}

func (uc *cartUseCase) ClearCart(ctx context.Context, userID string) error {
	return uc.repo.Clear(ctx, userID)
}

func (uc *cartUseCase) IsInCart(ctx context.Context, userID, productID string) (bool, error) {
	lines, err := uc.repo.Lines(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, l := range lines {
		if l.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
