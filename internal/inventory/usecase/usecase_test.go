package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/inventory"
	"github.com/fekuna/tagro-storefront-service/internal/inventory/dto"
	"github.com/fekuna/tagro-storefront-service/internal/inventory/repository"
	"github.com/fekuna/tagro-storefront-service/internal/inventory/usecase"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	productrepo "github.com/fekuna/tagro-storefront-service/internal/product/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefresher struct {
	ids []string
}

func (r *recordingRefresher) RefreshProduct(_ context.Context, id string) error {
	r.ids = append(r.ids, id)
	return nil
}

func setup(t *testing.T, stock int) inventory.UseCase {
	return setupWithRefresher(t, stock, nil)
}

func setupWithRefresher(t *testing.T, stock int, refresher product.ViewRefresher) inventory.UseCase {
	t.Helper()
	products := productrepo.NewMemoryRepository()
	require.NoError(t, products.Create(context.Background(), &model.Product{
		BaseModel: model.BaseModel{ID: "ff001"},
		Name:      model.LocalizedString{EN: "Fish Feed"},
		Category:  model.CategoryFishFeed,
		Price:     decimal.NewFromInt(1599),
		Stock:     stock,
	}))
	return usecase.NewInventoryUseCase(repository.NewMemoryRepository(products), cache.NewNoopLocker(), refresher, logger.NewNop())
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	uc := setup(t, 10)

	m, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{
		ProductID:      "ff001",
		QuantityChange: -3,
		Reason:         " Order Sale ",
		ReferenceID:    "ORD-1",
		ReferenceType:  dto.ReferenceSale,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 7, m.QuantityAfter)
	assert.Equal(t, "Order Sale", m.Reason)
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, "ORD-1", *m.ReferenceID)
	assert.Nil(t, m.CreatedBy)

	stock, err := uc.GetStock(ctx, "ff001")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestAdjustStock_Rejected(t *testing.T) {
	ctx := context.Background()
	uc := setup(t, 2)

	_, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "ff001"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "ff001", QuantityChange: -3})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "missing", QuantityChange: 1})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	stock, err := uc.GetStock(ctx, "ff001")
	require.NoError(t, err)
	assert.Equal(t, 2, stock)
}

func TestListMovements(t *testing.T) {
	ctx := context.Background()
	uc := setup(t, 5)

	_, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "ff001", QuantityChange: 5, ReferenceType: dto.ReferenceManual})
	require.NoError(t, err)
	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "ff001", QuantityChange: -1, ReferenceType: dto.ReferenceSale})
	require.NoError(t, err)

	all, total, err := uc.ListMovements(ctx, &dto.MovementFilters{ProductID: "ff001"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	sales, total, err := uc.ListMovements(ctx, &dto.MovementFilters{ProductID: "ff001", ReferenceType: dto.ReferenceSale})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, -1, sales[0].QuantityChange)

	_, _, err = uc.ListMovements(ctx, &dto.MovementFilters{})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestMemoryRepository_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	products := productrepo.NewMemoryRepository()
	require.NoError(t, products.Create(ctx, &model.Product{BaseModel: model.BaseModel{ID: "p1"}, Stock: 4}))
	repo := repository.NewMemoryRepository(products)

	err := repo.AdjustStockWithMovement(ctx, &model.StockMovement{ProductID: "p1", QuantityBefore: 3, QuantityAfter: 1})
	assert.ErrorIs(t, err, inventory.ErrStockChanged)

	require.NoError(t, repo.AdjustStockWithMovement(ctx, &model.StockMovement{ProductID: "p1", QuantityBefore: 4, QuantityAfter: 1}))
	stock, err := repo.GetStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, *stock)
}

func TestAdjustStock_RefreshesProductViews(t *testing.T) {
	ctx := context.Background()
	refresher := &recordingRefresher{}
	uc := setupWithRefresher(t, 5, refresher)

	_, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "ff001", QuantityChange: -2, Reason: "order"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ff001"}, refresher.ids)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{ProductID: "ff001", QuantityChange: -10, Reason: "order"})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
	assert.Len(t, refresher.ids, 1)
}
