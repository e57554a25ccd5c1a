package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/dealer/repository"
	"github.com/fekuna/tagro-storefront-service/internal/dealer/usecase"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealerInput(name, zone, code string) *dto.DealerInput {
	return &dto.DealerInput{
		Name:  model.LocalizedString{EN: name},
		Zone:  model.LocalizedString{EN: zone, BN: "ঢাকা"},
		Phone: " 01711000000 ",
		Code:  code,
	}
}

func TestDealerCRUD(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDealerUseCase(repository.NewMemoryRepository(), logger.NewNop())

	d, err := uc.CreateDealer(ctx, dealerInput("Karim Traders", "Dhaka", "D-01"))
	require.NoError(t, err)
	assert.Equal(t, "01711000000", d.Phone)

	got, err := uc.GetDealer(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Karim Traders", got.Name.EN)

	updated, err := uc.UpdateDealer(ctx, d.ID, dealerInput("Karim & Sons", "Dhaka", "D-01"))
	require.NoError(t, err)
	assert.Equal(t, "Karim & Sons", updated.Name.EN)

	require.NoError(t, uc.DeleteDealer(ctx, d.ID))
	_, err = uc.GetDealer(ctx, d.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.True(t, apperror.Is(uc.DeleteDealer(ctx, d.ID), apperror.KindNotFound))
}

func TestCreateDealer_MissingFields(t *testing.T) {
	uc := usecase.NewDealerUseCase(repository.NewMemoryRepository(), logger.NewNop())

	_, err := uc.CreateDealer(context.Background(), &dto.DealerInput{Name: model.LocalizedString{EN: "X"}})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "zone, phone, code")
}

func TestListDealers_ZoneFilter(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewDealerUseCase(repository.NewMemoryRepository(), logger.NewNop())

	_, err := uc.CreateDealer(ctx, dealerInput("B Dealer", "Dhaka North", "D-02"))
	require.NoError(t, err)
	_, err = uc.CreateDealer(ctx, dealerInput("A Dealer", "Dhaka South", "D-03"))
	require.NoError(t, err)
	_, err = uc.CreateDealer(ctx, &dto.DealerInput{
		Name:  model.LocalizedString{EN: "C Dealer"},
		Zone:  model.LocalizedString{EN: "Khulna", BN: "খুলনা"},
		Phone: "01800000000",
		Code:  "K-01",
	})
	require.NoError(t, err)

	list, total, err := uc.ListDealers(ctx, &dto.DealerFilters{Zone: "dhaka"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "A Dealer", list[0].Name.EN)

	list, total, err = uc.ListDealers(ctx, &dto.DealerFilters{Zone: "খুলনা"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "K-01", list[0].Code)

	_, total, err = uc.ListDealers(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
