package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/address"
	"github.com/fekuna/tagro-storefront-service/internal/address/dto"
	"github.com/fekuna/tagro-storefront-service/internal/address/usecase"
	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	userrepo "github.com/fekuna/tagro-storefront-service/internal/user/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) address.UseCase {
	t.Helper()
	users := userrepo.NewMemoryRepository()
	require.NoError(t, users.Create(context.Background(), &model.User{
		BaseModel: model.BaseModel{ID: "u1"},
		Name:      "Rahim",
		Email:     "rahim@example.com",
		Phone:     "01711000000",
		Role:      model.RoleCustomer,
	}))
	return usecase.NewAddressUseCase(users, cache.NewNoopLocker(), logger.NewNop())
}

func input(details string, isDefault bool) *dto.AddressInput {
	return &dto.AddressInput{
		Division:  "Dhaka",
		District:  "Dhaka",
		Upazila:   "Savar",
		Details:   details,
		IsDefault: isDefault,
	}
}

func defaultID(list []model.Address) string {
	id := ""
	for _, a := range list {
		if a.IsDefault {
			if id != "" {
				return "multiple"
			}
			id = a.ID
		}
	}
	return id
}

func TestAddAddress_FirstBecomesDefault(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	list, err := uc.ListAddresses(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = uc.AddAddress(ctx, "u1", input("House 1", false))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDefault)

	list, err = uc.AddAddress(ctx, "u1", input("House 2", false))
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, defaultID(list))

	list, err = uc.AddAddress(ctx, "u1", input("House 3", true))
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, list[2].ID, defaultID(list))
}

func TestAddAddress_Validation(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	_, err := uc.AddAddress(ctx, "u1", &dto.AddressInput{Division: "Dhaka", Details: "  "})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "district, upazila, details")

	_, err = uc.AddAddress(ctx, "nobody", input("House", false))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestDeleteAddress_PromotesFirstRemaining(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	_, err := uc.AddAddress(ctx, "u1", input("House 1", false))
	require.NoError(t, err)
	_, err = uc.AddAddress(ctx, "u1", input("House 2", false))
	require.NoError(t, err)
	list, err := uc.AddAddress(ctx, "u1", input("House 3", true))
	require.NoError(t, err)

	list, err = uc.DeleteAddress(ctx, "u1", list[2].ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, list[0].ID, defaultID(list))
	assert.Equal(t, "House 1", list[0].Details)

	_, err = uc.DeleteAddress(ctx, "u1", "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	list, err = uc.DeleteAddress(ctx, "u1", list[0].ID)
	require.NoError(t, err)
	list, err = uc.DeleteAddress(ctx, "u1", list[0].ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestEditAndSetDefault(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	_, err := uc.AddAddress(ctx, "u1", input("House 1", false))
	require.NoError(t, err)
	list, err := uc.AddAddress(ctx, "u1", input("House 2", false))
	require.NoError(t, err)
	first, second := list[0].ID, list[1].ID

	list, err = uc.EditAddress(ctx, "u1", first, input(" Road 7 ", false))
	require.NoError(t, err)
	assert.Equal(t, "Road 7", list[0].Details)
	assert.Equal(t, first, defaultID(list))

	list, err = uc.SetDefaultAddress(ctx, "u1", second)
	require.NoError(t, err)
	assert.Equal(t, second, defaultID(list))

	list, err = uc.EditAddress(ctx, "u1", first, input("Road 7", true))
	require.NoError(t, err)
	assert.Equal(t, first, defaultID(list))

	_, err = uc.SetDefaultAddress(ctx, "u1", "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	stored, err := uc.ListAddresses(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, defaultID(stored))
}
