package usecase_test

import (
	"context"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/payment/usecase"
	"github.com/fekuna/tagro-storefront-service/internal/settings"
	settingsrepo "github.com/fekuna/tagro-storefront-service/internal/settings/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPaymentMethods_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	repo := settingsrepo.NewMemoryRepository()
	uc := usecase.NewPaymentUseCase(repo, logger.NewNop())

	methods, err := uc.ListPaymentMethods(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 4)
	for _, m := range methods {
		assert.False(t, m.IsEnabled)
	}

	var stored []model.PaymentMethod
	found, err := repo.Load(ctx, settings.KeyPaymentMethods, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, stored, 4)

	enabled, err := uc.ListEnabled(ctx)
	require.NoError(t, err)
	assert.Empty(t, enabled)
}

func TestUpdatePaymentMethods(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPaymentUseCase(settingsrepo.NewMemoryRepository(), logger.NewNop())

	methods := []model.PaymentMethod{
		model.NewWalletMethod(model.PaymentBkash, " Bkash ", model.MobilePaymentDetails{AccountNumber: "01700000000", PaymentType: model.MobileSendMoney}, true),
		model.NewWalletMethod(model.PaymentNagad, "Nagad", model.MobilePaymentDetails{PaymentType: model.MobileSendMoney}, false),
		model.NewBankMethod("Bank Transfer", model.BankPaymentDetails{AccountName: "T Agro", AccountNumber: "42"}, true),
	}
	saved, err := uc.UpdatePaymentMethods(ctx, methods)
	require.NoError(t, err)
	assert.Equal(t, "Bkash", saved[0].Name)

	enabled, err := uc.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 2)

	bank, err := uc.GetEnabledByType(ctx, model.PaymentBank)
	require.NoError(t, err)
	require.NotNil(t, bank)
	assert.Equal(t, "42", bank.Bank.AccountNumber)

	nagad, err := uc.GetEnabledByType(ctx, model.PaymentNagad)
	require.NoError(t, err)
	assert.Nil(t, nagad)

	rocket, err := uc.GetEnabledByType(ctx, model.PaymentRocket)
	require.NoError(t, err)
	assert.Nil(t, rocket)
}

func TestUpdatePaymentMethods_Invalid(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPaymentUseCase(settingsrepo.NewMemoryRepository(), logger.NewNop())

	_, err := uc.UpdatePaymentMethods(ctx, []model.PaymentMethod{
		model.NewWalletMethod(model.PaymentBkash, "Bkash", model.MobilePaymentDetails{PaymentType: model.MobileSendMoney}, true),
		model.NewWalletMethod(model.PaymentBkash, "Bkash again", model.MobilePaymentDetails{PaymentType: model.MobileSendMoney}, false),
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "account number is required when enabled")
	assert.Contains(t, err.Error(), "listed more than once")

	methods, err := uc.ListPaymentMethods(ctx)
	require.NoError(t, err)
	assert.Len(t, methods, 4)
}
