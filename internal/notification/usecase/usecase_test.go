package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	settingsrepo "github.com/fekuna/tagro-storefront-service/internal/settings/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct{ phone, message string }

type fakeSender struct {
	msgs []sent
	err  error
}

func (s *fakeSender) Send(_ context.Context, phone, message string) error {
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, sent{phone, message})
	return nil
}

func TestSendOTP(t *testing.T) {
	sender := &fakeSender{}
	n := &smsNotifier{sender: sender, logger: logger.NewNop(), newCode: func() (string, error) { return "482913", nil }}

	code, err := n.SendOTP(context.Background(), "01711000000", "Code {otp}, again {otp}")
	require.NoError(t, err)
	assert.Equal(t, "482913", code)
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "Code 482913, again 482913", sender.msgs[0].message)

	_, err = n.SendOTP(context.Background(), "01711000000", "no placeholder")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = n.SendOTP(context.Background(), "", "{otp}")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSendOTP_SenderFailure(t *testing.T) {
	sender := &fakeSender{err: apperror.External("bulksmsbd", errors.New("down"))}
	n := NewSmsNotifier(sender, logger.NewNop())

	code, err := n.SendOTP(context.Background(), "01711000000", "{otp}")
	require.Error(t, err)
	assert.Empty(t, code)
}

func TestSixDigitCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := sixDigitCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	sender := &fakeSender{}
	n := NewSmsNotifier(sender, logger.NewNop())

	err := n.SendOrderConfirmation(context.Background(), "01711000000", model.DefaultSmsTemplates().OrderConfirmation.EN,
		notification.OrderConfirmationData{OrderID: "ORD-1", UserName: "Rahim", TotalAmount: "3198.00"})
	require.NoError(t, err)
	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "Thank you, Rahim! Your order #ORD-1 for BDT 3198.00 is now being processed.", sender.msgs[0].message)
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	uc := NewTemplateUseCase(settingsrepo.NewMemoryRepository(), logger.NewNop())

	got, err := uc.GetTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSmsTemplates(), got)

	_, err = uc.UpdateTemplates(ctx, model.SmsTemplates{OTP: model.SmsTemplate{EN: "code {otp}", BN: "কোড"}})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	custom := model.SmsTemplates{
		OTP:               model.SmsTemplate{EN: "code {otp}", BN: "কোড {otp}"},
		OrderConfirmation: model.SmsTemplate{EN: "Order {orderId} ok", BN: "অর্ডার {orderId}"},
	}
	_, err = uc.UpdateTemplates(ctx, custom)
	require.NoError(t, err)

	got, err = uc.GetTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}
