package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"go.uber.org/zap"
)

type smsNotifier struct {
	sender  notification.Sender
	logger  logger.ZapLogger
	newCode func() (string, error)
}

func NewSmsNotifier(sender notification.Sender, log logger.ZapLogger) notification.Notifier {
	return &smsNotifier{
		sender:  sender,
		logger:  log,
		newCode: sixDigitCode,
	}
}

// sixDigitCode returns a uniformly random code in [100000, 999999].
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", 100000+n.Int64()), nil
}

func (n *smsNotifier) SendOTP(ctx context.Context, phone, template string) (string, error) {
	if phone == "" {
		return "", apperror.Validation("phone number is required")
	}
	if !model.IsValidOTPTemplate(template) {
		return "", apperror.Validation("invalid message template, it must include %q", model.PlaceholderOTP)
	}

	code, err := n.newCode()
	if err != nil {
		return "", err
	}
	msg := notification.Render(template, map[string]string{model.PlaceholderOTP: code})
	if err := n.sender.Send(ctx, phone, msg); err != nil {
		return "", err
	}
	n.logger.Info("otp sent", zap.String("phone", phone))
	return code, nil
}

func (n *smsNotifier) SendOrderConfirmation(ctx context.Context, phone, template string, data notification.OrderConfirmationData) error {
	if phone == "" {
		return apperror.Validation("phone number is required")
	}
	msg := notification.RenderOrderConfirmation(template, data)
	if err := n.sender.Send(ctx, phone, msg); err != nil {
		return err
	}
	n.logger.Info("order confirmation sent", zap.String("order_id", data.OrderID))
	return nil
}
