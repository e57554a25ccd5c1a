package payment

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
)

// UseCase is the admin-configured registry of off-platform payment channels.
type UseCase interface {
	// ListPaymentMethods returns the whole registry, seeding the disabled
	// defaults on first read.
	ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
	// UpdatePaymentMethods replaces the registry. Every entry is validated and
	// all problems are reported together.
	UpdatePaymentMethods(ctx context.Context, methods []model.PaymentMethod) ([]model.PaymentMethod, error)
	ListEnabled(ctx context.Context) ([]model.PaymentMethod, error)
	// GetEnabledByType returns nil when the channel is unknown or disabled.
	GetEnabledByType(ctx context.Context, t model.PaymentType) (*model.PaymentMethod, error)
}
