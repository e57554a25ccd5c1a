package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/payment"
	"github.com/fekuna/tagro-storefront-service/internal/settings"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type paymentUseCase struct {
	repo   settings.Repository
	logger logger.ZapLogger
}

func NewPaymentUseCase(repo settings.Repository, log logger.ZapLogger) payment.UseCase {
	return &paymentUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *paymentUseCase) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	found, err := uc.repo.Load(ctx, settings.KeyPaymentMethods, &methods)
	if err != nil {
		return nil, errors.Wrap(err, "load payment methods")
	}
	if found {
		if methods == nil {
			methods = []model.PaymentMethod{}
		}
		return methods, nil
	}

	methods = model.DefaultPaymentMethods()
	if err := uc.repo.Save(ctx, settings.KeyPaymentMethods, methods); err != nil {
		return nil, errors.Wrap(err, "seed payment methods")
	}
	uc.logger.Info("seeded default payment methods")
	return methods, nil
}

func (uc *paymentUseCase) UpdatePaymentMethods(ctx context.Context, methods []model.PaymentMethod) ([]model.PaymentMethod, error) {
	var errs error
	seen := make(map[model.PaymentType]bool, len(methods))
	for i := range methods {
		methods[i].Name = strings.TrimSpace(methods[i].Name)
		if seen[methods[i].Type] {
			errs = multierr.Append(errs, apperror.Validation("payment method %q listed more than once", methods[i].Type))
		}
		seen[methods[i].Type] = true
		errs = multierr.Append(errs, methods[i].Validate())
	}
	if errs != nil {
		msgs := make([]string, 0)
		for _, e := range multierr.Errors(errs) {
			msgs = append(msgs, e.Error())
		}
		return nil, apperror.Validation("%s", strings.Join(msgs, "; ")).WithCode("invalid_payment_methods")
	}

	if methods == nil {
		methods = []model.PaymentMethod{}
	}
	if err := uc.repo.Save(ctx, settings.KeyPaymentMethods, methods); err != nil {
		return nil, errors.Wrap(err, "save payment methods")
	}
	uc.logger.Info("payment methods updated", zap.Int("count", len(methods)))
	return methods, nil
}

func (uc *paymentUseCase) ListEnabled(ctx context.Context) ([]model.PaymentMethod, error) {
	methods, err := uc.ListPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	enabled := make([]model.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		if m.IsEnabled {
			enabled = append(enabled, m)
		}
	}
	return enabled, nil
}

func (uc *paymentUseCase) GetEnabledByType(ctx context.Context, t model.PaymentType) (*model.PaymentMethod, error) {
	enabled, err := uc.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	for i := range enabled {
		if enabled[i].Type == t {
			return &enabled[i], nil
		}
	}
	return nil, nil
}
