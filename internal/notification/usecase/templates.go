package usecase

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	"github.com/fekuna/tagro-storefront-service/internal/settings"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/pkg/errors"
)

type templateUseCase struct {
	repo   settings.Repository
	logger logger.ZapLogger
}

func NewTemplateUseCase(repo settings.Repository, log logger.ZapLogger) notification.TemplateUseCase {
	return &templateUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *templateUseCase) GetTemplates(ctx context.Context) (model.SmsTemplates, error) {
	templates := model.DefaultSmsTemplates()
	if _, err := uc.repo.Load(ctx, settings.KeySmsTemplates, &templates); err != nil {
		return model.SmsTemplates{}, errors.Wrap(err, "load sms templates")
	}
	return templates, nil
}

func (uc *templateUseCase) UpdateTemplates(ctx context.Context, t model.SmsTemplates) (model.SmsTemplates, error) {
	if !model.IsValidOTPTemplate(t.OTP.EN) || !model.IsValidOTPTemplate(t.OTP.BN) {
		return model.SmsTemplates{}, apperror.Validation("the OTP template must include %q in both languages", model.PlaceholderOTP)
	}
	if err := uc.repo.Save(ctx, settings.KeySmsTemplates, t); err != nil {
		return model.SmsTemplates{}, errors.Wrap(err, "save sms templates")
	}
	return t, nil
}
