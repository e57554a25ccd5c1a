package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/dealer"
	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type dealerUseCase struct {
	repo   dealer.Repository
	logger logger.ZapLogger
}

func NewDealerUseCase(repo dealer.Repository, log logger.ZapLogger) dealer.UseCase {
	return &dealerUseCase{
		repo:   repo,
		logger: log,
	}
}

func apply(d *model.Dealer, input *dto.DealerInput) {
	d.ImageURL = strings.TrimSpace(input.ImageURL)
	d.Name = input.Name
	d.Zone = input.Zone
	d.Phone = strings.TrimSpace(input.Phone)
	d.Code = strings.TrimSpace(input.Code)
}

func (uc *dealerUseCase) CreateDealer(ctx context.Context, input *dto.DealerInput) (*model.Dealer, error) {
	now := time.Now()
	d := &model.Dealer{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	apply(d, input)
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, errors.Wrap(err, "create dealer")
	}
	uc.logger.Info("dealer created", zap.String("dealer_id", d.ID), zap.String("code", d.Code))
	return d, nil
}

func (uc *dealerUseCase) GetDealer(ctx context.Context, id string) (*model.Dealer, error) {
	d, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find dealer")
	}
	if d == nil {
		return nil, apperror.NotFound("dealer %s not found", id)
	}
	return d, nil
}

func (uc *dealerUseCase) ListDealers(ctx context.Context, filters *dto.DealerFilters) ([]model.Dealer, int, error) {
	if filters == nil {
		filters = &dto.DealerFilters{}
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *dealerUseCase) UpdateDealer(ctx context.Context, id string, input *dto.DealerInput) (*model.Dealer, error) {
	d, err := uc.GetDealer(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(d, input)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, errors.Wrap(err, "update dealer")
	}
	return d, nil
}

func (uc *dealerUseCase) DeleteDealer(ctx context.Context, id string) error {
	if _, err := uc.GetDealer(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
