package usecase

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/address"
	"github.com/fekuna/tagro-storefront-service/internal/address/dto"
	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type addressUseCase struct {
	users  user.Repository
	locker cache.Locker
	logger logger.ZapLogger
}

func NewAddressUseCase(users user.Repository, locker cache.Locker, log logger.ZapLogger) address.UseCase {
	return &addressUseCase{
		users:  users,
		locker: locker,
		logger: log,
	}
}

func (uc *addressUseCase) load(ctx context.Context, userID string) (*model.User, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	if u == nil {
		return nil, apperror.NotFound("user %s not found", userID)
	}
	return u, nil
}

func (uc *addressUseCase) ListAddresses(ctx context.Context, userID string) ([]model.Address, error) {
	u, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Addresses == nil {
		return []model.Address{}, nil
	}
	return u.Addresses, nil
}

// mutate runs fn on a fresh copy of the address list under the user lock
// and writes the result back in one replace.
func (uc *addressUseCase) mutate(ctx context.Context, userID string, fn func([]model.Address) ([]model.Address, error)) ([]model.Address, error) {
	var out []model.Address
	err := uc.locker.WithLock(ctx, user.LockKey(userID), func() error {
		u, err := uc.load(ctx, userID)
		if err != nil {
			return err
		}
		next, err := fn(append([]model.Address(nil), u.Addresses...))
		if err != nil {
			return err
		}
		ensureSingleDefault(next)
		if err := uc.users.ReplaceAddresses(ctx, userID, next); err != nil {
			return errors.Wrap(err, "replace addresses")
		}
		out = next
		return nil
	})
	if errors.Is(err, cache.ErrLockNotAcquired) {
		return nil, apperror.Precondition("%s", err.Error())
	}
	if out == nil && err == nil {
		out = []model.Address{}
	}
	return out, err
}

// ensureSingleDefault keeps the first flagged default and clears the rest.
// With no default flagged, the first address is promoted.
func ensureSingleDefault(list []model.Address) {
	found := false
	for i := range list {
		if list[i].IsDefault && !found {
			found = true
			continue
		}
		list[i].IsDefault = false
	}
	if !found && len(list) > 0 {
		list[0].IsDefault = true
	}
}

func setDefault(list []model.Address, id string) {
	for i := range list {
		list[i].IsDefault = list[i].ID == id
	}
}

func indexOf(list []model.Address, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func (uc *addressUseCase) AddAddress(ctx context.Context, userID string, input *dto.AddressInput) ([]model.Address, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	a := model.Address{
		ID:       uuid.New().String(),
		Division: input.Division,
		District: input.District,
		Upazila:  input.Upazila,
		Details:  input.Details,
	}
	list, err := uc.mutate(ctx, userID, func(list []model.Address) ([]model.Address, error) {
		list = append(list, a)
		if input.IsDefault || len(list) == 1 {
			setDefault(list, a.ID)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("address added", zap.String("user_id", userID), zap.String("address_id", a.ID))
	return list, nil
}

func (uc *addressUseCase) EditAddress(ctx context.Context, userID, addressID string, input *dto.AddressInput) ([]model.Address, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, userID, func(list []model.Address) ([]model.Address, error) {
		i := indexOf(list, addressID)
		if i < 0 {
			return nil, apperror.NotFound("address %s not found", addressID)
		}
		list[i].Division = input.Division
		list[i].District = input.District
		list[i].Upazila = input.Upazila
		list[i].Details = input.Details
		// clearing the flag on the default is ignored; another address must be chosen instead
		if input.IsDefault {
			setDefault(list, addressID)
		}
		return list, nil
	})
}

func (uc *addressUseCase) DeleteAddress(ctx context.Context, userID, addressID string) ([]model.Address, error) {
	return uc.mutate(ctx, userID, func(list []model.Address) ([]model.Address, error) {
		i := indexOf(list, addressID)
		if i < 0 {
			return nil, apperror.NotFound("address %s not found", addressID)
		}
		// ensureSingleDefault promotes the first remaining address
		return append(list[:i], list[i+1:]...), nil
	})
}

func (uc *addressUseCase) SetDefaultAddress(ctx context.Context, userID, addressID string) ([]model.Address, error) {
	return uc.mutate(ctx, userID, func(list []model.Address) ([]model.Address, error) {
		if indexOf(list, addressID) < 0 {
			return nil, apperror.NotFound("address %s not found", addressID)
		}
		setDefault(list, addressID)
		return list, nil
	})
}
