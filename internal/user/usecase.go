package user

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/user/dto"
)

type UseCase interface {
	RequestOTP(ctx context.Context, input *dto.RequestOTPInput) error
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.Session, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.Session, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (*model.User, error)
	ResetPassword(ctx context.Context, input *dto.ResetPasswordInput) error

	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
}
