package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	"github.com/fekuna/tagro-storefront-service/internal/user/dto"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/fekuna/tagro-storefront-service/pkg/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.UserService"

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{uc: uc, logger: log}
}

func (h *UserHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("RequestOTP", h.RequestOTP),
		grpcx.Unary("Register", h.RegisterUser),
		grpcx.Unary("Login", h.Login),
		grpcx.Unary("Me", h.Me),
		grpcx.Unary("UpdateProfile", h.UpdateProfile),
		grpcx.Unary("ResetPassword", h.ResetPassword),
		grpcx.Unary("ListUsers", h.ListUsers),
		grpcx.Unary("DeleteUser", h.DeleteUser),
	), h)
}

type RequestOTPRequest struct {
	Phone   string         `json:"phone"`
	Email   string         `json:"email,omitempty"`
	Purpose dto.OTPPurpose `json:"purpose"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User *model.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name              *string `json:"name,omitempty"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type ListUsersResponse struct {
	Users []model.User `json:"users"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

func (h *UserHandler) RequestOTP(ctx context.Context, req *RequestOTPRequest) (*emptypb.Empty, error) {
	err := h.uc.RequestOTP(ctx, &dto.RequestOTPInput{
		Phone:   req.Phone,
		Email:   req.Email,
		Purpose: req.Purpose,
		Lang:    model.ParseLanguage(middleware.Language(ctx)),
	})
	if err != nil {
		h.logger.Warn("otp request failed", zap.String("purpose", string(req.Purpose)), zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// RegisterUser is exposed as the Register RPC; the name is taken by the
// service registration method.
func (h *UserHandler) RegisterUser(ctx context.Context, req *RegisterRequest) (*dto.Session, error) {
	session, err := h.uc.Register(ctx, &dto.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return session, nil
}

func (h *UserHandler) Login(ctx context.Context, req *LoginRequest) (*dto.Session, error) {
	session, err := h.uc.Login(ctx, &dto.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return session, nil
}

func (h *UserHandler) Me(ctx context.Context, _ *emptypb.Empty) (*UserResponse, error) {
	caller, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	u, err := h.uc.Me(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &UserResponse{User: u}, nil
}

func (h *UserHandler) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*UserResponse, error) {
	caller, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	u, err := h.uc.UpdateProfile(ctx, caller.UserID, &dto.UpdateProfileInput{
		Name:              req.Name,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &UserResponse{User: u}, nil
}

func (h *UserHandler) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*emptypb.Empty, error) {
	err := h.uc.ResetPassword(ctx, &dto.ResetPasswordInput{
		Phone:       req.Phone,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *UserHandler) ListUsers(ctx context.Context, _ *emptypb.Empty) (*ListUsersResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	users, err := h.uc.ListUsers(ctx)
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return &ListUsersResponse{Users: users}, nil
}

func (h *UserHandler) DeleteUser(ctx context.Context, req *DeleteUserRequest) (*emptypb.Empty, error) {
	admin, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	if err := h.uc.DeleteUser(ctx, admin.UserID, req.ID); err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}
