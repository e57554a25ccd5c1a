package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/address"
	"github.com/fekuna/tagro-storefront-service/internal/address/dto"
	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.AddressService"

type AddressHandler struct {
	uc     address.UseCase
	logger logger.ZapLogger
}

func NewAddressHandler(uc address.UseCase, log logger.ZapLogger) *AddressHandler {
	return &AddressHandler{uc: uc, logger: log}
}

func (h *AddressHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("ListAddresses", h.ListAddresses),
		grpcx.Unary("AddAddress", h.AddAddress),
		grpcx.Unary("EditAddress", h.EditAddress),
		grpcx.Unary("DeleteAddress", h.DeleteAddress),
		grpcx.Unary("SetDefaultAddress", h.SetDefaultAddress),
	), h)
}

type AddressesResponse struct {
	Addresses []model.Address `json:"addresses"`
}

type EditAddressRequest struct {
	ID string `json:"id"`
	dto.AddressInput
}

type AddressIDRequest struct {
	ID string `json:"id"`
}

func respond(list []model.Address, err error) (*AddressesResponse, error) {
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &AddressesResponse{Addresses: list}, nil
}

func (h *AddressHandler) ListAddresses(ctx context.Context, _ *emptypb.Empty) (*AddressesResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return respond(h.uc.ListAddresses(ctx, u.UserID))
}

func (h *AddressHandler) AddAddress(ctx context.Context, req *dto.AddressInput) (*AddressesResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return respond(h.uc.AddAddress(ctx, u.UserID, req))
}

func (h *AddressHandler) EditAddress(ctx context.Context, req *EditAddressRequest) (*AddressesResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return respond(h.uc.EditAddress(ctx, u.UserID, req.ID, &req.AddressInput))
}

func (h *AddressHandler) DeleteAddress(ctx context.Context, req *AddressIDRequest) (*AddressesResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return respond(h.uc.DeleteAddress(ctx, u.UserID, req.ID))
}

func (h *AddressHandler) SetDefaultAddress(ctx context.Context, req *AddressIDRequest) (*AddressesResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return respond(h.uc.SetDefaultAddress(ctx, u.UserID, req.ID))
}
