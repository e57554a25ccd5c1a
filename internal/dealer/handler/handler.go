package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/dealer"
	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.DealerService"

type DealerHandler struct {
	uc     dealer.UseCase
	logger logger.ZapLogger
}

func NewDealerHandler(uc dealer.UseCase, log logger.ZapLogger) *DealerHandler {
	return &DealerHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DealerHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("CreateDealer", h.CreateDealer),
		grpcx.Unary("GetDealer", h.GetDealer),
		grpcx.Unary("ListDealers", h.ListDealers),
		grpcx.Unary("UpdateDealer", h.UpdateDealer),
		grpcx.Unary("DeleteDealer", h.DeleteDealer),
	), h)
}

type DealerResponse struct {
	Dealer *model.Dealer `json:"dealer"`
}

type GetDealerRequest struct {
	ID string `json:"id"`
}

type UpdateDealerRequest struct {
	ID string `json:"id"`
	dto.DealerInput
}

type ListDealersResponse struct {
	Dealers []model.Dealer `json:"dealers"`
	Total   int            `json:"total"`
}

func (h *DealerHandler) CreateDealer(ctx context.Context, req *dto.DealerInput) (*DealerResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	d, err := h.uc.CreateDealer(ctx, req)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &DealerResponse{Dealer: d}, nil
}

func (h *DealerHandler) GetDealer(ctx context.Context, req *GetDealerRequest) (*DealerResponse, error) {
	d, err := h.uc.GetDealer(ctx, req.ID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &DealerResponse{Dealer: d}, nil
}

func (h *DealerHandler) ListDealers(ctx context.Context, req *dto.DealerFilters) (*ListDealersResponse, error) {
	dealers, total, err := h.uc.ListDealers(ctx, req)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	if dealers == nil {
		dealers = []model.Dealer{}
	}
	return &ListDealersResponse{Dealers: dealers, Total: total}, nil
}

func (h *DealerHandler) UpdateDealer(ctx context.Context, req *UpdateDealerRequest) (*DealerResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	d, err := h.uc.UpdateDealer(ctx, req.ID, &req.DealerInput)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &DealerResponse{Dealer: d}, nil
}

func (h *DealerHandler) DeleteDealer(ctx context.Context, req *GetDealerRequest) (*emptypb.Empty, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	if err := h.uc.DeleteDealer(ctx, req.ID); err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}
