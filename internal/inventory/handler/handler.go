package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/inventory"
	"github.com/fekuna/tagro-storefront-service/internal/inventory/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.v1.InventoryService"

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("GetStock", h.GetStock),
		grpcx.Unary("AdjustStock", h.AdjustStock),
		grpcx.Unary("ListMovements", h.ListMovements),
	), h)
}

type GetStockRequest struct {
	ProductID string `json:"productId"`
}

type StockResponse struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}

type AdjustStockRequest struct {
	ProductID      string `json:"productId"`
	QuantityChange int    `json:"quantityChange"`
	Reason         string `json:"reason"`
}

type MovementResponse struct {
	Movement *model.StockMovement `json:"movement"`
}

type ListMovementsResponse struct {
	Movements []model.StockMovement `json:"movements"`
	Total     int                   `json:"total"`
}

func (h *InventoryHandler) GetStock(ctx context.Context, req *GetStockRequest) (*StockResponse, error) {
	stock, err := h.uc.GetStock(ctx, req.ProductID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &StockResponse{ProductID: req.ProductID, Stock: stock}, nil
}

func (h *InventoryHandler) AdjustStock(ctx context.Context, req *AdjustStockRequest) (*MovementResponse, error) {
	u, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}

	m, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		ProductID:      req.ProductID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ReferenceType:  dto.ReferenceManual,
		UserID:         u.UserID,
	})
	if err != nil {
		h.logger.Error("failed to adjust stock", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return &MovementResponse{Movement: m}, nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *dto.MovementFilters) (*ListMovementsResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	items, total, err := h.uc.ListMovements(ctx, req)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &ListMovementsResponse{Movements: items, Total: total}, nil
}
