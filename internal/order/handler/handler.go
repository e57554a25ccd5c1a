package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/order"
	"github.com/fekuna/tagro-storefront-service/internal/order/dto"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/fekuna/tagro-storefront-service/pkg/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.OrderService"

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("Checkout", h.Checkout),
		grpcx.Unary("UpdateOrderStatus", h.UpdateOrderStatus),
		grpcx.Unary("ListAllOrders", h.ListAllOrders),
		grpcx.Unary("ListMyOrders", h.ListMyOrders),
		grpcx.Unary("GetOrder", h.GetOrder),
	), h)
}

type CheckoutRequest struct {
	AddressID   string             `json:"addressId,omitempty"`
	PaymentType model.PaymentType  `json:"paymentType"`
	Proof       model.PaymentProof `json:"proof"`
}

type UpdateOrderStatusRequest struct {
	OrderID string            `json:"orderId"`
	Action  model.OrderAction `json:"action"`
}

// Order adds the actions the caller may take next.
type Order struct {
	*model.Order
	AvailableActions []model.OrderAction `json:"availableActions"`
}

type OrderResponse struct {
	Order   *Order `json:"order"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type OrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type GetOrderRequest struct {
	ID string `json:"id"`
}

func requestLang(ctx context.Context) model.Language {
	return model.ParseLanguage(middleware.Language(ctx))
}

func mapOrder(o *model.Order, role model.Role) *Order {
	if o == nil {
		return nil
	}
	actions := model.AvailableActions(o.Status, role)
	if actions == nil {
		actions = []model.OrderAction{}
	}
	return &Order{Order: o, AvailableActions: actions}
}

func mapOrders(orders []model.Order, role model.Role) *OrdersResponse {
	out := make([]*Order, len(orders))
	for i := range orders {
		out[i] = mapOrder(&orders[i], role)
	}
	return &OrdersResponse{Orders: out}
}

// Checkout accepts anonymous callers so an empty cart is reported before
// the missing login.
func (h *OrderHandler) Checkout(ctx context.Context, req *CheckoutRequest) (*OrderResponse, error) {
	caller, _ := auth.FromContext(ctx)
	res, err := h.uc.Checkout(ctx, &dto.CheckoutInput{
		UserID:      caller.UserID,
		AddressID:   req.AddressID,
		PaymentType: req.PaymentType,
		Proof:       req.Proof,
		Lang:        requestLang(ctx),
	})
	if err != nil {
		h.logger.Warn("checkout rejected", zap.String("user_id", caller.UserID), zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return &OrderResponse{Order: mapOrder(res.Order, caller.Role), Message: res.Message}, nil
}

func (h *OrderHandler) UpdateOrderStatus(ctx context.Context, req *UpdateOrderStatusRequest) (*OrderResponse, error) {
	caller, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	res, err := h.uc.Transition(ctx, &dto.TransitionInput{
		OrderID:   req.OrderID,
		Action:    req.Action,
		ActorID:   caller.UserID,
		ActorRole: caller.Role,
		Lang:      requestLang(ctx),
	})
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &OrderResponse{
		Order:   mapOrder(res.Order, caller.Role),
		Message: res.Message,
		Warning: res.Warning,
	}, nil
}

func (h *OrderHandler) ListAllOrders(ctx context.Context, _ *emptypb.Empty) (*OrdersResponse, error) {
	admin, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	orders, err := h.uc.ListAllOrders(ctx)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return mapOrders(orders, admin.Role), nil
}

func (h *OrderHandler) ListMyOrders(ctx context.Context, _ *emptypb.Empty) (*OrdersResponse, error) {
	caller, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	orders, err := h.uc.ListMyOrders(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return mapOrders(orders, caller.Role), nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *GetOrderRequest) (*OrderResponse, error) {
	caller, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	o, err := h.uc.GetOrder(ctx, req.ID, caller.UserID, caller.Role)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &OrderResponse{Order: mapOrder(o, caller.Role)}, nil
}
