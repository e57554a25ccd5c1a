package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/cart"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.CartService"

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CartHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("GetCart", h.GetCart),
		grpcx.Unary("AddToCart", h.AddToCart),
		grpcx.Unary("RemoveFromCart", h.RemoveFromCart),
		grpcx.Unary("UpdateQuantity", h.UpdateQuantity),
		grpcx.Unary("ClearCart", h.ClearCart),
		grpcx.Unary("IsInCart", h.IsInCart),
	), h)
}

type CartItem struct {
	Product  *model.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItem `json:"items"`
	ItemCount  int        `json:"itemCount"`
	TotalPrice string     `json:"totalPrice"`
}

type LineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type IsInCartResponse struct {
	InCart bool `json:"inCart"`
}

func (h *CartHandler) GetCart(ctx context.Context, _ *emptypb.Empty) (*CartResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.GetCart(ctx, u.UserID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return mapCart(c), nil
}

func (h *CartHandler) AddToCart(ctx context.Context, req *LineRequest) (*CartResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	c, err := h.uc.AddToCart(ctx, u.UserID, req.ProductID, qty)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return mapCart(c), nil
}

func (h *CartHandler) RemoveFromCart(ctx context.Context, req *LineRequest) (*CartResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.RemoveFromCart(ctx, u.UserID, req.ProductID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return mapCart(c), nil
}

func (h *CartHandler) UpdateQuantity(ctx context.Context, req *LineRequest) (*CartResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.UpdateQuantity(ctx, u.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return mapCart(c), nil
}

func (h *CartHandler) ClearCart(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	if err := h.uc.ClearCart(ctx, u.UserID); err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *CartHandler) IsInCart(ctx context.Context, req *LineRequest) (*IsInCartResponse, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	ok, err := h.uc.IsInCart(ctx, u.UserID, req.ProductID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &IsInCartResponse{InCart: ok}, nil
}

func mapCart(c *model.Cart) *CartResponse {
	items := make([]CartItem, len(c.Items))
	for i := range c.Items {
		items[i] = CartItem{Product: &c.Items[i].Product, Quantity: c.Items[i].Quantity}
	}
	return &CartResponse{
		Items:      items,
		ItemCount:  c.ItemCount(),
		TotalPrice: c.TotalPrice().StringFixed(2),
	}
}
