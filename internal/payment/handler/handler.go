package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/payment"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.PaymentService"

type PaymentHandler struct {
	uc     payment.UseCase
	logger logger.ZapLogger
}

func NewPaymentHandler(uc payment.UseCase, log logger.ZapLogger) *PaymentHandler {
	return &PaymentHandler{uc: uc, logger: log}
}

func (h *PaymentHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("ListPaymentMethods", h.ListPaymentMethods),
		grpcx.Unary("UpdatePaymentMethods", h.UpdatePaymentMethods),
		grpcx.Unary("ListEnabledPaymentMethods", h.ListEnabledPaymentMethods),
	), h)
}

type PaymentMethodsMessage struct {
	Methods []model.PaymentMethod `json:"methods"`
}

func (h *PaymentHandler) ListPaymentMethods(ctx context.Context, _ *emptypb.Empty) (*PaymentMethodsMessage, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	methods, err := h.uc.ListPaymentMethods(ctx)
	if err != nil {
		h.logger.Error("failed to list payment methods", zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return &PaymentMethodsMessage{Methods: methods}, nil
}

func (h *PaymentHandler) UpdatePaymentMethods(ctx context.Context, req *PaymentMethodsMessage) (*PaymentMethodsMessage, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	methods, err := h.uc.UpdatePaymentMethods(ctx, req.Methods)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &PaymentMethodsMessage{Methods: methods}, nil
}

// ListEnabledPaymentMethods is what the checkout page shows.
func (h *PaymentHandler) ListEnabledPaymentMethods(ctx context.Context, _ *emptypb.Empty) (*PaymentMethodsMessage, error) {
	methods, err := h.uc.ListEnabled(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &PaymentMethodsMessage{Methods: methods}, nil
}
