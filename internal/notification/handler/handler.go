package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/notification"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.NotificationService"

type NotificationHandler struct {
	templates notification.TemplateUseCase
	logger    logger.ZapLogger
}

func NewNotificationHandler(templates notification.TemplateUseCase, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{
		templates: templates,
		logger:    log,
	}
}

func (h *NotificationHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("GetSmsTemplates", h.GetSmsTemplates),
		grpcx.Unary("UpdateSmsTemplates", h.UpdateSmsTemplates),
	), h)
}

type SmsTemplatesResponse struct {
	Templates model.SmsTemplates `json:"templates"`
}

func (h *NotificationHandler) GetSmsTemplates(ctx context.Context, _ *emptypb.Empty) (*SmsTemplatesResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	t, err := h.templates.GetTemplates(ctx)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &SmsTemplatesResponse{Templates: t}, nil
}

func (h *NotificationHandler) UpdateSmsTemplates(ctx context.Context, req *model.SmsTemplates) (*SmsTemplatesResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	t, err := h.templates.UpdateTemplates(ctx, *req)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &SmsTemplatesResponse{Templates: t}, nil
}
