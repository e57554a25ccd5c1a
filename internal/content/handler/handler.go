package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/content"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.ContentService"

type ContentHandler struct {
	uc     content.UseCase
	logger logger.ZapLogger
}

func NewContentHandler(uc content.UseCase, log logger.ZapLogger) *ContentHandler {
	return &ContentHandler{uc: uc, logger: log}
}

// Reads are public; every update requires an admin.
func (h *ContentHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("GetHome", h.GetHome),
		grpcx.Unary("UpdateHome", h.UpdateHome),
		grpcx.Unary("ListFeaturedProducts", h.ListFeaturedProducts),
		grpcx.Unary("GetAbout", h.GetAbout),
		grpcx.Unary("UpdateAbout", h.UpdateAbout),
		grpcx.Unary("GetContact", h.GetContact),
		grpcx.Unary("UpdateContact", h.UpdateContact),
		grpcx.Unary("GetFooter", h.GetFooter),
		grpcx.Unary("UpdateFooter", h.UpdateFooter),
		grpcx.Unary("GetSiteSettings", h.GetSiteSettings),
		grpcx.Unary("UpdateSiteSettings", h.UpdateSiteSettings),
	), h)
}

func (h *ContentHandler) fail(section string, err error) error {
	if !apperror.Is(err, apperror.KindValidation) {
		h.logger.Error("content request failed", zap.String("section", section), zap.Error(err))
	}
	return apperror.ToStatus(err)
}

func (h *ContentHandler) GetHome(ctx context.Context, _ *emptypb.Empty) (*model.HomeContent, error) {
	c, err := h.uc.GetHome(ctx)
	if err != nil {
		return nil, h.fail("home", err)
	}
	return &c, nil
}

func (h *ContentHandler) UpdateHome(ctx context.Context, req *model.HomeContent) (*model.HomeContent, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.UpdateHome(ctx, *req)
	if err != nil {
		return nil, h.fail("home", err)
	}
	return &c, nil
}

type FeaturedProductsResponse struct {
	Products []model.Product `json:"products"`
}

func (h *ContentHandler) ListFeaturedProducts(ctx context.Context, _ *emptypb.Empty) (*FeaturedProductsResponse, error) {
	products, err := h.uc.FeaturedProducts(ctx)
	if err != nil {
		return nil, h.fail("featured", err)
	}
	return &FeaturedProductsResponse{Products: products}, nil
}

func (h *ContentHandler) GetAbout(ctx context.Context, _ *emptypb.Empty) (*model.AboutContent, error) {
	c, err := h.uc.GetAbout(ctx)
	if err != nil {
		return nil, h.fail("about", err)
	}
	return &c, nil
}

func (h *ContentHandler) UpdateAbout(ctx context.Context, req *model.AboutContent) (*model.AboutContent, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.UpdateAbout(ctx, *req)
	if err != nil {
		return nil, h.fail("about", err)
	}
	return &c, nil
}

func (h *ContentHandler) GetContact(ctx context.Context, _ *emptypb.Empty) (*model.ContactInfo, error) {
	c, err := h.uc.GetContact(ctx)
	if err != nil {
		return nil, h.fail("contact", err)
	}
	return &c, nil
}

func (h *ContentHandler) UpdateContact(ctx context.Context, req *model.ContactInfo) (*model.ContactInfo, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.UpdateContact(ctx, *req)
	if err != nil {
		return nil, h.fail("contact", err)
	}
	return &c, nil
}

func (h *ContentHandler) GetFooter(ctx context.Context, _ *emptypb.Empty) (*model.FooterContent, error) {
	c, err := h.uc.GetFooter(ctx)
	if err != nil {
		return nil, h.fail("footer", err)
	}
	return &c, nil
}

func (h *ContentHandler) UpdateFooter(ctx context.Context, req *model.FooterContent) (*model.FooterContent, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.UpdateFooter(ctx, *req)
	if err != nil {
		return nil, h.fail("footer", err)
	}
	return &c, nil
}

func (h *ContentHandler) GetSiteSettings(ctx context.Context, _ *emptypb.Empty) (*model.SiteSettings, error) {
	c, err := h.uc.GetSiteSettings(ctx)
	if err != nil {
		return nil, h.fail("site_settings", err)
	}
	return &c, nil
}

func (h *ContentHandler) UpdateSiteSettings(ctx context.Context, req *model.SiteSettings) (*model.SiteSettings, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	c, err := h.uc.UpdateSiteSettings(ctx, *req)
	if err != nil {
		return nil, h.fail("site_settings", err)
	}
	return &c, nil
}
