package handler

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/auth"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/internal/product/dto"
	"github.com/fekuna/tagro-storefront-service/pkg/grpcx"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "storefront.v1.ProductService"

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(grpcx.ServiceDesc(ServiceName,
		grpcx.Unary("CreateProduct", h.CreateProduct),
		grpcx.Unary("GetProduct", h.GetProduct),
		grpcx.Unary("ListProducts", h.ListProducts),
		grpcx.Unary("SearchProducts", h.SearchProducts),
		grpcx.Unary("UpdateProduct", h.UpdateProduct),
		grpcx.Unary("DeleteProduct", h.DeleteProduct),
		grpcx.Unary("AddRating", h.AddRating),
	), h)
}

type Product struct {
	*model.Product
	AverageRating float64 `json:"averageRating"`
	Stars         int     `json:"stars"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type CreateProductRequest struct {
	Name          model.LocalizedString `json:"name"`
	Category      model.Category        `json:"category"`
	Description   model.LocalizedString `json:"description"`
	Ingredients   model.LocalizedString `json:"ingredients"`
	Storage       model.LocalizedString `json:"storage"`
	Features      model.LocalizedString `json:"featuresAndAdvantages"`
	ImageURL      string                `json:"imageUrl"`
	Price         decimal.Decimal       `json:"price"`
	Stock         int                   `json:"stock"`
	WeightOptions []float64             `json:"weightOptions"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type ListProductsRequest = dto.ProductFilters

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
	Page     int        `json:"page,omitempty"`
	PageSize int        `json:"pageSize,omitempty"`
}

type UpdateProductRequest struct {
	ID            string                `json:"id"`
	Localized     []dto.LocalizedUpdate `json:"localized,omitempty"`
	Category      *model.Category       `json:"category,omitempty"`
	ImageURL      *string               `json:"imageUrl,omitempty"`
	Price         *decimal.Decimal      `json:"price,omitempty"`
	Stock         *int                  `json:"stock,omitempty"`
	WeightOptions *[]float64            `json:"weightOptions,omitempty"`
}

type DeleteProductRequest struct {
	ID string `json:"id"`
}

type AddRatingRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}

	p, err := h.uc.CreateProduct(ctx, &dto.CreateProductInput{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		Ingredients:   req.Ingredients,
		Storage:       req.Storage,
		Features:      req.Features,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		Stock:         req.Stock,
		WeightOptions: req.WeightOptions,
	})
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		return nil, apperror.ToStatus(err)
	}

	return &ProductResponse{Product: mapProduct(p)}, nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *GetProductRequest) (*ProductResponse, error) {
	p, err := h.uc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &ProductResponse{Product: mapProduct(p)}, nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	products, count, err := h.uc.ListProducts(ctx, req)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return nil, apperror.ToStatus(err)
	}
	return mapList(products, count, req), nil
}

func (h *ProductHandler) SearchProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	products, count, err := h.uc.SearchProducts(ctx, req)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return mapList(products, count, req), nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*ProductResponse, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}

	p, err := h.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:            req.ID,
		Localized:     req.Localized,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		Stock:         req.Stock,
		WeightOptions: req.WeightOptions,
	})
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &ProductResponse{Product: mapProduct(p)}, nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*emptypb.Empty, error) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		return nil, apperror.ToStatus(err)
	}
	if err := h.uc.DeleteProduct(ctx, req.ID); err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// AddRating accepts anonymous callers; they are recorded as the guest.
func (h *ProductHandler) AddRating(ctx context.Context, req *AddRatingRequest) (*ProductResponse, error) {
	input := &dto.AddRatingInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if u, ok := auth.FromContext(ctx); ok {
		input.UserID = u.UserID
		input.UserName = u.Name
	}

	p, err := h.uc.AddRating(ctx, input)
	if err != nil {
		return nil, apperror.ToStatus(err)
	}
	return &ProductResponse{Product: mapProduct(p)}, nil
}

func mapProduct(m *model.Product) *Product {
	if m == nil {
		return nil
	}
	return &Product{
		Product:       m,
		AverageRating: m.AverageRating(),
		Stars:         m.Stars(),
	}
}

func mapList(products []model.Product, count int, f *dto.ProductFilters) *ListProductsResponse {
	out := make([]*Product, len(products))
	for i := range products {
		out[i] = mapProduct(&products[i])
	}
	resp := &ListProductsResponse{Products: out, Total: count}
	if f != nil {
		resp.Page = f.Page
		resp.PageSize = f.PageSize
	}
	return resp
}
