package usecase

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	"github.com/fekuna/tagro-storefront-service/internal/product/dto"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/fekuna/tagro-storefront-service/pkg/search"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	indexName       = "products"
	listCachePrefix = "products:list:"
	listCacheTTL    = 5 * time.Minute
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "properties": { "en": { "type": "text" }, "bn": { "type": "text" } } },
			"description": { "properties": { "en": { "type": "text" }, "bn": { "type": "text" } } },
			"category": { "type": "keyword" },
			"price": { "type": "double" },
			"stock": { "type": "integer" },
			"createdAt": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
	now    func() time.Time
}

// NewProductUseCase wires the catalog. cache and es are optional; without
// them every read goes to the repository.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
		now:    time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	now := uc.now()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Ingredients: input.Ingredients,
		Storage:     input.Storage,
		Features:    input.Features,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Price:       input.Price,
		Stock:       input.Stock,
	}
	if err := p.SetWeightOptions(input.WeightOptions); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create product")
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	if p == nil {
		return nil, apperror.NotFound("product %s not found", id)
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result cachedList
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}

	if cacheKey != "" && uc.cache != nil {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return products, count, nil
}

// SearchProducts is ListProducts with a mandatory query.
func (uc *productUseCase) SearchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	if filters == nil || strings.TrimSpace(filters.SearchQuery) == "" {
		return nil, 0, apperror.Validation("search query is required")
	}
	f := *filters
	f.SearchQuery = strings.TrimSpace(f.SearchQuery)
	return uc.ListProducts(ctx, &f)
}

func (uc *productUseCase) searchElastic(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     f.SearchQuery,
				"fields":    []string{"name.en^3", "name.bn^3", "description.en", "description.bn"},
				"fuzziness": "AUTO",
			},
		},
	}
	if f.Category != "" {
		must = append(must, map[string]interface{}{
			"term": map[string]interface{}{"category": string(f.Category)},
		})
	}
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * f.PageSize
		q["size"] = f.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}
	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, listCachePrefix+"*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, indexName, indexMapping)
	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) RefreshProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "find product")
	}
	uc.invalidateListCache(ctx)
	if p != nil {
		uc.syncToElastic(ctx, p)
	}
	return nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	for _, u := range input.Localized {
		if err := p.SetLocalized(u.Field, model.ParseLanguage(string(u.Lang)), u.Value); err != nil {
			return nil, err
		}
	}
	if input.Category != nil {
		if err := p.SetCategory(*input.Category); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Price != nil {
		if err := p.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.Stock != nil {
		if err := p.SetStock(*input.Stock); err != nil {
			return nil, err
		}
	}
	if input.WeightOptions != nil {
		if err := p.SetWeightOptions(*input.WeightOptions); err != nil {
			return nil, err
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, errors.Wrap(err, "update product")
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "find product")
	}
	if p == nil {
		return nil // already deleted
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete product")
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), indexName, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) AddRating(ctx context.Context, input *dto.AddRatingInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	r := model.Rating{
		UserID:   input.UserID,
		UserName: input.UserName,
		Rating:   input.Rating,
		Comment:  strings.TrimSpace(input.Comment),
		Date:     uc.now(),
	}
	// AddRating validates and applies the guest placeholder.
	if err := p.AddRating(r); err != nil {
		return nil, err
	}
	r = p.Ratings[len(p.Ratings)-1]

	if err := uc.repo.AppendRating(ctx, p.ID, r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("product %s not found", p.ID)
		}
		return nil, errors.Wrap(err, "append rating")
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}
