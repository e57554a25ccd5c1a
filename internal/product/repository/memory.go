package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/fekuna/tagro-storefront-service/internal/product/dto"
)

// MemoryRepository is the in-process catalog used with STORAGE_DRIVER=memory
// and by tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]model.Product)}
}

func clone(p model.Product) model.Product {
	p.WeightOptions = append([]float64(nil), p.WeightOptions...)
	p.Ratings = append([]model.Rating(nil), p.Ratings...)
	return p
}

func (r *MemoryRepository) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = clone(*p)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	out := clone(p)
	return &out, nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	r.mu.RLock()
	var out []model.Product
	q := strings.ToLower(strings.TrimSpace(f.SearchQuery))
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, clone(p))
	}
	r.mu.RUnlock()

	asc := strings.ToLower(f.SortOrder) == "asc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch f.SortBy {
		case "name":
			if asc {
				return a.Name.EN < b.Name.EN
			}
			return a.Name.EN > b.Name.EN
		case "price":
			if asc {
				return a.Price.LessThan(b.Price)
			}
			return a.Price.GreaterThan(b.Price)
		case "":
			return a.CreatedAt.After(b.CreatedAt)
		}
		if asc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := len(out)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * f.PageSize
		if start > total {
			start = total
		}
		end := start + f.PageSize
		if end > total {
			end = total
		}
		out = out[start:end]
	}
	return out, total, nil
}

func matches(p model.Product, q string) bool {
	for _, s := range []string{p.Name.EN, p.Name.BN, p.Description.EN, p.Description.BN} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[p.ID]
	if !ok {
		return nil
	}
	updated := clone(*p)
	// ratings only change through AppendRating
	updated.Ratings = existing.Ratings
	r.products[p.ID] = updated
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *MemoryRepository) AppendRating(_ context.Context, productID string, rating model.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return sql.ErrNoRows
	}
	p.Ratings = append(append([]model.Rating(nil), p.Ratings...), rating)
	r.products[productID] = p
	return nil
}

// SetStock overwrites the stock level directly. The inventory ledger's
// in-memory store uses it to share the catalog's product map.
func (r *MemoryRepository) SetStock(productID string, fn func(current int) (int, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return sql.ErrNoRows
	}
	next, err := fn(p.Stock)
	if err != nil {
		return err
	}
	p.Stock = next
	r.products[productID] = p
	return nil
}
