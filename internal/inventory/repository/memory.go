package repository

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/fekuna/tagro-storefront-service/internal/inventory"
	"github.com/fekuna/tagro-storefront-service/internal/inventory/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	productrepo "github.com/fekuna/tagro-storefront-service/internal/product/repository"
)

// MemoryRepository keeps stock levels on the in-memory catalog and the
// movement log in a slice.
type MemoryRepository struct {
	products *productrepo.MemoryRepository

	mu        sync.RWMutex
	movements []model.StockMovement
}

func NewMemoryRepository(products *productrepo.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{products: products}
}

func (r *MemoryRepository) GetStock(ctx context.Context, productID string) (*int, error) {
	p, err := r.products.FindByID(ctx, productID)
	if err != nil || p == nil {
		return nil, err
	}
	stock := p.Stock
	return &stock, nil
}

func (r *MemoryRepository) AdjustStockWithMovement(_ context.Context, m *model.StockMovement) error {
	err := r.products.SetStock(m.ProductID, func(current int) (int, error) {
		if current != m.QuantityBefore {
			return current, inventory.ErrStockChanged
		}
		return m.QuantityAfter, nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return inventory.ErrStockChanged
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.movements = append(r.movements, *m)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	r.mu.RLock()
	var out []model.StockMovement
	for _, m := range r.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.ReferenceType != "" && (m.ReferenceType == nil || *m.ReferenceType != f.ReferenceType) {
			continue
		}
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

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
