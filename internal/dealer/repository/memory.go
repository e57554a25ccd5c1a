package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fekuna/tagro-storefront-service/internal/dealer/dto"
	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	dealers map[string]model.Dealer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{dealers: make(map[string]model.Dealer)}
}

func (r *MemoryRepository) Create(_ context.Context, d *model.Dealer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dealers[d.ID] = *d
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.Dealer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dealers[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *MemoryRepository) FindAll(_ context.Context, f *dto.DealerFilters) ([]model.Dealer, int, error) {
	zone := strings.ToLower(strings.TrimSpace(f.Zone))

	r.mu.RLock()
	var out []model.Dealer
	for _, d := range r.dealers {
		if zone != "" &&
			!strings.Contains(strings.ToLower(d.Zone.EN), zone) &&
			!strings.Contains(strings.ToLower(d.Zone.BN), zone) {
			continue
		}
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name.EN < out[j].Name.EN })

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

func (r *MemoryRepository) Update(_ context.Context, d *model.Dealer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dealers[d.ID]; ok {
		r.dealers[d.ID] = *d
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dealers, id)
	return nil
}
