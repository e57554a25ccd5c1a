package repository

import (
	"context"
	"sync"

	"github.com/fekuna/tagro-storefront-service/internal/cart/dto"
)

type MemoryRepository struct {
	mu    sync.Mutex
	carts map[string][]dto.Line
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string][]dto.Line)}
}

func (r *MemoryRepository) Lines(_ context.Context, userID string) ([]dto.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.Line(nil), r.carts[userID]...), nil
}

func (r *MemoryRepository) Add(_ context.Context, userID, productID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += qty
			return nil
		}
	}
	r.carts[userID] = append(lines, dto.Line{ProductID: productID, Quantity: qty})
	return nil
}

func (r *MemoryRepository) SetQuantity(_ context.Context, userID, productID string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
		}
	}
	return nil
}

func (r *MemoryRepository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			r.carts[userID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
