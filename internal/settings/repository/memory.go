package repository

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepository keeps documents as JSON so callers never share memory
// with the store.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string][]byte)}
}

func (r *MemoryRepository) Load(_ context.Context, key string, dst interface{}) (bool, error) {
	r.mu.RLock()
	data, ok := r.docs[key]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (r *MemoryRepository) Save(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.docs[key] = data
	r.mu.Unlock()
	return nil
}
