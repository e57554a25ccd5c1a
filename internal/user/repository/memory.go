package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]model.User)}
}

func cloneUser(u model.User) model.User {
	u.Addresses = append([]model.Address(nil), u.Addresses...)
	orders := make([]model.Order, len(u.Orders))
	for i, o := range u.Orders {
		o.Items = append([]model.OrderItem(nil), o.Items...)
		orders[i] = o
	}
	u.Orders = orders
	return u
}

func (r *MemoryRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return apperror.Validation("user with this email or phone already exists")
		}
	}
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *MemoryRepository) find(match func(model.User) bool) *model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			out := cloneUser(u)
			return &out
		}
	}
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id }), nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email }), nil
}

func (r *MemoryRepository) FindByPhone(_ context.Context, phone string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Phone == phone }), nil
}

func (r *MemoryRepository) FindByOrderID(_ context.Context, orderID string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.FindOrder(orderID) != nil }), nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	r.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *MemoryRepository) modify(id string, fn func(u *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperror.NotFound("user %s not found", id)
	}
	fn(&u)
	r.users[id] = u
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return apperror.NotFound("user %s not found", u.ID)
	}
	for id, existing := range r.users {
		if id != u.ID && (existing.Email == u.Email || existing.Phone == u.Phone) {
			return apperror.Validation("user with this email or phone already exists")
		}
	}
	stored.Name = u.Name
	stored.Email = u.Email
	stored.Phone = u.Phone
	stored.PasswordHash = u.PasswordHash
	stored.Role = u.Role
	stored.ProfilePictureURL = u.ProfilePictureURL
	stored.UpdatedAt = u.UpdatedAt
	r.users[u.ID] = stored
	return nil
}

func (r *MemoryRepository) ReplaceAddresses(_ context.Context, userID string, addresses []model.Address) error {
	return r.modify(userID, func(u *model.User) {
		u.Addresses = append([]model.Address(nil), addresses...)
		u.UpdatedAt = time.Now()
	})
}

func (r *MemoryRepository) ReplaceOrders(_ context.Context, userID string, orders []model.Order) error {
	return r.modify(userID, func(u *model.User) {
		c := cloneUser(model.User{Orders: orders})
		u.Orders = c.Orders
		u.UpdatedAt = time.Now()
	})
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("user %s not found", id)
	}
	delete(r.users, id)
	return nil
}
