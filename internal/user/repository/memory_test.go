package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOTPStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryOTPStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "register", "017", "111111", 5*time.Minute))

	ok, err := s.Verify(ctx, "reset_password", "017", "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify(ctx, "register", "017", "222222")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Verify(ctx, "register", "017", "111111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(ctx, "register", "017", "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "register", "018", "333333", 5*time.Minute))
	now = now.Add(6 * time.Minute)
	ok, err = s.Verify(ctx, "register", "018", "333333")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	require.NoError(t, r.Create(ctx, &model.User{BaseModel: model.BaseModel{ID: "u1"}, Email: "a@example.com", Phone: "017"}))
	require.NoError(t, r.Create(ctx, &model.User{BaseModel: model.BaseModel{ID: "u2"}, Email: "b@example.com", Phone: "018"}))

	err := r.Create(ctx, &model.User{BaseModel: model.BaseModel{ID: "u3"}, Email: "a@example.com", Phone: "019"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	err = r.Update(ctx, &model.User{BaseModel: model.BaseModel{ID: "u2"}, Email: "b@example.com", Phone: "017"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	err = r.Update(ctx, &model.User{BaseModel: model.BaseModel{ID: "missing"}})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestMemoryRepository_ReplaceLists(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	require.NoError(t, r.Create(ctx, &model.User{BaseModel: model.BaseModel{ID: "u1"}, Name: "Rahim", Email: "a@example.com", Phone: "017"}))

	orders := []model.Order{{ID: "ORD-1", Status: model.OrderStatusPending}}
	require.NoError(t, r.ReplaceOrders(ctx, "u1", orders))
	orders[0].Status = model.OrderStatusCancelled

	owner, err := r.FindByOrderID(ctx, "ORD-1")
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, model.OrderStatusPending, owner.Orders[0].Status)

	require.NoError(t, r.ReplaceAddresses(ctx, "u1", []model.Address{{ID: "a1"}}))

	// scalar updates leave the lists alone
	owner.Name = "Rahim Uddin"
	owner.Addresses = nil
	owner.Orders = nil
	require.NoError(t, r.Update(ctx, owner))

	got, err := r.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", got.Name)
	assert.Len(t, got.Addresses, 1)
	assert.Len(t, got.Orders, 1)

	assert.True(t, apperror.Is(r.ReplaceOrders(ctx, "nobody", nil), apperror.KindNotFound))
}
