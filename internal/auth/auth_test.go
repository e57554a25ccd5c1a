package auth

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, exp, err := m.Issue(&model.User{BaseModel: model.BaseModel{ID: "u1"}, Name: "Rahim", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	u, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, UserContext{UserID: "u1", Name: "Rahim", Role: model.RoleAdmin}, u)
	assert.True(t, u.IsAdmin())

	_, err = NewTokenManager("other", time.Hour).Parse(token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }
	token, _, err := m.Issue(&model.User{BaseModel: model.BaseModel{ID: "u1"}})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestRequireAdmin(t *testing.T) {
	_, err := RequireUser(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	ctx := WithUser(context.Background(), UserContext{UserID: "u1", Role: model.RoleCustomer})
	_, err = RequireAdmin(ctx)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	ctx = WithUser(context.Background(), UserContext{UserID: "a1", Role: model.RoleAdmin})
	u, err := RequireAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", u.UserID)
}

func TestUnaryInterceptor(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _, err := m.Issue(&model.User{BaseModel: model.BaseModel{ID: "u1"}, Role: model.RoleCustomer})
	require.NoError(t, err)

	interceptor := UnaryInterceptor(m)
	info := &grpc.UnaryServerInfo{FullMethod: "/storefront.v1.CartService/GetCart"}
	var seen UserContext
	var present bool
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen, present = FromContext(ctx)
		return "ok", nil
	}

	_, err = interceptor(context.Background(), nil, info, handler)
	require.NoError(t, err)
	assert.False(t, present)

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	_, err = interceptor(ctx, nil, info, handler)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "u1", seen.UserID)

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer garbage"))
	_, err = interceptor(ctx, nil, info, handler)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
