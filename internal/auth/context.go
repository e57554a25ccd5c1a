package auth

import (
	"context"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"github.com/fekuna/tagro-storefront-service/internal/model"
)

type ctxKey struct{}

type UserContext struct {
	UserID string
	Name   string
	Role   model.Role
}

func (u UserContext) IsAdmin() bool { return u.Role == model.RoleAdmin }

func WithUser(ctx context.Context, u UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the caller populated by the interceptor, if any.
func FromContext(ctx context.Context) (UserContext, bool) {
	u, ok := ctx.Value(ctxKey{}).(UserContext)
	return u, ok && u.UserID != ""
}

func RequireUser(ctx context.Context) (UserContext, error) {
	u, ok := FromContext(ctx)
	if !ok {
		return UserContext{}, apperror.Auth("login required")
	}
	return u, nil
}

func RequireAdmin(ctx context.Context) (UserContext, error) {
	u, err := RequireUser(ctx)
	if err != nil {
		return u, err
	}
	if !u.IsAdmin() {
		return u, apperror.Forbidden("admin access required")
	}
	return u, nil
}
