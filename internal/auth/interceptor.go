package auth

import (
	"context"
	"strings"

	"github.com/fekuna/tagro-storefront-service/internal/apperror"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryInterceptor puts the caller from a bearer token into the context.
// Requests without a token pass through anonymously; handlers decide whether
// a user is required. A malformed or expired token is rejected outright.
func UnaryInterceptor(tokens *TokenManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		raw := bearerToken(ctx)
		if raw == "" {
			return handler(ctx, req)
		}
		u, err := tokens.Parse(raw)
		if err != nil {
			return nil, apperror.ToStatus(err)
		}
		return handler(WithUser(ctx, u), req)
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	const prefix = "bearer "
	if len(vals[0]) > len(prefix) && strings.EqualFold(vals[0][:len(prefix)], prefix) {
		return strings.TrimSpace(vals[0][len(prefix):])
	}
	return ""
}
