package middleware

import (
	"context"
	"testing"

	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/storefront.v1.ProductService/ListProducts"}

func TestLanguageInterceptor(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"bn-BD", "bn"},
		{" EN-us ", "en"},
		{"fr", "bn"},
		{"", "bn"},
	}
	interceptor := LanguageInterceptor("bn")
	for _, tt := range tests {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("accept-language", tt.header))
		var got string
		_, err := interceptor(ctx, nil, info, func(ctx context.Context, _ interface{}) (interface{}, error) {
			got = Language(ctx)
			return nil, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.header)
	}

	assert.Equal(t, "en", Language(context.Background()))
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(logger.NewNop())
	_, err := interceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("nil map")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}
