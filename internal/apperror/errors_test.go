package apperror

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"validation", Validation("bad %s", "input"), codes.InvalidArgument, "bad input"},
		{"with code", Validation("cart is empty").WithCode("cart_empty"), codes.InvalidArgument, "cart_empty: cart is empty"},
		{"precondition", Precondition("stale"), codes.FailedPrecondition, "stale"},
		{"not found", NotFound("order %s not found", "X"), codes.NotFound, "order X not found"},
		{"auth", Auth("login required"), codes.Unauthenticated, "login required"},
		{"forbidden", Forbidden("admin access required"), codes.PermissionDenied, "admin access required"},
		{"external", External("imgbb", errors.New("timeout")), codes.Unavailable, "imgbb request failed: timeout"},
		{"wrapped", errors.Wrap(NotFound("gone"), "load"), codes.NotFound, "gone"},
		{"plain", errors.New("db exploded"), codes.Internal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(ToStatus(tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}
	assert.NoError(t, ToStatus(nil))
}

func TestToStatus_PassesThroughStatus(t *testing.T) {
	in := status.Error(codes.Aborted, "aborted")
	assert.Equal(t, in, ToStatus(in))
}

func TestIs(t *testing.T) {
	err := errors.Wrap(Forbidden("no"), "transition")
	assert.True(t, Is(err, KindForbidden))
	assert.False(t, Is(err, KindAuth))
	assert.False(t, Is(errors.New("x"), KindValidation))
}
