package apperror

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindPrecondition
	KindNotFound
	KindAuth
	KindForbidden
	KindExternal
)

// Error is a classified failure. Code is an optional machine-readable hint for
// clients, e.g. "address_required".
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Precondition is a validation failure caused by the current state of an
// entity rather than by the request itself.
func Precondition(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func External(service string, err error) *Error {
	return &Error{Kind: KindExternal, Message: service + " request failed", Err: err}
}

func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// ToStatus converts err into a gRPC status error. Unclassified errors become
// codes.Internal without leaking their text.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return status.Error(codes.Internal, "internal error")
	}

	msg := appErr.Message
	if appErr.Code != "" {
		msg = appErr.Code + ": " + msg
	}

	switch appErr.Kind {
	case KindValidation:
		return status.Error(codes.InvalidArgument, msg)
	case KindPrecondition:
		return status.Error(codes.FailedPrecondition, msg)
	case KindNotFound:
		return status.Error(codes.NotFound, msg)
	case KindAuth:
		return status.Error(codes.Unauthenticated, msg)
	case KindForbidden:
		return status.Error(codes.PermissionDenied, msg)
	case KindExternal:
		return status.Error(codes.Unavailable, appErr.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
