package species

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

// NotFoundError is returned when no record has the scientific name.
func NotFoundError(name string) error {
	msg := "Species <em>%s</em> not found"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SpeciesNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no records of %q", fn.Name(), name),
	}
}

// InvalidInputError is returned when a query cannot be built from input.
func InvalidInputError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  "Invalid query parameters",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

// UnavailableError wraps a failure of the record store, including
// timeouts and cancellations.
func UnavailableError(op string, err error) error {
	msg := "Record store is unavailable for <em>%s</em>"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	reason := "store failure"
	if errors.Is(err, context.DeadlineExceeded) {
		reason = "timeout"
	} else if errors.Is(err, context.Canceled) {
		reason = "cancelled"
	}
	return &gn.Error{
		Code: errcode.ServiceUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s of %s: %w", fn.Name(), reason, op, err),
	}
}

// Code returns the error code of an engine error, UnknownError for
// other errors.
func Code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}
