package assistant

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

func InvalidInputError(field string) error {
	msg := "Assistant input <em>%s</em> is empty"
	vars := []any{field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty %s", fn.Name(), field),
	}
}

func NotConfiguredError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssistantUnavailableError,
		Msg:  "Assistant is not configured, set <em>assistant.api_key</em>",
		Err:  fmt.Errorf("from %s: no generator", fn.Name()),
	}
}

func UnavailableError(op string, err error) error {
	msg := "Assistant is unavailable for <em>%s</em>"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssistantUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s failed: %w", fn.Name(), op, err),
	}
}

func EmptyReplyError(op string) error {
	msg := "Assistant gave no answer for <em>%s</em>"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssistantUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty reply of %s", fn.Name(), op),
	}
}

func ReplyError(op string, err error) error {
	msg := "Assistant gave an unreadable answer for <em>%s</em>"
	vars := []any{op}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssistantUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode reply of %s: %w", fn.Name(), op, err),
	}
}

// Code returns the error code of an assistant error, UnknownError for
// other errors.
func Code(err error) gn.ErrorCode {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code
	}
	return errcode.UnknownError
}
