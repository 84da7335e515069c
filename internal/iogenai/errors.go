package iogenai

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

func MissingKeyError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssistantUnavailableError,
		Msg:  "Assistant API key is empty, set <em>GNMARINE_ASSISTANT_API_KEY</em>",
		Err:  fmt.Errorf("from %s: empty api key", fn.Name()),
	}
}

func ClientError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AssistantUnavailableError,
		Msg:  "Cannot create a client of the assistant model",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
