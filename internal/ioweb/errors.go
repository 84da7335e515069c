package ioweb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

func ListenError(addr string, err error) error {
	msg := "Cannot start HTTP server at <em>%s</em>"
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerListenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: listen on %s: %w", fn.Name(), addr, err),
	}
}

func ShutdownError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerListenError,
		Msg:  "HTTP server did not shut down cleanly",
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
