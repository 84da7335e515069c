package pipeline

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

// InvalidError reports a pipeline that cannot be executed.
func InvalidError(stage int, err error) error {
	msg := "Invalid query pipeline at stage <em>%d</em>"
	vars := []any{stage}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineInvalidError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid pipeline at stage %d: %w",
			fn.Name(), stage, err),
	}
}
