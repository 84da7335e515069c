package store

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

// GroupedFindError is returned when a grouped pipeline is given to Find.
func GroupedFindError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineInvalidError,
		Msg:  "Grouped pipeline cannot return records",
		Err: fmt.Errorf("from %s: %w",
			fn.Name(), errors.New("find with grouped pipeline")),
	}
}

// UngroupedAggregateError is returned when a pipeline without GroupBy
// is given to Aggregate.
func UngroupedAggregateError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineInvalidError,
		Msg:  "Pipeline without grouping cannot return rows",
		Err: fmt.Errorf("from %s: %w",
			fn.Name(), errors.New("aggregate with ungrouped pipeline")),
	}
}
