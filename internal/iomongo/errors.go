package iomongo

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

func ConnectionError(uri string, err error) error {
	msg := `Cannot connect to MongoDB at <em>%s</em>.

<em>How to fix:</em>
  1. Check if MongoDB is running:
     <em>mongosh %s --eval 'db.runCommand({ping: 1})'</em>
  2. Review <em>database.uri</em> in <em>~/.config/gnmarine/config.yaml</em>`
	vars := []any{uri, uri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: failed to connect to %s: %w", fn.Name(), uri, err),
	}
}

func QueryError(collection string, err error) error {
	msg := "Cannot query collection <em>%s</em>"
	vars := []any{collection}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: query of %s failed: %w",
			fn.Name(), collection, err),
	}
}

func DecodeError(collection string, err error) error {
	msg := "Cannot decode documents of collection <em>%s</em>"
	vars := []any{collection}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: decoding of %s failed: %w",
			fn.Name(), collection, err),
	}
}
