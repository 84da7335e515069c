package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

// CreateDirError is returned when a config, cache or log directory
// cannot be made.
func CreateDirError(dir string, err error) error {
	return fsError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", dir, "create directory", err)
}

// CopyFileError is returned when the default config.yaml cannot be
// written.
func CopyFileError(path string, err error) error {
	return fsError(errcode.CopyFileError,
		"Cannot write default config to <em>%s</em>", path, "write config", err)
}

// ReadFileError is returned when config.yaml cannot be read or decoded.
func ReadFileError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", path, "read", err)
}

// SnapshotError is returned when the SQLite snapshot is missing or is
// not a regular file.
func SnapshotError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot open SQLite snapshot <em>%s</em>", path, "open snapshot", err)
}

func fsError(code gn.ErrorCode, msg, path, op string, err error) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot %s %s: %w", fn.Name(), op, path, err),
	}
}
