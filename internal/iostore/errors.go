package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
)

// UnknownDriverError creates an error for an unsupported store driver.
func UnknownDriverError(driver string) error {
	msg := `Unknown database driver <em>%s</em>

<em>How to fix:</em>
  Set <em>database.driver</em> to postgres, mongo or sqlite`
	vars := []any{driver}
	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown driver %q", driver),
	}
}
