package iomemory

import (
	"strings"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
)

// Matches evaluates a filter against a record. A nil filter matches
// every record.
func Matches(f pipeline.Filter, o *occurrence.Occurrence) bool {
	switch v := f.(type) {
	case nil:
		return true
	case pipeline.Contains:
		return strings.Contains(
			strings.ToLower(v.Field.Value(o)),
			strings.ToLower(v.Value),
		)
	case pipeline.Equals:
		return v.Field.Value(o) == v.Value
	case pipeline.Present:
		return present(v.Field.Value(o))
	case pipeline.Numeric:
		return occurrence.ParseNumber(v.Field.Value(o)).Ok()
	case pipeline.And:
		for _, vv := range v {
			if !Matches(vv, o) {
				return false
			}
		}
		return true
	case pipeline.Or:
		for _, vv := range v {
			if Matches(vv, o) {
				return true
			}
		}
		return false
	}
	return false
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
