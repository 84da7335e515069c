package pipeline

import (
	"fmt"

	"github.com/gnames/gnmarine/pkg/occurrence"
)

// Filter selects occurrence records. Concrete filters are Contains,
// Equals, Present, Numeric, And and Or.
type Filter interface {
	isFilter()
}

// Contains matches records whose field contains Value as a literal,
// case-insensitive substring.
type Contains struct {
	Field occurrence.Field
	Value string
}

// Equals matches records whose field is exactly Value.
type Equals struct {
	Field occurrence.Field
	Value string
}

// Present matches records whose field is not empty.
type Present struct {
	Field occurrence.Field
}

// Numeric matches records whose field parses as a valid number.
type Numeric struct {
	Field occurrence.Field
}

// And matches records matching every filter. Empty And matches all.
type And []Filter

// Or matches records matching at least one filter. Empty Or matches none.
type Or []Filter

func (Contains) isFilter() {}
func (Equals) isFilter()   {}
func (Present) isFilter()  {}
func (Numeric) isFilter()  {}
func (And) isFilter()      {}
func (Or) isFilter()       {}

// AllOf combines filters with And, skipping nil entries. It returns nil
// when nothing is left.
func AllOf(fs ...Filter) Filter {
	var res And
	for _, f := range fs {
		if f != nil {
			res = append(res, f)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

func validateFilter(f Filter) error {
	switch v := f.(type) {
	case nil:
		return nil
	case Contains:
		if !v.Field.Valid() {
			return fmt.Errorf("contains: unknown field %d", v.Field)
		}
		if v.Value == "" {
			return fmt.Errorf("contains: empty substring for %s", v.Field)
		}
	case Equals:
		if !v.Field.Valid() {
			return fmt.Errorf("equals: unknown field %d", v.Field)
		}
	case Present:
		if !v.Field.Valid() {
			return fmt.Errorf("present: unknown field %d", v.Field)
		}
	case Numeric:
		if !v.Field.Valid() {
			return fmt.Errorf("numeric: unknown field %d", v.Field)
		}
	case And:
		for i, vv := range v {
			if vv == nil {
				return fmt.Errorf("and: nil filter at %d", i)
			}
			if err := validateFilter(vv); err != nil {
				return err
			}
		}
	case Or:
		for i, vv := range v {
			if vv == nil {
				return fmt.Errorf("or: nil filter at %d", i)
			}
			if err := validateFilter(vv); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported filter %T", f)
	}
	return nil
}
