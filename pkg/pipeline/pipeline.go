// Package pipeline provides strongly typed aggregation pipelines over
// occurrence records. A pipeline is a validated sequence of Match,
// GroupBy, Sort, Skip and Limit stages. Store adapters translate it
// into their own query language.
//
// All stores share these rules:
//   - numeric accumulators ignore absent and invalid values;
//   - sets drop empty values and are sorted ascending;
//   - ties in sorting keep the order of first appearance of records;
//   - a whole-collection group over zero records yields no row.
package pipeline

import (
	"fmt"

	"github.com/gnames/gnmarine/pkg/occurrence"
)

// Pipeline is a validated query. Use New to create it.
type Pipeline struct {
	// Filter combines all Match stages, nil matches everything.
	Filter Filter

	// Group is nil for pipelines that return records.
	Group *GroupBy

	Sort []SortKey

	Skip int

	// Limit is 0 when results are not limited.
	Limit int
}

// Grouped is true when the pipeline produces rows instead of records.
func (p Pipeline) Grouped() bool {
	return p.Group != nil
}

// Accumulator returns the accumulator with the given name.
func (p Pipeline) Accumulator(name string) (Accumulator, bool) {
	if p.Group == nil {
		return Accumulator{}, false
	}
	for _, v := range p.Group.Accumulators {
		if v.Name == name {
			return v, true
		}
	}
	return Accumulator{}, false
}

// New validates stages and builds a Pipeline. Stages must follow the
// order Match* GroupBy? Sort? Skip? Limit?.
func New(stages ...Stage) (Pipeline, error) {
	var res Pipeline
	var filters []Filter
	pos := 0

	for i, s := range stages {
		var rank int
		switch v := s.(type) {
		case Match:
			rank = 0
			if err := validateFilter(v.Filter); err != nil {
				return res, InvalidError(i, err)
			}
			filters = append(filters, v.Filter)
		case GroupBy:
			rank = 1
			if err := validateGroup(v); err != nil {
				return res, InvalidError(i, err)
			}
			g := v
			g.Accumulators = append([]Accumulator(nil), v.Accumulators...)
			res.Group = &g
		case Sort:
			rank = 2
			if len(v.Keys) == 0 {
				return res, InvalidError(i, fmt.Errorf("sort without keys"))
			}
			res.Sort = append([]SortKey(nil), v.Keys...)
		case Skip:
			rank = 3
			if v.N < 0 {
				return res, InvalidError(i, fmt.Errorf("negative skip %d", v.N))
			}
			res.Skip = v.N
		case Limit:
			rank = 4
			if v.N <= 0 {
				return res, InvalidError(i, fmt.Errorf("limit must be positive, got %d", v.N))
			}
			res.Limit = v.N
		default:
			return res, InvalidError(i, fmt.Errorf("unsupported stage %T", s))
		}

		if rank < pos || (rank == pos && rank > 0) {
			return res, InvalidError(i, fmt.Errorf("stage %T is out of order", s))
		}
		pos = rank
	}

	res.Filter = AllOf(filters...)

	if err := validateSort(res); err != nil {
		return res, InvalidError(len(stages), err)
	}
	return res, nil
}

// Must is like New but panics on invalid stages. It is meant for
// pipelines assembled from constants.
func Must(stages ...Stage) Pipeline {
	res, err := New(stages...)
	if err != nil {
		panic(err)
	}
	return res
}

func validateGroup(g GroupBy) error {
	if !g.Whole && !g.Key.Valid() {
		return fmt.Errorf("group by unknown field %d", g.Key)
	}
	if len(g.Accumulators) == 0 {
		return fmt.Errorf("group without accumulators")
	}
	names := make(map[string]struct{})
	for _, v := range g.Accumulators {
		if v.Name == "" {
			return fmt.Errorf("accumulator without name")
		}
		if _, ok := names[v.Name]; ok {
			return fmt.Errorf("duplicate accumulator %s", v.Name)
		}
		names[v.Name] = struct{}{}
		if v.Op < Count || v.Op > AddToSet {
			return fmt.Errorf("accumulator %s has unknown operation", v.Name)
		}
		if v.Op != Count && !v.Field.Valid() {
			return fmt.Errorf("accumulator %s has unknown field", v.Name)
		}
	}
	return nil
}

func validateSort(p Pipeline) error {
	for _, v := range p.Sort {
		if p.Group == nil {
			if v.Acc != "" {
				return fmt.Errorf("sort by accumulator %s without group", v.Acc)
			}
			if !v.Field.Valid() {
				return fmt.Errorf("sort by unknown field %d", v.Field)
			}
			continue
		}
		acc, ok := p.Accumulator(v.Acc)
		if !ok {
			return fmt.Errorf("sort by unknown accumulator '%s'", v.Acc)
		}
		if acc.Op.Kind() != NumberKind || acc.Op.Nullable() {
			return fmt.Errorf("cannot sort by %s accumulator %s", acc.Op, v.Acc)
		}
	}
	return nil
}

// NonEmpty is a filter for records having all given fields.
func NonEmpty(fs ...occurrence.Field) Filter {
	res := make([]Filter, len(fs))
	for i := range fs {
		res[i] = Present{Field: fs[i]}
	}
	return AllOf(res...)
}
