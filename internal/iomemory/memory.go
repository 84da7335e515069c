// Package iomemory implements the Record Store over an in-memory slice
// of occurrences. Its results define the reference semantics of
// pipelines for all other stores.
package iomemory

import (
	"context"
	"slices"
	"sort"
	"strconv"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnmarine/pkg/store"
)

type memstore struct {
	recs []occurrence.Occurrence
}

// New creates a store from records. Records are copied, their order is
// the insertion order. Records without ID get their position as ID.
func New(recs []occurrence.Occurrence) store.Store {
	res := &memstore{recs: make([]occurrence.Occurrence, len(recs))}
	copy(res.recs, recs)
	for i := range res.recs {
		if res.recs[i].ID == "" {
			res.recs[i].ID = strconv.Itoa(i + 1)
		}
	}
	return res
}

func (m *memstore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *memstore) Close() error {
	return nil
}

func (m *memstore) Count(
	ctx context.Context,
	filter pipeline.Filter,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var res int
	for i := range m.recs {
		if Matches(filter, &m.recs[i]) {
			res++
		}
	}
	return res, nil
}

func (m *memstore) CountDistinct(
	ctx context.Context,
	field occurrence.Field,
	filter pipeline.Filter,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	seen := make(map[string]struct{})
	for i := range m.recs {
		o := &m.recs[i]
		val := field.Value(o)
		if !present(val) || !Matches(filter, o) {
			continue
		}
		seen[val] = struct{}{}
	}
	return len(seen), nil
}

func (m *memstore) Find(
	ctx context.Context,
	p pipeline.Pipeline,
) ([]occurrence.Occurrence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Grouped() {
		return nil, store.GroupedFindError()
	}

	var res []occurrence.Occurrence
	for i := range m.recs {
		if Matches(p.Filter, &m.recs[i]) {
			res = append(res, m.recs[i])
		}
	}

	if len(p.Sort) > 0 {
		sort.SliceStable(res, func(i, j int) bool {
			for _, k := range p.Sort {
				a, b := k.Field.Value(&res[i]), k.Field.Value(&res[j])
				if a == b {
					continue
				}
				if k.Desc {
					return a > b
				}
				return a < b
			}
			return false
		})
	}

	return window(res, p.Skip, p.Limit), nil
}

func (m *memstore) Aggregate(
	ctx context.Context,
	p pipeline.Pipeline,
) ([]pipeline.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.Grouped() {
		return nil, store.UngroupedAggregateError()
	}

	g := p.Group
	groups := make(map[string]*group)
	var order []*group
	for i := range m.recs {
		o := &m.recs[i]
		if !Matches(p.Filter, o) {
			continue
		}
		var key string
		if !g.Whole {
			key = g.Key.Value(o)
		}
		grp, ok := groups[key]
		if !ok {
			grp = newGroup(key, g.Accumulators)
			groups[key] = grp
			order = append(order, grp)
		}
		grp.add(o)
	}

	res := make([]pipeline.Row, len(order))
	for i := range order {
		res[i] = order[i].row()
	}

	if len(p.Sort) > 0 {
		sort.SliceStable(res, func(i, j int) bool {
			for _, k := range p.Sort {
				a, b := number(res[i], k.Acc), number(res[j], k.Acc)
				if a == b {
					continue
				}
				if k.Desc {
					return a > b
				}
				return a < b
			}
			return false
		})
	}

	return window(res, p.Skip, p.Limit), nil
}

func window[T any](s []T, skip, limit int) []T {
	if skip >= len(s) {
		return []T{}
	}
	s = s[skip:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return slices.Clip(s)
}

// number returns a sortable accumulator value. Sortable accumulators
// are never null.
func number(r pipeline.Row, name string) float64 {
	if v := r.Float(name); v != nil {
		return *v
	}
	return 0
}
