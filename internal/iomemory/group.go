package iomemory

import (
	"slices"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
)

type group struct {
	key  string
	accs []pipeline.Accumulator
	vals []accState
}

type accState struct {
	n     int
	sum   float64
	count int64
	num   *float64
	text  string
	set   map[string]struct{}
}

func newGroup(key string, accs []pipeline.Accumulator) *group {
	res := &group{key: key, accs: accs, vals: make([]accState, len(accs))}
	for i := range accs {
		if accs[i].Op == pipeline.AddToSet {
			res.vals[i].set = make(map[string]struct{})
		}
	}
	return res
}

func (g *group) add(o *occurrence.Occurrence) {
	for i, acc := range g.accs {
		st := &g.vals[i]
		val := acc.Field.Value(o)
		switch acc.Op {
		case pipeline.Count:
			st.n++
		case pipeline.Sum, pipeline.Avg:
			if num := occurrence.ParseNumber(val); num.Ok() {
				st.n++
				st.sum += num.Value
			}
		case pipeline.SumCounts:
			if c := occurrence.ParseCount(val); c.State == occurrence.Valid {
				st.count += c.Value
			}
		case pipeline.Min:
			if num := occurrence.ParseNumber(val); num.Ok() {
				if st.num == nil || num.Value < *st.num {
					st.num = &num.Value
				}
			}
		case pipeline.Max:
			if num := occurrence.ParseNumber(val); num.Ok() {
				if st.num == nil || num.Value > *st.num {
					st.num = &num.Value
				}
			}
		case pipeline.MinText:
			if present(val) && (st.text == "" || val < st.text) {
				st.text = val
			}
		case pipeline.MaxText:
			if present(val) && val > st.text {
				st.text = val
			}
		case pipeline.AddToSet:
			if present(val) {
				st.set[val] = struct{}{}
			}
		}
	}
}

func (g *group) row() pipeline.Row {
	res := pipeline.NewRow(g.key)
	for i, acc := range g.accs {
		st := g.vals[i]
		switch acc.Op {
		case pipeline.Count:
			res.Numbers[acc.Name] = float(float64(st.n))
		case pipeline.Sum:
			res.Numbers[acc.Name] = float(st.sum)
		case pipeline.SumCounts:
			res.Numbers[acc.Name] = float(float64(st.count))
		case pipeline.Avg:
			if st.n > 0 {
				res.Numbers[acc.Name] = float(st.sum / float64(st.n))
			} else {
				res.Numbers[acc.Name] = nil
			}
		case pipeline.Min, pipeline.Max:
			res.Numbers[acc.Name] = st.num
		case pipeline.MinText, pipeline.MaxText:
			res.Texts[acc.Name] = st.text
		case pipeline.AddToSet:
			set := make([]string, 0, len(st.set))
			for k := range st.set {
				set = append(set, k)
			}
			slices.Sort(set)
			res.Sets[acc.Name] = set
		}
	}
	return res
}

func float(f float64) *float64 {
	return &f
}
