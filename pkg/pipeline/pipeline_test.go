package pipeline_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/pkg/errcode"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var speciesGroup = pipeline.GroupByField(
	occurrence.ScientificName,
	pipeline.CountAs("count"),
	pipeline.Acc("minDepth", pipeline.Min, occurrence.MinimumDepth),
	pipeline.Acc("habitats", pipeline.AddToSet, occurrence.Habitat),
)

func TestNewValid(t *testing.T) {
	assert := assert.New(t)
	p, err := pipeline.New(
		pipeline.Match{Filter: pipeline.Present{Field: occurrence.ScientificName}},
		pipeline.Match{Filter: pipeline.Contains{Field: occurrence.Habitat, Value: "reef"}},
		speciesGroup,
		pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("count", true)}},
		pipeline.Skip{N: 20},
		pipeline.Limit{N: 10},
	)
	require.NoError(t, err)
	assert.True(p.Grouped())
	assert.Equal(20, p.Skip)
	assert.Equal(10, p.Limit)

	and, ok := p.Filter.(pipeline.And)
	require.True(t, ok)
	assert.Len(and, 2)

	acc, ok := p.Accumulator("minDepth")
	assert.True(ok)
	assert.Equal(pipeline.Min, acc.Op)
	_, ok = p.Accumulator("none")
	assert.False(ok)
}

func TestNewUngrouped(t *testing.T) {
	p, err := pipeline.New(
		pipeline.Match{Filter: pipeline.Equals{Field: occurrence.ScientificName, Value: "Gadus morhua"}},
		pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByField(occurrence.EventDate, true)}},
		pipeline.Limit{N: 10},
	)
	require.NoError(t, err)
	assert.False(t, p.Grouped())
	assert.Equal(t, pipeline.Equals{Field: occurrence.ScientificName, Value: "Gadus morhua"}, p.Filter)
}

func TestNewEmpty(t *testing.T) {
	p, err := pipeline.New()
	require.NoError(t, err)
	assert.Nil(t, p.Filter)
	assert.Zero(t, p.Limit)
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		msg    string
		stages []pipeline.Stage
	}{
		{
			msg: "match after group",
			stages: []pipeline.Stage{
				speciesGroup,
				pipeline.Match{Filter: pipeline.Present{Field: occurrence.Habitat}},
			},
		},
		{
			msg:    "two groups",
			stages: []pipeline.Stage{speciesGroup, speciesGroup},
		},
		{
			msg:    "limit before skip",
			stages: []pipeline.Stage{pipeline.Limit{N: 1}, pipeline.Skip{N: 1}},
		},
		{
			msg:    "zero limit",
			stages: []pipeline.Stage{pipeline.Limit{N: 0}},
		},
		{
			msg:    "negative skip",
			stages: []pipeline.Stage{pipeline.Skip{N: -1}},
		},
		{
			msg: "empty contains",
			stages: []pipeline.Stage{
				pipeline.Match{Filter: pipeline.Contains{Field: occurrence.Habitat}},
			},
		},
		{
			msg: "unknown field in nested filter",
			stages: []pipeline.Stage{
				pipeline.Match{Filter: pipeline.Or{pipeline.Present{Field: occurrence.Field(99)}}},
			},
		},
		{
			msg: "nil member of or",
			stages: []pipeline.Stage{
				pipeline.Match{Filter: pipeline.Or{
					pipeline.Present{Field: occurrence.Habitat}, nil,
				}},
			},
		},
		{
			msg: "nil member of nested and",
			stages: []pipeline.Stage{
				pipeline.Match{Filter: pipeline.Or{pipeline.And{nil}}},
			},
		},
		{
			msg: "duplicate accumulator",
			stages: []pipeline.Stage{
				pipeline.GroupAll(pipeline.CountAs("n"), pipeline.CountAs("n")),
			},
		},
		{
			msg:    "group without accumulators",
			stages: []pipeline.Stage{pipeline.GroupAll()},
		},
		{
			msg: "sort by unknown accumulator",
			stages: []pipeline.Stage{
				speciesGroup,
				pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("total", true)}},
			},
		},
		{
			msg: "sort by nullable accumulator",
			stages: []pipeline.Stage{
				speciesGroup,
				pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("minDepth", true)}},
			},
		},
		{
			msg: "sort by set",
			stages: []pipeline.Stage{
				speciesGroup,
				pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("habitats", false)}},
			},
		},
		{
			msg: "sort by accumulator without group",
			stages: []pipeline.Stage{
				pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("count", true)}},
			},
		},
		{
			msg:    "sort without keys",
			stages: []pipeline.Stage{pipeline.Sort{}},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := pipeline.New(v.stages...)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.PipelineInvalidError, gnErr.Code)
		})
	}
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { pipeline.Must(pipeline.Limit{N: -1}) })
	assert.NotPanics(t, func() { pipeline.Must(pipeline.Limit{N: 1}) })
}

func TestAllOf(t *testing.T) {
	f := pipeline.Present{Field: occurrence.Habitat}
	assert.Nil(t, pipeline.AllOf())
	assert.Nil(t, pipeline.AllOf(nil, nil))
	assert.Equal(t, f, pipeline.AllOf(nil, f))
	assert.Len(t, pipeline.AllOf(f, f).(pipeline.And), 2)
	assert.Len(t, pipeline.NonEmpty(occurrence.MinimumDepth, occurrence.MaximumDepth).(pipeline.And), 2)
}

func TestOpKind(t *testing.T) {
	assert.Equal(t, pipeline.NumberKind, pipeline.Count.Kind())
	assert.Equal(t, pipeline.TextKind, pipeline.MaxText.Kind())
	assert.Equal(t, pipeline.SetKind, pipeline.AddToSet.Kind())
	assert.True(t, pipeline.Avg.Nullable())
	assert.False(t, pipeline.SumCounts.Nullable())
}

func TestRow(t *testing.T) {
	r := pipeline.NewRow("Gadus morhua")
	three := 3.0
	r.Numbers["count"] = &three
	r.Numbers["minDepth"] = nil
	r.Texts["last"] = "2020-01-01"

	assert.Equal(t, 3, r.Int("count"))
	assert.Equal(t, 0, r.Int("minDepth"))
	assert.Nil(t, r.Float("minDepth"))
	assert.Equal(t, "2020-01-01", r.Text("last"))
	assert.NotNil(t, r.Set("habitats"))
	assert.Empty(t, r.Set("habitats"))
}
