package iotesting

import (
	"context"
	"testing"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnmarine/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreContract checks that a store loaded with Occurrences() follows
// the shared pipeline semantics. Every store implementation runs it.
func StoreContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})

	t.Run("count", func(t *testing.T) {
		tests := []struct {
			msg    string
			filter pipeline.Filter
			res    int
		}{
			{"all", nil, 9},
			{"named", pipeline.Present{Field: occurrence.ScientificName}, 8},
			{"case-insensitive", pipeline.Contains{Field: occurrence.Locality, Value: "KOCHI"}, 4},
			{"literal substring", pipeline.Contains{Field: occurrence.Habitat, Value: "."}, 0},
			{"literal dot", pipeline.Contains{Field: occurrence.IdentifiedBy, Value: "r. k"}, 2},
			{"equals", pipeline.Equals{Field: occurrence.ScientificName, Value: "Thunnus albacares"}, 3},
			{"equals is exact", pipeline.Equals{Field: occurrence.ScientificName, Value: "thunnus albacares"}, 0},
			{"numeric", pipeline.Numeric{Field: occurrence.MinimumDepth}, 6},
			{"present", pipeline.Present{Field: occurrence.MinimumDepth}, 7},
			{"or", pipeline.Or{
				pipeline.Contains{Field: occurrence.Locality, Value: "lofoten"},
				pipeline.Contains{Field: occurrence.Habitat, Value: "pelagic"},
			}, 3},
			{"and", pipeline.And{
				pipeline.Contains{Field: occurrence.WaterBody, Value: "arabian"},
				pipeline.Contains{Field: occurrence.Habitat, Value: "coral"},
			}, 2},
		}
		for _, v := range tests {
			res, err := s.Count(ctx, v.filter)
			require.NoError(t, err, v.msg)
			assert.Equal(t, v.res, res, v.msg)
		}
	})

	t.Run("count distinct", func(t *testing.T) {
		tests := []struct {
			msg   string
			field occurrence.Field
			res   int
		}{
			{"species", occurrence.ScientificName, 5},
			{"habitats", occurrence.Habitat, 5},
			{"localities", occurrence.Locality, 4},
			{"sexes", occurrence.Sex, 2},
		}
		for _, v := range tests {
			res, err := s.CountDistinct(ctx, v.field, nil)
			require.NoError(t, err, v.msg)
			assert.Equal(t, v.res, res, v.msg)
		}

		res, err := s.CountDistinct(ctx, occurrence.Locality,
			pipeline.Equals{Field: occurrence.ScientificName, Value: "Thunnus albacares"})
		require.NoError(t, err)
		assert.Equal(t, 2, res)
	})

	t.Run("group by species", func(t *testing.T) {
		assert := assert.New(t)
		p := pipeline.Must(
			pipeline.Match{Filter: pipeline.Present{Field: occurrence.ScientificName}},
			pipeline.GroupByField(occurrence.ScientificName,
				pipeline.CountAs("count"),
				pipeline.Acc("minDepth", pipeline.Min, occurrence.MinimumDepth),
				pipeline.Acc("maxDepth", pipeline.Max, occurrence.MaximumDepth),
				pipeline.Acc("avgDepth", pipeline.Avg, occurrence.MinimumDepth),
				pipeline.Acc("depthSum", pipeline.Sum, occurrence.MinimumDepth),
				pipeline.Acc("first", pipeline.MinText, occurrence.EventDate),
				pipeline.Acc("last", pipeline.MaxText, occurrence.EventDate),
				pipeline.Acc("individuals", pipeline.SumCounts, occurrence.IndividualCount),
				pipeline.Acc("habitats", pipeline.AddToSet, occurrence.Habitat),
				pipeline.Acc("sexes", pipeline.AddToSet, occurrence.Sex),
			),
			pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("count", true)}},
		)
		rows, err := s.Aggregate(ctx, p)
		require.NoError(t, err)

		keys := make([]string, len(rows))
		for i := range rows {
			keys[i] = rows[i].Key
		}
		assert.Equal([]string{
			"Thunnus albacares",
			"Sardinella longiceps",
			"Gadus morhua",
			"Rastrelliger kanagurta",
			"Epinephelus coioides",
		}, keys)

		th := rows[0]
		assert.Equal(3, th.Int("count"))
		require.NotNil(t, th.Float("minDepth"))
		assert.InDelta(10.0, *th.Float("minDepth"), 1e-9)
		require.NotNil(t, th.Float("maxDepth"))
		assert.InDelta(40.0, *th.Float("maxDepth"), 1e-9)
		require.NotNil(t, th.Float("avgDepth"))
		assert.InDelta(20.0, *th.Float("avgDepth"), 1e-9)
		assert.InDelta(40.0, *th.Float("depthSum"), 1e-9)
		assert.Equal("2020-12-31", th.Text("first"))
		assert.Equal("2021-05-01T06:30:00Z", th.Text("last"))
		assert.Equal(5, th.Int("individuals"))
		assert.Equal([]string{"Open ocean", "Pelagic"}, th.Set("habitats"))
		assert.Equal([]string{"female", "male"}, th.Set("sexes"))

		sard := rows[1]
		assert.Equal(40, sard.Int("individuals"))
		assert.Empty(sard.Set("sexes"))

		gadus := rows[2]
		assert.Nil(gadus.Float("minDepth"))
		assert.Nil(gadus.Float("avgDepth"))
		assert.InDelta(0.0, *gadus.Float("depthSum"), 1e-9)
		require.NotNil(t, gadus.Float("maxDepth"))
		assert.InDelta(200.0, *gadus.Float("maxDepth"), 1e-9)
	})

	t.Run("group window", func(t *testing.T) {
		p := pipeline.Must(
			pipeline.Match{Filter: pipeline.Present{Field: occurrence.ScientificName}},
			pipeline.GroupByField(occurrence.ScientificName, pipeline.CountAs("count")),
			pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("count", true)}},
			pipeline.Skip{N: 1},
			pipeline.Limit{N: 2},
		)
		rows, err := s.Aggregate(ctx, p)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Sardinella longiceps", rows[0].Key)
		assert.Equal(t, "Gadus morhua", rows[1].Key)

		p.Skip = 10
		rows, err = s.Aggregate(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("group without sort keeps first appearance", func(t *testing.T) {
		p := pipeline.Must(
			pipeline.Match{Filter: pipeline.Present{Field: occurrence.Habitat}},
			pipeline.GroupByField(occurrence.Habitat, pipeline.CountAs("count")),
		)
		rows, err := s.Aggregate(ctx, p)
		require.NoError(t, err)
		keys := make([]string, len(rows))
		for i := range rows {
			keys[i] = rows[i].Key
		}
		assert.Equal(t, []string{
			"Pelagic", "Open ocean", "Coastal", "Coral reef", "Demersal reef",
		}, keys)
	})

	t.Run("group whole collection", func(t *testing.T) {
		assert := assert.New(t)
		p := pipeline.Must(
			pipeline.Match{Filter: pipeline.And{
				pipeline.Numeric{Field: occurrence.MinimumDepth},
				pipeline.Numeric{Field: occurrence.MaximumDepth},
			}},
			pipeline.GroupAll(
				pipeline.Acc("avgMin", pipeline.Avg, occurrence.MinimumDepth),
				pipeline.Acc("avgMax", pipeline.Avg, occurrence.MaximumDepth),
				pipeline.Acc("min", pipeline.Min, occurrence.MinimumDepth),
				pipeline.Acc("max", pipeline.Max, occurrence.MaximumDepth),
			),
		)
		rows, err := s.Aggregate(ctx, p)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		r := rows[0]
		assert.InDelta(13.0, *r.Float("avgMin"), 1e-9)
		assert.InDelta(30.0, *r.Float("avgMax"), 1e-9)
		assert.InDelta(5.0, *r.Float("min"), 1e-9)
		assert.InDelta(50.0, *r.Float("max"), 1e-9)

		p.Filter = pipeline.Equals{Field: occurrence.ScientificName, Value: "Nemo"}
		rows, err = s.Aggregate(ctx, p)
		require.NoError(t, err)
		assert.Empty(rows)
	})

	t.Run("find sorted", func(t *testing.T) {
		p := pipeline.Must(
			pipeline.Match{Filter: pipeline.Equals{
				Field: occurrence.ScientificName, Value: "Thunnus albacares",
			}},
			pipeline.Sort{Keys: []pipeline.SortKey{
				pipeline.ByField(occurrence.EventDate, true),
			}},
			pipeline.Limit{N: 10},
		)
		recs, err := s.Find(ctx, p)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"2021-05-01T06:30:00Z", "2021-03-04", "2020-12-31"},
			dates(recs),
		)
		assert.NotEmpty(t, recs[0].ID)
		assert.Equal(t, "Lakshadweep", recs[0].Locality)
		assert.Equal(t, "", recs[0].MinimumDepth)
		assert.Equal(t, "purse seine", recs[0].SamplingProtocol)
	})

	t.Run("find keeps insertion order", func(t *testing.T) {
		p := pipeline.Must(
			pipeline.Match{Filter: pipeline.NonEmpty(
				occurrence.DecimalLatitude, occurrence.DecimalLongitude,
			)},
			pipeline.Match{Filter: pipeline.Numeric{Field: occurrence.DecimalLatitude}},
			pipeline.Limit{N: 100},
		)
		recs, err := s.Find(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"2021-03-04", "2021-05-01T06:30:00Z", "2020-12-31",
			"2022-01-10", "2022-01-10T08:00:00Z", "2022-01-11",
			"spring 2019", "2021-05-01",
		}, dates(recs))

		p.Skip, p.Limit = 6, 5
		recs, err = s.Find(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []string{"spring 2019", "2021-05-01"}, dates(recs))
	})

	t.Run("pipeline kind mismatch", func(t *testing.T) {
		_, err := s.Find(ctx, pipeline.Must(
			pipeline.GroupAll(pipeline.CountAs("n")),
		))
		assert.Error(t, err)

		_, err = s.Aggregate(ctx, pipeline.Must(pipeline.Limit{N: 1}))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Count(cctx, nil)
		assert.Error(t, err)
	})
}

func dates(recs []occurrence.Occurrence) []string {
	res := make([]string, len(recs))
	for i := range recs {
		res[i] = recs[i].EventDate
	}
	return res
}
