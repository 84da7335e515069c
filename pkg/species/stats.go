package species

import (
	"context"
	"sort"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"golang.org/x/sync/errgroup"
)

func distribution(f occurrence.Field, limit int) (pipeline.Pipeline, error) {
	return pipeline.New(
		pipeline.Match{Filter: pipeline.Present{Field: f}},
		pipeline.GroupByField(f, pipeline.CountAs("count")),
		byCount,
		pipeline.Limit{N: limit},
	)
}

type statsQueries struct {
	habitats, localities, depth, top, activity pipeline.Pipeline
}

func newStatsQueries() (statsQueries, error) {
	var res statsQueries
	var err error
	if res.habitats, err = distribution(occurrence.Habitat, topHabitats); err != nil {
		return res, err
	}
	if res.localities, err = distribution(occurrence.Locality, topLocalities); err != nil {
		return res, err
	}
	res.depth, err = pipeline.New(
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
	if err != nil {
		return res, err
	}
	res.top, err = pipeline.New(
		pipeline.Match{Filter: pipeline.Present{Field: occurrence.ScientificName}},
		pipeline.GroupByField(occurrence.ScientificName,
			pipeline.CountAs("count"),
			pipeline.Acc("localities", pipeline.AddToSet, occurrence.Locality),
		),
		byCount,
		pipeline.Limit{N: topSpecies},
	)
	if err != nil {
		return res, err
	}
	res.activity, err = pipeline.New(
		pipeline.Match{Filter: pipeline.Present{Field: occurrence.EventDate}},
		pipeline.Sort{Keys: []pipeline.SortKey{
			pipeline.ByField(occurrence.EventDate, true),
		}},
		pipeline.Limit{N: activityRecords},
	)
	return res, err
}

// Stats computes global statistics of the whole record store. All
// sub-queries run concurrently, the first failure aborts the others.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	res := Stats{
		TopSpecies:           []TopSpecies{},
		HabitatDistribution:  []HabitatCount{},
		LocalityDistribution: []LocalityCount{},
		RecentActivity:       []Activity{},
	}
	q, err := newStatsQueries()
	if err != nil {
		return res, InvalidInputError(err)
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var habitats, localities, depth, top []pipeline.Row
	var dated []occurrence.Occurrence
	ov := &res.Overview
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int, f func(context.Context) (int, error)) {
		g.Go(func() error {
			var err error
			*dst, err = f(gctx)
			return err
		})
	}
	aggregate := func(dst *[]pipeline.Row, p pipeline.Pipeline) {
		g.Go(func() error {
			var err error
			*dst, err = e.store.Aggregate(gctx, p)
			return err
		})
	}
	distinct := func(f occurrence.Field) func(context.Context) (int, error) {
		return func(ctx context.Context) (int, error) {
			return e.store.CountDistinct(ctx, f, nil)
		}
	}

	count(&ov.TotalOccurrences, func(ctx context.Context) (int, error) {
		return e.store.Count(ctx, nil)
	})
	count(&ov.UniqueSpecies, distinct(occurrence.ScientificName))
	count(&ov.TotalLocations, distinct(occurrence.Locality))
	count(&ov.TotalHabitats, distinct(occurrence.Habitat))
	aggregate(&habitats, q.habitats)
	aggregate(&localities, q.localities)
	aggregate(&depth, q.depth)
	aggregate(&top, q.top)
	g.Go(func() error {
		var err error
		dated, err = e.store.Find(gctx, q.activity)
		return err
	})

	if err = g.Wait(); err != nil {
		return res, UnavailableError("statistics", err)
	}

	for _, row := range top {
		res.TopSpecies = append(res.TopSpecies, TopSpecies{
			ScientificName:  row.Key,
			Name:            occurrence.CommonName(row.Key),
			OccurrenceCount: row.Int("count"),
			LocationCount:   len(row.Set("localities")),
		})
	}
	for _, row := range habitats {
		res.HabitatDistribution = append(res.HabitatDistribution,
			HabitatCount{Habitat: row.Key, Count: row.Int("count")})
	}
	for _, row := range localities {
		res.LocalityDistribution = append(res.LocalityDistribution,
			LocalityCount{Locality: row.Key, Count: row.Int("count")})
	}
	if len(depth) > 0 {
		r := depth[0]
		res.DepthStatistics = &DepthStatistics{
			AverageMinDepth:  round2(value(r.Float("avgMin"))),
			AverageMaxDepth:  round2(value(r.Float("avgMax"))),
			MinRecordedDepth: value(r.Float("min")),
			MaxRecordedDepth: value(r.Float("max")),
		}
	}
	res.RecentActivity = activity(dated)
	return res, nil
}

// activity buckets records by calendar day, latest days first.
// Records with unparseable dates are skipped.
func activity(recs []occurrence.Occurrence) []Activity {
	days := make(map[string]int)
	for i := range recs {
		t, ok := occurrence.ParseDate(recs[i].EventDate)
		if !ok {
			continue
		}
		days[occurrence.DayKey(t)]++
	}

	res := make([]Activity, 0, len(days))
	for k, v := range days {
		res = append(res, Activity{Date: k, Occurrences: v})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Date > res[j].Date
	})
	return head(res, activityDays)
}
