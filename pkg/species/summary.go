package species

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnuuid"
	"golang.org/x/sync/errgroup"
)

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout > 0 {
		return context.WithTimeout(ctx, e.timeout)
	}
	return context.WithCancel(ctx)
}

func contains(f occurrence.Field, s string) pipeline.Filter {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return pipeline.Contains{Field: f, Value: s}
}

// Filter returns the record filter of species queries. Records without
// a scientific name are never part of a species.
func (f Filter) Match() pipeline.Filter {
	return pipeline.AllOf(
		pipeline.Present{Field: occurrence.ScientificName},
		contains(occurrence.Habitat, f.Habitat),
		contains(occurrence.Locality, f.Locality),
		contains(occurrence.ScientificName, f.ScientificName),
	)
}

func summaryAccumulators() []pipeline.Accumulator {
	return []pipeline.Accumulator{
		pipeline.CountAs("count"),
		pipeline.Acc("habitats", pipeline.AddToSet, occurrence.Habitat),
		pipeline.Acc("localities", pipeline.AddToSet, occurrence.Locality),
		pipeline.Acc("waterBodies", pipeline.AddToSet, occurrence.WaterBody),
		pipeline.Acc("minDepth", pipeline.Min, occurrence.MinimumDepth),
		pipeline.Acc("maxDepth", pipeline.Max, occurrence.MaximumDepth),
		pipeline.Acc("avgDepth", pipeline.Avg, occurrence.MinimumDepth),
		pipeline.Acc("lastDate", pipeline.MaxText, occurrence.EventDate),
		pipeline.Acc("avgLat", pipeline.Avg, occurrence.DecimalLatitude),
		pipeline.Acc("avgLon", pipeline.Avg, occurrence.DecimalLongitude),
	}
}

var byCount = pipeline.Sort{Keys: []pipeline.SortKey{pipeline.ByAcc("count", true)}}

// Summarize returns a page of species matching the filter, ordered by
// descending number of occurrences. Pages out of range are empty.
func (e *Engine) Summarize(
	ctx context.Context,
	f Filter,
	page, limit int,
) (List, error) {
	var res List
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	// a window starting past math.MaxInt records is always empty
	beyond := page-1 > math.MaxInt/limit
	var p pipeline.Pipeline
	if !beyond {
		var err error
		p, err = pipeline.New(
			pipeline.Match{Filter: f.Match()},
			pipeline.GroupByField(occurrence.ScientificName, summaryAccumulators()...),
			byCount,
			pipeline.Skip{N: (page - 1) * limit},
			pipeline.Limit{N: limit},
		)
		if err != nil {
			return res, InvalidInputError(err)
		}
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var rows []pipeline.Row
	var total int
	g, gctx := errgroup.WithContext(ctx)
	if !beyond {
		g.Go(func() error {
			var err error
			rows, err = e.store.Aggregate(gctx, p)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = e.store.CountDistinct(gctx, occurrence.ScientificName, f.Match())
		return err
	})
	if err := g.Wait(); err != nil {
		return res, UnavailableError("species list", err)
	}

	res.Species = make([]Card, len(rows))
	for i, row := range rows {
		res.Species[i] = card(row, i)
	}
	res.Pagination = Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
	}
	return res, nil
}

func card(row pipeline.Row, idx int) Card {
	count := row.Int("count")
	habitats := row.Set("habitats")
	res := Card{
		ID:              row.Key,
		UUID:            gnuuid.New(row.Key).String(),
		Name:            occurrence.CommonName(row.Key),
		ScientificName:  row.Key,
		Description:     describe(row.Set("waterBodies"), habitats),
		Habitat:         firstOr(habitats, "Marine"),
		Population:      Population(count),
		StockTrend:      StockTrend(count),
		ImageID:         fmt.Sprintf("fish%d", idx%imagePool+1),
		OccurrenceCount: count,
		Locations:       head(row.Set("localities"), cardLocations),
		DepthRange:      depthRange(row.Float("minDepth"), row.Float("maxDepth")),
		LastSeen:        row.Text("lastDate"),
		Latitude:        row.Float("avgLat"),
		Longitude:       row.Float("avgLon"),
	}
	if res.LastSeen == "" {
		res.LastSeen = "Unknown"
	}
	return res
}

func depthRange(lo, hi *float64) string {
	if lo == nil || hi == nil {
		return "Unknown depth"
	}
	return fmt.Sprintf("%sm - %sm",
		strconv.FormatFloat(*lo, 'f', -1, 64),
		strconv.FormatFloat(*hi, 'f', -1, 64),
	)
}

// Search groups species whose scientific name, locality, habitat or
// water body contains the query. An empty query gives no results.
func (e *Engine) Search(ctx context.Context, q string, limit int) (Search, error) {
	res := Search{Results: []SearchResult{}}
	q = strings.TrimSpace(q)
	if q == "" {
		return res, nil
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	p, err := pipeline.New(
		pipeline.Match{Filter: pipeline.Present{Field: occurrence.ScientificName}},
		pipeline.Match{Filter: pipeline.Or{
			contains(occurrence.ScientificName, q),
			contains(occurrence.Locality, q),
			contains(occurrence.Habitat, q),
			contains(occurrence.WaterBody, q),
		}},
		pipeline.GroupByField(occurrence.ScientificName,
			pipeline.CountAs("count"),
			pipeline.Acc("localities", pipeline.AddToSet, occurrence.Locality),
			pipeline.Acc("habitats", pipeline.AddToSet, occurrence.Habitat),
		),
		byCount,
		pipeline.Limit{N: limit},
	)
	if err != nil {
		return res, InvalidInputError(err)
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	rows, err := e.store.Aggregate(ctx, p)
	if err != nil {
		return res, UnavailableError("search", err)
	}

	for _, row := range rows {
		res.Results = append(res.Results, SearchResult{
			ID:              row.Key,
			ScientificName:  row.Key,
			Name:            occurrence.CommonName(row.Key),
			OccurrenceCount: row.Int("count"),
			Localities:      head(row.Set("localities"), cardLocations),
			Habitats:        row.Set("habitats"),
		})
	}
	return res, nil
}
