package species

import (
	"context"

	"github.com/gnames/gnmarine/pkg/geo"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnuuid"
	"golang.org/x/sync/errgroup"
)

// Detail aggregates all records with exactly the given scientific name.
func (e *Engine) Detail(ctx context.Context, name string) (Detail, error) {
	var res Detail
	if name == "" {
		return res, NotFoundError(name)
	}
	exact := pipeline.Equals{Field: occurrence.ScientificName, Value: name}

	accs := append(summaryAccumulators(),
		pipeline.Acc("countries", pipeline.AddToSet, occurrence.Country),
		pipeline.Acc("firstDate", pipeline.MinText, occurrence.EventDate),
		pipeline.Acc("individuals", pipeline.SumCounts, occurrence.IndividualCount),
		pipeline.Acc("identifiedBy", pipeline.AddToSet, occurrence.IdentifiedBy),
		pipeline.Acc("protocols", pipeline.AddToSet, occurrence.SamplingProtocol),
		pipeline.Acc("lifeStages", pipeline.AddToSet, occurrence.LifeStage),
		pipeline.Acc("sexes", pipeline.AddToSet, occurrence.Sex),
	)
	group, err := pipeline.New(
		pipeline.Match{Filter: exact},
		pipeline.GroupByField(occurrence.ScientificName, accs...),
	)
	if err != nil {
		return res, InvalidInputError(err)
	}
	recent, err := pipeline.New(
		pipeline.Match{Filter: exact},
		pipeline.Sort{Keys: []pipeline.SortKey{
			pipeline.ByField(occurrence.EventDate, true),
		}},
		pipeline.Limit{N: recentOccurrences},
	)
	if err != nil {
		return res, InvalidInputError(err)
	}
	located, err := pipeline.New(
		pipeline.Match{Filter: exact},
		pipeline.Match{Filter: pipeline.And{
			pipeline.Numeric{Field: occurrence.DecimalLatitude},
			pipeline.Numeric{Field: occurrence.DecimalLongitude},
		}},
		pipeline.Limit{N: detailCoordinates},
	)
	if err != nil {
		return res, InvalidInputError(err)
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	var rows []pipeline.Row
	var recs, locs []occurrence.Occurrence
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = e.store.Aggregate(gctx, group)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = e.store.Find(gctx, recent)
		return err
	})
	g.Go(func() error {
		var err error
		locs, err = e.store.Find(gctx, located)
		return err
	})
	if err = g.Wait(); err != nil {
		return res, UnavailableError("species detail", err)
	}
	if len(rows) == 0 {
		return res, NotFoundError(name)
	}

	res = detail(rows[0], recs, locs)
	if e.parser != nil {
		if c, ok := e.parser.Canonical(name); ok {
			res.CanonicalName = c
		}
	}
	return res, nil
}

func detail(row pipeline.Row, recent, located []occurrence.Occurrence) Detail {
	count := row.Int("count")
	individuals := row.Int("individuals")
	habitats := row.Set("habitats")
	res := Detail{
		ID:                row.Key,
		UUID:              gnuuid.New(row.Key).String(),
		ScientificName:    row.Key,
		Name:              occurrence.CommonName(row.Key),
		Description:       describe(row.Set("waterBodies"), habitats),
		Habitat:           firstOr(habitats, "Marine"),
		Population:        Population(count),
		StockTrend:        StockTrend(count),
		OccurrenceCount:   count,
		LastSeen:          row.Text("lastDate"),
		Latitude:          row.Float("avgLat"),
		Longitude:         row.Float("avgLon"),
		TotalIndividuals:  individuals,
		Habitats:          habitats,
		Localities:        row.Set("localities"),
		WaterBodies:       row.Set("waterBodies"),
		Countries:         row.Set("countries"),
		IdentifiedBy:      row.Set("identifiedBy"),
		SamplingProtocols: row.Set("protocols"),
		LifeStages:        row.Set("lifeStages"),
		Sexes:             row.Set("sexes"),
		DepthRange: DepthRange{
			Min: value(row.Float("minDepth")),
			Max: value(row.Float("maxDepth")),
			Avg: round2(value(row.Float("avgDepth"))),
		},
		DateRange: DateRange{
			First: row.Text("firstDate"),
			Last:  row.Text("lastDate"),
		},
	}
	if res.LastSeen == "" {
		res.LastSeen = "Unknown"
	}
	if count > 0 {
		res.AvgIndividualsPerOccurrence = round2(float64(individuals) / float64(count))
	}

	res.Coordinates = make([]Coordinate, 0, len(located))
	for i := range located {
		o := &located[i]
		lat, lon, ok := geo.Parse(o)
		if !ok {
			continue
		}
		res.Coordinates = append(res.Coordinates, Coordinate{
			Lat:      lat,
			Lng:      lon,
			Locality: o.Locality,
			Date:     o.EventDate,
		})
	}

	res.RecentOccurrences = make([]RecentOccurrence, len(recent))
	for i, o := range recent {
		res.RecentOccurrences[i] = RecentOccurrence{
			ID:              o.ID,
			Date:            o.EventDate,
			Locality:        o.Locality,
			Habitat:         o.Habitat,
			Depth:           orZero(o.MinimumDepth) + "m - " + orZero(o.MaximumDepth) + "m",
			IndividualCount: o.IndividualCount,
			IdentifiedBy:    o.IdentifiedBy,
		}
	}
	return res
}

func value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
