package species

import (
	"context"
	"strings"

	"github.com/gnames/gnmarine/pkg/geo"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
)

// Coordinates returns map points of up to limit records that match the
// filter and carry numeric coordinates. Records do not need a
// scientific name.
func (e *Engine) Coordinates(
	ctx context.Context,
	f Filter,
	limit int,
) (Coordinates, error) {
	if limit < 1 {
		limit = DefaultCoordinatesLimit
	}
	res := Coordinates{
		Coordinates: []geo.Point{},
		Query: CoordinatesQuery{
			ScientificName: echo(f.ScientificName),
			Habitat:        echo(f.Habitat),
			Locality:       echo(f.Locality),
			Limit:          limit,
		},
	}

	p, err := pipeline.New(
		pipeline.Match{Filter: pipeline.AllOf(
			contains(occurrence.ScientificName, f.ScientificName),
			contains(occurrence.Habitat, f.Habitat),
			contains(occurrence.Locality, f.Locality),
		)},
		pipeline.Match{Filter: pipeline.And{
			pipeline.Numeric{Field: occurrence.DecimalLatitude},
			pipeline.Numeric{Field: occurrence.DecimalLongitude},
		}},
		pipeline.Limit{N: limit},
	)
	if err != nil {
		return res, InvalidInputError(err)
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	recs, err := e.store.Find(ctx, p)
	if err != nil {
		return res, UnavailableError("coordinates", err)
	}

	res.Coordinates = geo.Normalize(recs)
	res.Total = len(res.Coordinates)
	return res, nil
}

func echo(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
