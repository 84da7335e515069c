// Package geo turns occurrence records into deduplicated map points.
package geo

import (
	"fmt"
	"math"

	"github.com/gnames/gnmarine/pkg/occurrence"
)

// UnknownLocation is the title of points without a locality.
const UnknownLocation = "Unknown Location"

const othersSuffix = " & others"

// Point is one or more occurrences that share a location rounded to
// 4 decimal places.
type Point struct {
	ID              string  `json:"id"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ScientificName  string  `json:"scientificName"`
	Habitat         string  `json:"habitat"`
	Depth           string  `json:"depth,omitempty"`
	Date            string  `json:"date"`
	OccurrenceCount int     `json:"occurrenceCount"`
	IndividualCount int64   `json:"individualCount"`
}

// Valid reports if a coordinate pair can be shown on a map. The pair
// (0, 0) is a common placeholder and is rejected.
func Valid(lat, lon float64) bool {
	switch {
	case math.IsNaN(lat) || math.IsNaN(lon):
		return false
	case lat < -90 || lat > 90 || lon < -180 || lon > 180:
		return false
	case lat == 0 && lon == 0:
		return false
	}
	return true
}

// Parse returns the coordinates of an occurrence if they are valid.
func Parse(o *occurrence.Occurrence) (lat, lon float64, ok bool) {
	la := occurrence.ParseNumber(o.DecimalLatitude)
	lo := occurrence.ParseNumber(o.DecimalLongitude)
	if !la.Ok() || !lo.Ok() || !Valid(la.Value, lo.Value) {
		return 0, 0, false
	}
	return la.Value, lo.Value, true
}

type cell struct {
	lat, lon int64
}

func cellOf(lat, lon float64) cell {
	return cell{
		lat: int64(math.Round(lat * 1e4)),
		lon: int64(math.Round(lon * 1e4)),
	}
}

type accumulator struct {
	Point
	species string
	others  bool
}

// Normalize drops records without valid coordinates and merges records
// that fall into the same cell. Points keep the order in which their
// first record appears.
func Normalize(recs []occurrence.Occurrence) []Point {
	cells := make(map[cell]*accumulator)
	var order []*accumulator

	for i := range recs {
		o := &recs[i]
		lat, lon, ok := Parse(o)
		if !ok {
			continue
		}
		c := cellOf(lat, lon)
		acc, ok := cells[c]
		if !ok {
			acc = newAccumulator(o, lat, lon)
			cells[c] = acc
			order = append(order, acc)
			continue
		}
		acc.merge(o)
	}

	res := make([]Point, len(order))
	for i := range order {
		res[i] = order[i].Point
	}
	return res
}

func newAccumulator(o *occurrence.Occurrence, lat, lon float64) *accumulator {
	title := o.Locality
	if title == "" {
		title = UnknownLocation
	}
	name := o.ScientificName
	if name == "" {
		name = occurrence.UnknownSpecies
	}
	return &accumulator{
		species: o.ScientificName,
		Point: Point{
			ID:              o.ID,
			Latitude:        lat,
			Longitude:       lon,
			Title:           title,
			Description:     name + " observed here",
			ScientificName:  o.ScientificName,
			Habitat:         o.Habitat,
			Depth:           depth(o),
			Date:            o.EventDate,
			OccurrenceCount: 1,
			IndividualCount: individuals(o),
		},
	}
}

func (a *accumulator) merge(o *occurrence.Occurrence) {
	a.OccurrenceCount++
	a.IndividualCount += individuals(o)
	a.Description = fmt.Sprintf("%d occurrences at this location",
		a.OccurrenceCount)
	if !a.others && o.ScientificName != "" && o.ScientificName != a.species {
		a.Title += othersSuffix
		a.others = true
	}
}

// depth is "Xm - Ym" when both depth values are given.
func depth(o *occurrence.Occurrence) string {
	if o.MinimumDepth == "" || o.MaximumDepth == "" {
		return ""
	}
	return fmt.Sprintf("%sm - %sm", o.MinimumDepth, o.MaximumDepth)
}

// individuals is the individual count of a record, 1 when it is unknown.
func individuals(o *occurrence.Occurrence) int64 {
	if c := occurrence.ParseCount(o.IndividualCount); c.State == occurrence.Valid {
		return c.Value
	}
	return 1
}
