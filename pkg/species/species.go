// Package species is the aggregation engine of marine species. It turns
// occurrence records of a Record Store into species cards, species
// detail, global statistics, search results and map points.
//
// The store is passed in explicitly and is shared by concurrent
// requests. Every store failure, including timeouts, becomes a
// ServiceUnavailableError.
package species

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/gnames/gnmarine/pkg/parserpool"
	"github.com/gnames/gnmarine/pkg/store"
)

const (
	// DefaultPage is used when a page number is missing or invalid.
	DefaultPage = 1
	// DefaultLimit is the default number of species per page.
	DefaultLimit = 20
	// DefaultSearchLimit is the default number of search results.
	DefaultSearchLimit = 10
	// DefaultCoordinatesLimit is the default number of records for maps.
	DefaultCoordinatesLimit = 100

	recentOccurrences = 10
	detailCoordinates = 1000
	topHabitats       = 10
	topLocalities     = 20
	topSpecies        = 5
	activityRecords   = 100
	activityDays      = 30
	cardLocations     = 3
	imagePool         = 4
)

// Engine runs aggregations over a record store.
type Engine struct {
	store   store.Store
	parser  parserpool.Pool
	timeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// OptParser adds canonical forms of names to species detail.
func OptParser(p parserpool.Pool) Option {
	return func(e *Engine) {
		e.parser = p
	}
}

// OptTimeout limits the time of every operation. Zero means no limit.
func OptTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// New creates an engine over a store.
func New(s store.Store, opts ...Option) *Engine {
	res := &Engine{store: s}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// StockTrend classifies occurrence counts: more than 50 is increasing,
// less than 10 is decreasing, everything else is stable.
func StockTrend(count int) Trend {
	switch {
	case count > 50:
		return Increasing
	case count < 10:
		return Decreasing
	}
	return Stable
}

// Population maps an occurrence count to a 10-100 scale.
func Population(count int) int {
	return min(100, max(10, count*2))
}

// TotalPages is the number of pages of the given size.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	res := total / limit
	if total%limit != 0 {
		res++
	}
	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func describe(waterBodies, habitats []string) string {
	wb := "various water bodies"
	if len(waterBodies) > 0 {
		wb = strings.Join(waterBodies, ", ")
	}
	hb := "marine environments"
	if len(habitats) > 0 {
		hb = strings.Join(habitats, ", ")
	}
	return "Marine species found in " + wb + ". Commonly observed in " + hb + "."
}

func firstOr(vals []string, def string) string {
	if len(vals) == 0 {
		return def
	}
	return vals[0]
}

func head[T any](vals []T, n int) []T {
	if len(vals) > n {
		return vals[:n]
	}
	return vals
}

// Ping checks that the record store is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	if err := e.store.Ping(ctx); err != nil {
		return UnavailableError("ping", err)
	}
	return nil
}
