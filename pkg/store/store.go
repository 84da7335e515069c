// Package store defines the contract of the occurrence Record Store.
package store

import (
	"context"

	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
)

// Store is a read-only, queryable collection of occurrence records.
// Implementations are safe for concurrent use. A nil filter selects
// all records.
type Store interface {
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, filter pipeline.Filter) (int, error)

	// CountDistinct returns the number of distinct non-empty values of a
	// field among records matching the filter.
	CountDistinct(
		ctx context.Context,
		field occurrence.Field,
		filter pipeline.Filter,
	) (int, error)

	// Find runs an ungrouped pipeline and returns matching records.
	// Without a Sort stage records keep insertion order.
	Find(ctx context.Context, p pipeline.Pipeline) ([]occurrence.Occurrence, error)

	// Aggregate runs a grouped pipeline and returns its rows.
	// Without a Sort stage rows keep the order of first appearance.
	Aggregate(ctx context.Context, p pipeline.Pipeline) ([]pipeline.Row, error)

	// Close releases connections held by the store.
	Close() error
}
