// Package iosqlite implements the Record Store over a read-only SQLite
// snapshot. The snapshot is loaded into memory once and queried with
// the reference pipeline semantics of iomemory.
package iosqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/gnmarine/internal/iomemory"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/schema"
	"github.com/gnames/gnmarine/pkg/store"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type sqlitestore struct {
	store.Store
	db *sql.DB
}

// New opens the SQLite file at path and loads all records of the table
// ordered by id.
func New(ctx context.Context, path, table string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	recs, err := load(ctx, db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	slog.Info("SQLite snapshot loaded", "path", path, "records", len(recs))

	return &sqlitestore{Store: iomemory.New(recs), db: db}, nil
}

func load(
	ctx context.Context,
	db *sql.DB,
	table string,
) ([]occurrence.Occurrence, error) {
	q := fmt.Sprintf("SELECT %s FROM %q ORDER BY id",
		strings.Join(schema.Columns(), ", "), table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, LoadError(table, err)
	}
	defer rows.Close()

	var res []occurrence.Occurrence
	for rows.Next() {
		var r schema.Record
		err = rows.Scan(
			&r.ID, &r.ScientificName, &r.Habitat, &r.Locality, &r.WaterBody,
			&r.Country, &r.MinimumDepth, &r.MaximumDepth, &r.DecimalLatitude,
			&r.DecimalLongitude, &r.EventDate, &r.IndividualCount,
			&r.IdentifiedBy, &r.LifeStage, &r.Sex, &r.SamplingProtocol,
		)
		if err != nil {
			return nil, LoadError(table, err)
		}
		o := r.Occurrence()
		o.FixUtf8()
		res = append(res, o)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError(table, err)
	}
	return res, nil
}

func (s *sqlitestore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlitestore) Close() error {
	return s.db.Close()
}
