// Package iopg implements the Record Store on a PostgreSQL table using
// pgxpool. Pipelines are compiled to SQL.
package iopg

import (
	"context"
	"fmt"
	"slices"

	"github.com/gnames/gnmarine/pkg/config"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnmarine/pkg/schema"
	"github.com/gnames/gnmarine/pkg/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgstore struct {
	pool  *pgxpool.Pool
	table string
}

// Connect establishes a connection pool to PostgreSQL and verifies it.
func Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = int32(max(cfg.MaxConnections, 1))
	poolConfig.MinConns = min(2, poolConfig.MaxConns)
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	return pool, nil
}

// New connects to PostgreSQL and returns a store over the configured
// table.
func New(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	pool, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithPool(pool, cfg.Collection), nil
}

// NewWithPool returns a store that uses an existing pool. The store owns
// the pool after this call.
func NewWithPool(pool *pgxpool.Pool, table string) store.Store {
	return &pgstore{pool: pool, table: table}
}

func (p *pgstore) Ping(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	return p.pool.Ping(ctx)
}

func (p *pgstore) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *pgstore) Count(
	ctx context.Context,
	filter pipeline.Filter,
) (int, error) {
	return p.scalar(ctx, compileCount(p.table, filter))
}

func (p *pgstore) CountDistinct(
	ctx context.Context,
	field occurrence.Field,
	filter pipeline.Filter,
) (int, error) {
	return p.scalar(ctx, compileCountDistinct(p.table, field, filter))
}

func (p *pgstore) scalar(ctx context.Context, q query) (int, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}
	var res int64
	err := p.pool.QueryRow(ctx, q.sql, q.args...).Scan(&res)
	if err != nil {
		return 0, QueryError(p.table, err)
	}
	return int(res), nil
}

func (p *pgstore) Find(
	ctx context.Context,
	pl pipeline.Pipeline,
) ([]occurrence.Occurrence, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}
	if pl.Grouped() {
		return nil, store.GroupedFindError()
	}

	q := compileFind(p.table, pl)
	rows, err := p.pool.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, QueryError(p.table, err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[schema.Record])
	if err != nil {
		return nil, ScanError(p.table, err)
	}

	res := make([]occurrence.Occurrence, len(recs))
	for i := range recs {
		res[i] = recs[i].Occurrence()
	}
	return res, nil
}

func (p *pgstore) Aggregate(
	ctx context.Context,
	pl pipeline.Pipeline,
) ([]pipeline.Row, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}
	if !pl.Grouped() {
		return nil, store.UngroupedAggregateError()
	}

	q := compileAggregate(p.table, pl)
	rows, err := p.pool.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, QueryError(p.table, err)
	}
	defer rows.Close()

	accs := pl.Group.Accumulators
	res := []pipeline.Row{}
	for rows.Next() {
		var key string
		var first int64
		vals := make([]any, len(accs))
		dest := []any{&key, &first}
		for i, acc := range accs {
			switch acc.Op.Kind() {
			case pipeline.NumberKind:
				vals[i] = new(*float64)
			case pipeline.TextKind:
				vals[i] = new(*string)
			case pipeline.SetKind:
				vals[i] = new([]string)
			}
			dest = append(dest, vals[i])
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, ScanError(p.table, err)
		}

		row := pipeline.NewRow(key)
		for i, acc := range accs {
			switch v := vals[i].(type) {
			case **float64:
				row.Numbers[acc.Name] = *v
			case **string:
				if *v != nil {
					row.Texts[acc.Name] = **v
				}
			case *[]string:
				set := *v
				slices.Sort(set)
				row.Sets[acc.Name] = set
			}
		}
		res = append(res, row)
	}
	if err = rows.Err(); err != nil {
		return nil, ScanError(p.table, err)
	}
	return res, nil
}
