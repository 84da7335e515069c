// Package ioschema creates the table or collection of occurrence records
// with its indexes. PostgreSQL uses GORM AutoMigrate, SQLite uses the DDL
// generated from schema.Record, MongoDB gets indexes only.
package ioschema

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gnames/gnmarine/internal/iofs"
	"github.com/gnames/gnmarine/internal/iomongo"
	"github.com/gnames/gnmarine/internal/iopg"
	"github.com/gnames/gnmarine/internal/iostore"
	"github.com/gnames/gnmarine/pkg/config"
	"github.com/gnames/gnmarine/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Manager creates storage for occurrence records.
type Manager interface {
	// Create makes the table or collection and its indexes. It is safe
	// to run on existing storage.
	Create(ctx context.Context) error
}

type manager struct {
	cfg *config.Config
}

// NewManager creates a new Manager for the configured driver.
func NewManager(cfg *config.Config) Manager {
	return &manager{cfg: cfg}
}

func (m *manager) Create(ctx context.Context) error {
	db := &m.cfg.Database
	slog.Info("Creating storage",
		"driver", db.Driver, "collection", db.Collection)

	switch db.Driver {
	case "postgres":
		return m.createPostgres(ctx)
	case "sqlite":
		return m.createSQLite(ctx)
	case "mongo":
		return m.createMongo(ctx)
	}
	return iostore.UnknownDriverError(db.Driver)
}

func (m *manager) createPostgres(ctx context.Context) error {
	pool, err := iopg.Connect(ctx, &m.cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	table := m.cfg.Database.Collection
	if err = schema.Migrate(gormDB, table); err != nil {
		return CreateSchemaError(table, err)
	}

	return setCollation(ctx, pool, table)
}

// setCollation sets "C" collation on indexed text columns, so that
// sorting compares bytes the same way in all stores.
func setCollation(ctx context.Context, pool *pgxpool.Pool, table string) error {
	qStr := `ALTER TABLE %s ALTER COLUMN %s TYPE TEXT COLLATE "C"`
	sanitized := pgx.Identifier{table}.Sanitize()
	for _, f := range schema.IndexedFields {
		q := formatCollationSQL(qStr, sanitized, f.Column())
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(table, f.Column(), err)
		}
	}
	return nil
}

func (m *manager) createSQLite(ctx context.Context) error {
	path := iofs.SnapshotPath(m.cfg.HomeDir, m.cfg.Database.Path)
	table := m.cfg.Database.Collection

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return CreateSchemaError(table, err)
	}
	defer db.Close()

	rec := schema.Record{}
	stmts := append([]string{rec.TableDDL(table)}, rec.IndexDDL(table)...)
	for _, v := range stmts {
		if _, err = db.ExecContext(ctx, v); err != nil {
			return CreateSchemaError(table, err)
		}
	}
	slog.Info("SQLite snapshot is ready", "path", path)
	return nil
}

func (m *manager) createMongo(ctx context.Context) error {
	client, err := iomongo.Connect(ctx, &m.cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	coll := client.Database(m.cfg.Database.Database).
		Collection(m.cfg.Database.Collection)
	_, err = coll.Indexes().CreateMany(ctx, mongoIndexes())
	if err != nil {
		return IndexError(coll.Name(), err)
	}
	return nil
}

func mongoIndexes() []mongo.IndexModel {
	res := make([]mongo.IndexModel, len(schema.IndexedFields))
	for i, f := range schema.IndexedFields {
		res[i] = mongo.IndexModel{Keys: bson.D{{Key: f.Key(), Value: 1}}}
	}
	return res
}
