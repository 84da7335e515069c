package ioschema_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gnames/gnmarine/internal/ioschema"
	"github.com/gnames/gnmarine/internal/iosqlite"
	"github.com/gnames/gnmarine/internal/iotesting"
	"github.com/gnames/gnmarine/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestCreateSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "occurrences.sqlite")
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(path),
	})

	mgr := ioschema.NewManager(cfg)
	require.NoError(t, mgr.Create(ctx))
	// second run keeps existing storage
	require.NoError(t, mgr.Create(ctx))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	err = db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = ?",
		cfg.Database.Collection,
	).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	s, err := iosqlite.New(ctx, path, cfg.Database.Collection)
	require.NoError(t, err)
	defer s.Close()
	cnt, err := s.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func TestCreateUnknownDriver(t *testing.T) {
	cfg := config.New()
	cfg.Database.Driver = "oracle"
	assert.Error(t, ioschema.NewManager(cfg).Create(context.Background()))
}

func TestCreatePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	cfg := iotesting.GetTestConfig()
	cfg.Update([]config.Option{config.OptDatabaseCollection("occurrences_schema")})
	require.NoError(t, ioschema.NewManager(cfg).Create(context.Background()))
}
