// Package iostore opens the Record Store selected by configuration.
package iostore

import (
	"context"
	"log/slog"

	"github.com/gnames/gnmarine/internal/iofs"
	"github.com/gnames/gnmarine/internal/iomongo"
	"github.com/gnames/gnmarine/internal/iopg"
	"github.com/gnames/gnmarine/internal/iosqlite"
	"github.com/gnames/gnmarine/pkg/config"
	"github.com/gnames/gnmarine/pkg/store"
)

// Open connects to the configured store. The caller owns the returned
// store and closes it on exit.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	db := &cfg.Database
	slog.Info("Opening record store", "driver", db.Driver)

	switch db.Driver {
	case "postgres":
		return iopg.New(ctx, db)
	case "mongo":
		return iomongo.New(ctx, db)
	case "sqlite":
		path := iofs.SnapshotPath(cfg.HomeDir, db.Path)
		if err := iofs.CheckSnapshot(path); err != nil {
			return nil, err
		}
		return iosqlite.New(ctx, path, db.Collection)
	}
	return nil, UnknownDriverError(db.Driver)
}
