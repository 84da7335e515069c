package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/internal/iogenai"
	"github.com/gnames/gnmarine/internal/iostore"
	"github.com/gnames/gnmarine/internal/ioweb"
	"github.com/gnames/gnmarine/pkg/assistant"
	"github.com/gnames/gnmarine/pkg/parserpool"
	"github.com/gnames/gnmarine/pkg/species"
	"github.com/spf13/cobra"
)

func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API of marine species",
		Long: `Start the read-only HTTP API of marine species.

Endpoints:
  GET  /api/fish                    species list (habitat, locality,
                                    scientificName, page, limit)
  GET  /api/fish/{scientificName}   species detail
  GET  /api/fish/search             search (q, limit)
  GET  /api/fish/stats              global statistics
  GET  /api/fish/coordinates        map points (scientificName, habitat,
                                    locality, limit)
  POST /api/assistant/fish-location
  POST /api/assistant/stock-trend
  POST /api/assistant/chat
  GET  /health
  GET  /metrics

Examples:
  gnmarine serve
  gnmarine serve --port 9000 --driver sqlite`,
		RunE: runServe,
	}

	serveCmd.Flags().StringP("driver", "d", "",
		"record store driver (postgres, mongo, sqlite)")
	serveCmd.Flags().String("host", "", "interface to bind to")
	serveCmd.Flags().IntP("port", "p", 0, "port of the HTTP server")
	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd, driverFlag, hostFlag, portFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := iostore.Open(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	pool := parserpool.NewPool(cfg.JobsNumber)
	defer pool.Close()

	engine := species.New(s,
		species.OptParser(pool),
		species.OptTimeout(cfg.Server.RequestTimeout),
	)

	var gen assistant.Generator
	if cfg.Assistant.APIKey != "" {
		if gen, err = iogenai.New(ctx, cfg.Assistant); err != nil {
			gn.PrintErrorMessage(err)
			gn.Warn("Assistant endpoints are disabled")
		}
	} else {
		gn.Warn("Assistant API key is empty, assistant endpoints are disabled")
	}
	asst := assistant.New(gen, assistant.OptTimeout(cfg.Assistant.Timeout))

	gn.Info("Serving marine species at <em>http://%s</em>", cfg.Server.Addr())
	slog.Info("Record store opened",
		"driver", cfg.Database.Driver,
		"collection", cfg.Database.Collection,
	)

	if err = ioweb.New(cfg.Server, engine, asst).Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Server stopped")
	return nil
}
