// Package ioweb serves the read-only species API and the assistant
// endpoints over HTTP.
package ioweb

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmarine/pkg/assistant"
	"github.com/gnames/gnmarine/pkg/config"
	"github.com/gnames/gnmarine/pkg/species"
	"github.com/gorilla/mux"
)

// Server is the HTTP query surface.
type Server struct {
	cfg       config.ServerConfig
	engine    *species.Engine
	assistant *assistant.Assistant
	metrics   *metrics
	enc       gnfmt.Encoder
}

// New creates a server. A nil assistant makes the assistant endpoints
// answer with 503.
func New(
	cfg config.ServerConfig,
	engine *species.Engine,
	asst *assistant.Assistant,
) *Server {
	if asst == nil {
		asst = assistant.New(nil)
	}
	return &Server{
		cfg:       cfg,
		engine:    engine,
		assistant: asst,
		metrics:   newMetrics(),
		enc:       gnfmt.GNjson{},
	}
}

// Router returns routes without the outer middleware.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.metrics.middleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/fish", s.list).Methods(http.MethodGet)
	api.HandleFunc("/fish/stats", s.stats).Methods(http.MethodGet)
	api.HandleFunc("/fish/search", s.search).Methods(http.MethodGet)
	api.HandleFunc("/fish/coordinates", s.coordinates).Methods(http.MethodGet)
	api.HandleFunc("/fish/{id}", s.detail).Methods(http.MethodGet)

	api.HandleFunc("/assistant/fish-location", s.fishLocation).Methods(http.MethodPost)
	api.HandleFunc("/assistant/stock-trend", s.stockTrend).Methods(http.MethodPost)
	api.HandleFunc("/assistant/chat", s.chat).Methods(http.MethodPost)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)
	return r
}

// Handler returns the router wrapped in middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router()
	h = timeout(s.cfg.RequestTimeout, h)
	h = cors(s.cfg.AllowedOrigins, h)
	h = accessLog(h)
	h = recovery(h)
	return requestID(h)
}

// Run listens until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return ListenError(srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return ShutdownError(err)
	}
	return nil
}
