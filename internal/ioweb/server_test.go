package ioweb_test

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmarine/internal/iomemory"
	"github.com/gnames/gnmarine/internal/iotesting"
	"github.com/gnames/gnmarine/internal/ioweb"
	"github.com/gnames/gnmarine/pkg/assistant"
	"github.com/gnames/gnmarine/pkg/config"
	"github.com/gnames/gnmarine/pkg/occurrence"
	"github.com/gnames/gnmarine/pkg/pipeline"
	"github.com/gnames/gnmarine/pkg/species"
	"github.com/gnames/gnmarine/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func server(s store.Store, gen assistant.Generator) http.Handler {
	var asst *assistant.Assistant
	if gen != nil {
		asst = assistant.New(gen)
	}
	cfg := config.New().Server
	return ioweb.New(cfg, species.New(s), asst).Handler()
}

func fixture() http.Handler {
	return server(iomemory.New(iotesting.Occurrences()), nil)
}

func get(t *testing.T, h http.Handler, target string, res any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if res != nil {
		require.NoError(t, gnfmt.GNjson{}.Decode(w.Body.Bytes(), res), w.Body.String())
	}
	return w
}

func post(t *testing.T, h http.Handler, target, body string, res any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if res != nil {
		require.NoError(t, gnfmt.GNjson{}.Decode(w.Body.Bytes(), res), w.Body.String())
	}
	return w
}

func TestList(t *testing.T) {
	h := fixture()
	tests := []struct {
		msg, target string
		page, limit int
		total, n    int
	}{
		{"defaults", "/api/fish", 1, 20, 5, 5},
		{"garbage params", "/api/fish?page=abc&limit=-3", 1, 20, 5, 5},
		{"page", "/api/fish?page=2&limit=2", 2, 2, 5, 2},
		{"beyond last page", "/api/fish?page=9&limit=2", 9, 2, 5, 0},
		{"filter", "/api/fish?locality=kochi", 1, 20, 2, 2},
		{"max limit", "/api/fish?limit=9223372036854775807", 1, math.MaxInt, 5, 5},
		{"max page", "/api/fish?page=9223372036854775807", math.MaxInt, 20, 5, 0},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var res species.List
			w := get(t, h, v.target, &res)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, v.page, res.Pagination.Page)
			assert.Equal(t, v.limit, res.Pagination.Limit)
			assert.Equal(t, v.total, res.Pagination.Total)
			assert.Len(t, res.Species, v.n)
			assert.Equal(t, species.TotalPages(v.total, v.limit), res.Pagination.TotalPages)
		})
	}
}

func TestDetail(t *testing.T) {
	h := fixture()
	var res species.Detail
	w := get(t, h, "/api/fish/Thunnus%20albacares", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Thunnus albacares", res.ScientificName)
	assert.Equal(t, 3, res.OccurrenceCount)

	var fail map[string]string
	w = get(t, h, "/api/fish/Nemo", &fail)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]string{"error": "Species not found"}, fail)
}

func TestSearchEmpty(t *testing.T) {
	w := get(t, fixture(), "/api/fish/search?q=", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"results":[]}`, w.Body.String())
}

func TestSearch(t *testing.T) {
	var res species.Search
	w := get(t, fixture(), "/api/fish/search?q=arabian&limit=x", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, res.Results, 4)
}

func TestStats(t *testing.T) {
	var res species.Stats
	w := get(t, fixture(), "/api/fish/stats", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 9, res.Overview.TotalOccurrences)

	w = get(t, server(iomemory.New(nil), nil), "/api/fish/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"depthStatistics":null`)
	assert.Contains(t, w.Body.String(), `"topSpecies":[]`)
}

func TestCoordinates(t *testing.T) {
	var res map[string]any
	w := get(t, fixture(), "/api/fish/coordinates?habitat=coastal", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{
		"scientificName": nil,
		"habitat":        "coastal",
		"locality":       nil,
		"limit":          float64(100),
	}, res["query"])
	assert.Equal(t, float64(1), res["total"])
}

type broken struct{ store.Store }

func (broken) Ping(context.Context) error { return errors.New("down") }

func (broken) Aggregate(context.Context, pipeline.Pipeline) ([]pipeline.Row, error) {
	return nil, errors.New("down")
}

func (broken) Find(context.Context, pipeline.Pipeline) ([]occurrence.Occurrence, error) {
	return nil, errors.New("down")
}

func TestStoreUnavailable(t *testing.T) {
	h := server(broken{iomemory.New(nil)}, nil)
	tests := []struct{ target, msg string }{
		{"/api/fish", "Failed to fetch fish species"},
		{"/api/fish/Gadus%20morhua", "Failed to fetch species details"},
		{"/api/fish/search?q=a", "Failed to search fish species"},
		{"/api/fish/stats", "Failed to fetch fish statistics"},
		{"/api/fish/coordinates", "Failed to fetch coordinates"},
	}
	for _, v := range tests {
		var res map[string]string
		w := get(t, h, v.target, &res)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, v.target)
		assert.Equal(t, map[string]string{"error": v.msg}, res, v.target)
	}

	var res map[string]string
	w := get(t, h, "/health", &res)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", res["status"])
}

func TestHealthAndRequestID(t *testing.T) {
	h := fixture()
	var res map[string]string
	w := get(t, h, "/health", &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", res["status"])
	assert.NotEmpty(t, w.Header().Get(ioweb.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	id := "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	req.Header.Set(ioweb.RequestIDHeader, id)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(ioweb.RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	h := fixture()
	get(t, h, "/api/fish/stats", nil)
	w := get(t, h, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `gnmarine_http_requests_total{route="/api/fish/stats",status="200"} 1`)
}

type gen struct {
	reply string
	err   error
}

func (g gen) Generate(context.Context, assistant.Request) (string, error) {
	return g.reply, g.err
}

func TestAssistant(t *testing.T) {
	s := iomemory.New(nil)

	var loc assistant.FishLocation
	w := post(t, server(s, gen{reply: `{"fishLocation":"Kochi"}`}),
		"/api/assistant/fish-location", `{"query":"tuna?"}`, &loc)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kochi", loc.FishLocation)

	var trend assistant.Trend
	w = post(t, server(s, gen{reply: `{"stockTrend":"stable","confidence":0.4}`}),
		"/api/assistant/stock-trend", `{"fishName":"tuna","region":"Kochi"}`, &trend)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, assistant.Trend{StockTrend: "stable", Confidence: 0.4}, trend)

	var chat map[string]string
	w = post(t, server(s, gen{reply: "Hello"}),
		"/api/assistant/chat", `{"history":[{"role":"user","text":"hi"}],"query":"more"}`, &chat)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello", chat["reply"])
}

func TestAssistantErrors(t *testing.T) {
	s := iomemory.New(nil)
	tests := []struct {
		msg    string
		h      http.Handler
		body   string
		status int
		err    string
	}{
		{"not configured", server(s, nil), `{"query":"tuna"}`,
			http.StatusServiceUnavailable, "Assistant unavailable"},
		{"failure", server(s, gen{err: errors.New("quota")}), `{"query":"tuna"}`,
			http.StatusServiceUnavailable, "Assistant unavailable"},
		{"empty query", server(s, gen{reply: "x"}), `{"query":" "}`,
			http.StatusBadRequest, "Invalid request"},
		{"bad body", server(s, gen{reply: "x"}), `{"query":`,
			http.StatusBadRequest, "Invalid request body"},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var res map[string]string
			w := post(t, v.h, "/api/assistant/fish-location", v.body, &res)
			assert.Equal(t, v.status, w.Code)
			assert.Equal(t, v.err, res["error"])
		})
	}
}
