package ioweb

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gnames/gnmarine/pkg/assistant"
	"github.com/gnames/gnmarine/pkg/errcode"
	"github.com/gnames/gnmarine/pkg/species"
	"github.com/gorilla/mux"
)

// maxBody limits the size of assistant requests.
const maxBody = 1 << 20

// intParam returns a positive integer query parameter or the default.
func intParam(q url.Values, name string, def int) int {
	i, err := strconv.Atoi(q.Get(name))
	if err != nil || i < 1 {
		return def
	}
	return i
}

func filterParams(q url.Values) species.Filter {
	return species.Filter{
		Habitat:        q.Get("habitat"),
		Locality:       q.Get("locality"),
		ScientificName: q.Get("scientificName"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	res, err := s.enc.Encode(v)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		status = http.StatusInternalServerError
		res = []byte(`{"error":"Internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// fail writes a fixed message for the error code and logs the cause.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var status int
	switch species.Code(err) {
	case errcode.SpeciesNotFoundError:
		status, msg = http.StatusNotFound, "Species not found"
	case errcode.InvalidInputError:
		status, msg = http.StatusBadRequest, "Invalid request"
	case errcode.ServiceUnavailableError:
		status = http.StatusServiceUnavailable
	case errcode.AssistantUnavailableError:
		status, msg = http.StatusServiceUnavailable, "Assistant unavailable"
	default:
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		slog.Error(msg, "path", r.URL.Path, "error", err,
			"request_id", r.Header.Get(RequestIDHeader))
	}
	s.write(w, status, errorResponse{Error: msg})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := intParam(q, "page", species.DefaultPage)
	limit := intParam(q, "limit", species.DefaultLimit)
	res, err := s.engine.Summarize(r.Context(), filterParams(q), page, limit)
	if err != nil {
		s.fail(w, r, err, "Failed to fetch fish species")
		return
	}
	s.write(w, http.StatusOK, res)
}

func (s *Server) detail(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		s.write(w, http.StatusBadRequest, errorResponse{Error: "Invalid request"})
		return
	}
	res, err := s.engine.Detail(r.Context(), name)
	if err != nil {
		s.fail(w, r, err, "Failed to fetch species details")
		return
	}
	s.write(w, http.StatusOK, res)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intParam(q, "limit", species.DefaultSearchLimit)
	res, err := s.engine.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		s.fail(w, r, err, "Failed to search fish species")
		return
	}
	s.write(w, http.StatusOK, res)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to fetch fish statistics")
		return
	}
	s.write(w, http.StatusOK, res)
}

func (s *Server) coordinates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intParam(q, "limit", species.DefaultCoordinatesLimit)
	res, err := s.engine.Coordinates(r.Context(), filterParams(q), limit)
	if err != nil {
		s.fail(w, r, err, "Failed to fetch coordinates")
		return
	}
	s.write(w, http.StatusOK, res)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Ping(r.Context()); err != nil {
		slog.Warn("Record store is unreachable", "error", err)
		s.write(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	s.write(w, http.StatusOK, healthResponse{Status: "ok"})
}

// decode reads a JSON request body into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err == nil {
		err = s.enc.Decode(body, v)
	}
	if err != nil {
		s.write(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}

type fishLocationRequest struct {
	Query string `json:"query"`
}

func (s *Server) fishLocation(w http.ResponseWriter, r *http.Request) {
	var req fishLocationRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.assistant.FindFishLocation(r.Context(), req.Query)
	if err != nil {
		s.fail(w, r, err, "Assistant unavailable")
		return
	}
	s.write(w, http.StatusOK, res)
}

type stockTrendRequest struct {
	FishName string `json:"fishName"`
	Region   string `json:"region"`
}

func (s *Server) stockTrend(w http.ResponseWriter, r *http.Request) {
	var req stockTrendRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.assistant.StockTrend(r.Context(), req.FishName, req.Region)
	if err != nil {
		s.fail(w, r, err, "Assistant unavailable")
		return
	}
	s.write(w, http.StatusOK, res)
}

type chatRequest struct {
	History []assistant.Turn `json:"history"`
	Query   string           `json:"query"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.assistant.Chat(r.Context(), req.History, req.Query)
	if err != nil {
		s.fail(w, r, err, "Assistant unavailable")
		return
	}
	s.write(w, http.StatusOK, chatResponse{Reply: res})
}
