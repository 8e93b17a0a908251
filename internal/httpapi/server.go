package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AbdulWasayUl/go-country-browser/internal/browser"
	"github.com/AbdulWasayUl/go-country-browser/internal/catalog"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/internal/metrics"
	"github.com/AbdulWasayUl/go-country-browser/internal/modal"
	"github.com/AbdulWasayUl/go-country-browser/internal/render"
	"github.com/AbdulWasayUl/go-country-browser/internal/session"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const defaultDiagnosticsLimit = 50

// DiagnosticsReader lists stored failure records.
type DiagnosticsReader interface {
	Recent(ctx context.Context, component string, limit int64) ([]models.Diagnostic, error)
}

type Server struct {
	catalog *catalog.Catalog
	weather session.WeatherLookup
	live    http.Handler
	diag    DiagnosticsReader
}

// NewServer wires the HTTP surface. live serves the WebSocket endpoint; diag may be nil.
func NewServer(cat *catalog.Catalog, weather session.WeatherLookup, live http.Handler, diag DiagnosticsReader) *Server {
	return &Server{catalog: cat, weather: weather, live: live, diag: diag}
}

// Router builds the full handler with middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	if s.live != nil {
		r.Handle("/ws", s.live)
	}

	r.Route("/api", func(r chi.Router) {
		s.RegisterRoutes(r)
	})
	return r
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/countries", s.handleCountries)
	r.Get("/countries/{index}", s.handleCountry)
	r.Get("/countries/{index}/weather", s.handleWeather)
	if s.diag != nil {
		r.Get("/diagnostics", s.handleDiagnostics)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	data := render.PageData{Grid: render.Loading()}

	snap := s.catalog.Snapshot()
	switch snap.Status {
	case catalog.Ready:
		entries, meta := browser.Paginate(snap.Countries, 1)
		grid, err := render.Grid(entries, meta)
		if err != nil {
			logger.Error("Render grid: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		nav, err := render.Pagination(meta)
		if err != nil {
			logger.Error("Render pagination: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.Grid, data.Nav = grid, nav
	case catalog.Failed:
		data.Grid = render.LoadError()
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, data); err != nil {
		logger.Error("Render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type countryItem struct {
	Index   int            `json:"index"`
	Country models.Country `json:"country"`
}

type countriesResponse struct {
	Items []countryItem    `json:"items"`
	Meta  browser.PageMeta `json:"meta"`
	Query string           `json:"query,omitempty"`
}

type countryResponse struct {
	Index   int            `json:"index"`
	Country models.Country `json:"country"`
	Modal   modal.View     `json:"modal"`
}

// view returns the filtered view for the request's q parameter, or writes the
// dataset status error and returns nil.
func (s *Server) view(w http.ResponseWriter, r *http.Request) *browser.ViewState {
	snap := s.catalog.Snapshot()
	switch snap.Status {
	case catalog.Loading:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "countries are still loading"})
		return nil
	case catalog.Failed:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": render.LoadErrorText})
		return nil
	}

	v := browser.NewViewState(snap.Countries)
	if q := r.URL.Query().Get("q"); q != "" {
		v.ApplyQuery(q)
	}
	return v
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := strings.TrimSpace(r.URL.Query().Get("page")); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid page parameter"})
			return
		}
		page = n
	}

	v := s.view(w, r)
	if v == nil {
		return
	}

	// page 1 of an empty result is the no-results view, not an error
	if !(page == 1 && v.FilteredCount() == 0) && !v.GoToPage(page) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "page out of range"})
		return
	}

	entries, meta := v.Current()
	items := make([]countryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, countryItem{Index: e.Index, Country: e.Country})
	}
	writeJSON(w, http.StatusOK, countriesResponse{Items: items, Meta: meta, Query: v.Query()})
}

func (s *Server) record(w http.ResponseWriter, r *http.Request) (int, models.Country, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return 0, models.Country{}, false
	}

	v := s.view(w, r)
	if v == nil {
		return 0, models.Country{}, false
	}

	c, err := v.Record(index)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "country not found"})
		return 0, models.Country{}, false
	}
	return index, c, true
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	index, c, ok := s.record(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, countryResponse{Index: index, Country: c, Modal: modal.ViewOf(c)})
}

// handleWeather always answers 200: lookup failures are part of the summary.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.record(w, r)
	if !ok {
		return
	}
	summary := s.weather.Lookup(r.Context(), c)
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultDiagnosticsLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.ParseInt(v, 10, 64); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	records, err := s.diag.Recent(r.Context(), r.URL.Query().Get("component"), limit)
	if err != nil {
		logger.Error("List diagnostics: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list diagnostics"})
		return
	}
	writeJSON(w, http.StatusOK, records)
}
