// Package http exposes the presentation API: health, readiness, and
// Prometheus endpoints plus the /api routes a map front end consumes.
// The server hands out structured data only; it performs no rendering.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/climate-norms/internal/domain"
	"github.com/couchcryptid/climate-norms/internal/pipeline"
)

// Server exposes the query API over HTTP.
type Server struct {
	httpServer *http.Server
	loader     *pipeline.Loader
	pipe       *pipeline.Pipeline
	dataDir    string
	dataFile   string
	logger     *slog.Logger
}

// NewServer creates an HTTP server rooted at the given data directory.
// dataFile is the dataset served when no source parameter is given.
func NewServer(addr string, loader *pipeline.Loader, pipe *pipeline.Pipeline, dataDir, dataFile string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		loader:   loader,
		pipe:     pipe,
		dataDir:  dataDir,
		dataFile: dataFile,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/dataset", s.handleDataset)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleReady loads the default dataset; after the first request this is a
// cache hit. Failure means the service cannot answer queries.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if _, err := s.loader.Load(s.defaultPath()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"source":    ds.Source,
		"rows":      len(ds.Records),
		"dropped":   ds.Dropped,
		"metrics":   ds.Metrics,
		"has_dates": ds.HasDates,
		"loaded_at": ds.LoadedAt,
	})
}

type metricInfo struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Unit        string `json:"unit"`
	Default     bool   `json:"default"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	def := ds.DefaultMetric()
	infos := make([]metricInfo, 0, len(ds.Metrics))
	for _, code := range ds.Metrics {
		m, _ := domain.LookupMetric(code)
		infos = append(infos, metricInfo{
			Code:        m.Code,
			DisplayName: m.DisplayName,
			Unit:        m.Unit,
			Default:     m.Code == def,
		})
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}

	scope, err := parseScope(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = ds.DefaultMetric()
	}

	result, err := s.pipe.Query(ds, pipeline.QueryParams{Metric: metric, Scope: scope})
	if err != nil {
		if errors.Is(err, pipeline.ErrMetricUnavailable) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// dataset resolves the dataset for a request, honouring an optional source
// parameter restricted to files inside the data directory. It writes the
// error response itself when resolution fails.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*domain.Dataset, bool) {
	path := s.defaultPath()
	if src := r.URL.Query().Get("source"); src != "" {
		cleaned := filepath.Clean(src)
		if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
			writeError(w, http.StatusBadRequest, "source must be a file inside the data directory")
			return nil, false
		}
		path = filepath.Join(s.dataDir, cleaned)
	}

	ds, err := s.loader.Load(path)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, false
		}
		s.logger.Error("dataset load failed", "source", path, "error", err)
		writeError(w, http.StatusNotFound, "dataset not found")
		return nil, false
	}
	return ds, true
}

func (s *Server) defaultPath() string {
	return filepath.Join(s.dataDir, s.dataFile)
}

func parseScope(r *http.Request) (domain.Scope, error) {
	q := r.URL.Query()
	switch mode := q.Get("mode"); mode {
	case "", "all":
		return domain.Scope{Kind: domain.AllTime}, nil
	case "season":
		season := domain.Season(q.Get("season"))
		if !domain.ValidSeason(season) {
			return domain.Scope{}, errors.New("season must be one of Winter, Spring, Summer, Autumn")
		}
		return domain.Scope{Kind: domain.BySeason, Season: season}, nil
	case "month":
		n, err := strconv.Atoi(q.Get("month"))
		if err != nil || n < 1 || n > 12 {
			return domain.Scope{}, errors.New("month must be an integer between 1 and 12")
		}
		return domain.Scope{Kind: domain.ByMonth, Month: time.Month(n)}, nil
	default:
		return domain.Scope{}, errors.New("mode must be all, season, or month")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
