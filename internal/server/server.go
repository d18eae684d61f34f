package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/metrics"
)

// Server is the HTTP front of the extraction pipeline.
type Server struct {
	extractor Extractor
	store     corpus.Corpus
	metrics   *metrics.Metrics
	logger    *slog.Logger
	http      *http.Server
}

func New(cfg common.ServerConfig, extractor Extractor, store corpus.Corpus, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{extractor: extractor, store: store, metrics: m, logger: logger}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Router builds the chi router; exposed separately so tests can drive it
// through httptest without binding a port.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.logger, s.metrics))

	r.Post("/v1/extract", s.handleExtract)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"mirror_available": s.store != nil && s.store.MirrorAvailable(),
	})
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server.listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
