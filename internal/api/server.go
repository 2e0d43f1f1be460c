// Package api exposes the HTTP interface for the profiling service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/companykit/webprofiler/internal/crawler"
	"github.com/companykit/webprofiler/internal/metrics"
	"github.com/companykit/webprofiler/internal/profile"
)

// Analyzer produces a company profile from a seed website URL.
type Analyzer interface {
	Analyze(ctx context.Context, seedURL string) (profile.CompanyProfile, error)
}

const banner = "webprofiler: POST /api/analyze-website?website_url=https://example.com\n"

// Server wires HTTP handlers to the analyzer pipeline.
type Server struct {
	router   chi.Router
	analyzer Analyzer
	logger   *zap.Logger
}

// NewServer constructs a Server with middleware and routes. The timeout
// bounds a full analysis, crawl and extraction included.
func NewServer(analyzer Analyzer, timeout time.Duration, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		analyzer: analyzer,
		logger:   logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(timeout))

	r.Get("/", s.index)
	r.Get("/api/health", s.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Post("/api/analyze-website", s.analyzeWebsite)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(banner)); err != nil {
		s.logger.Error("banner write failed", zap.Error(err))
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) analyzeWebsite(w http.ResponseWriter, r *http.Request) {
	websiteURL := r.URL.Query().Get("website_url")
	if websiteURL == "" {
		writeError(w, http.StatusBadRequest, "website_url query parameter is required")
		return
	}
	normalized, err := crawler.NormalizeURL(websiteURL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid website_url: "+err.Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), normalized)
	if err != nil {
		s.logger.Warn("analysis failed",
			zap.String("website_url", normalized),
			zap.Error(err),
		)
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, crawler.ErrSeedFetch):
			status = http.StatusBadGateway
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
