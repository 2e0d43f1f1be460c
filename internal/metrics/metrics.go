// Package metrics exposes Prometheus collectors for the profiler service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pagesFetchedTotal       *prometheus.CounterVec
	extractionsTotal        *prometheus.CounterVec
	analysesTotal           *prometheus.CounterVec
	analysisDurationSeconds prometheus.Histogram
	httpRequestsTotal       *prometheus.CounterVec

	once sync.Once
)

// Init registers the collectors. Safe to call more than once.
func Init() {
	once.Do(func() {
		pagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webprofiler_pages_fetched_total",
				Help: "Pages fetched during crawls, labeled by outcome.",
			},
			[]string{"status"},
		)

		extractionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webprofiler_extractions_total",
				Help: "Extraction subtask settlements, labeled by field and outcome.",
			},
			[]string{"field", "outcome"},
		)

		analysesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webprofiler_analyses_total",
				Help: "Website analyses, labeled by final status.",
			},
			[]string{"status"},
		)

		analysisDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "webprofiler_analysis_duration_seconds",
				Help:    "End-to-end analysis latency.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests served, labeled by method and code.",
			},
			[]string{"method", "code"},
		)
	})
}

// PageFetched records a crawl fetch outcome ("ok" or "error").
func PageFetched(status string) {
	Init()
	pagesFetchedTotal.WithLabelValues(status).Inc()
}

// ExtractionSettled records how one extraction subtask settled
// ("value", "empty", or "failed").
func ExtractionSettled(field, outcome string) {
	Init()
	extractionsTotal.WithLabelValues(field, outcome).Inc()
}

// AnalysisCompleted records a finished analysis and its latency.
func AnalysisCompleted(status string, duration time.Duration) {
	Init()
	analysesTotal.WithLabelValues(status).Inc()
	analysisDurationSeconds.Observe(duration.Seconds())
}

// HTTPRequest records one served HTTP request.
func HTTPRequest(method, code string) {
	Init()
	httpRequestsTotal.WithLabelValues(method, code).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
