// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - recommendation latency, list sizes and outcomes
// - response cache efficiency
// - API endpoint latency and throughput
// - poster lookups and their circuit breaker
// - dataset size

var (
	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommend_duration_seconds",
			Help:    "Duration of a single algorithm ranking in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"algorithm"},
	)

	RecommendResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommend_results",
			Help:    "Number of titles returned by an algorithm ranking",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"algorithm"},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_errors_total",
			Help: "Total number of algorithm ranking errors",
		},
		[]string{"algorithm", "error_type"},
	)

	RecommendOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_outcomes_total",
			Help: "Total recommendation requests by outcome (ok, not_found, insufficient, error)",
		},
		[]string{"outcome"},
	)

	RecommendCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommend_cache_total",
			Help: "Recommendation response cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Poster Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_poster_lookups_total",
			Help: "Poster lookups by source (cache, remote) and result (ok, missing, error)",
		},
		[]string{"source", "result"},
	)

	PosterFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_poster_fetch_duration_seconds",
			Help:    "Duration of remote poster metadata requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Dataset Metrics
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_dataset_rows",
			Help: "Rows loaded per base table (movies, ratings, tags, links, users)",
		},
		[]string{"table"},
	)

	// Maintenance Metrics
	BadgerGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_badger_gc_runs_total",
			Help: "Badger value log GC runs by result (rewritten, noop, error)",
		},
		[]string{"result"},
	)
)

// RecordAlgorithmRun records the latency and size of an algorithm ranking.
func RecordAlgorithmRun(algorithm string, duration time.Duration, results int, err error) {
	RecommendDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	if err != nil {
		RecommendErrors.WithLabelValues(algorithm, errorType(err)).Inc()
		return
	}
	RecommendResults.WithLabelValues(algorithm).Observe(float64(results))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPosterLookup records a poster lookup outcome.
func RecordPosterLookup(source, result string) {
	PosterLookups.WithLabelValues(source, result).Inc()
}

// RecordDatasetStats publishes the loaded table sizes.
func RecordDatasetStats(movies, ratings, tags, links, users int) {
	DatasetRows.WithLabelValues("movies").Set(float64(movies))
	DatasetRows.WithLabelValues("ratings").Set(float64(ratings))
	DatasetRows.WithLabelValues("tags").Set(float64(tags))
	DatasetRows.WithLabelValues("links").Set(float64(links))
	DatasetRows.WithLabelValues("users").Set(float64(users))
}

// errorType buckets ranking errors into a small label set.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case strings.Contains(err.Error(), "not found"):
		return "not_found"
	default:
		return "internal"
	}
}
