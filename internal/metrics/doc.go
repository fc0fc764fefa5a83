// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
are exposed by the API server at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - reelmatch_recommend_duration_seconds: Ranking latency (histogram)
    Labels: algorithm (content_based, collaborative)
  - reelmatch_recommend_results: Titles returned per ranking (histogram)
    Labels: algorithm
  - reelmatch_recommend_errors_total: Ranking failures (counter)
    Labels: algorithm, error_type (timeout, canceled, not_found, internal)
  - reelmatch_recommend_outcomes_total: Requests by outcome (counter)
    Labels: outcome (ok, not_found, insufficient, error)
  - reelmatch_recommend_cache_total: Response cache lookups (counter)
    Labels: result (hit, miss)

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Poster Metrics:
  - reelmatch_poster_lookups_total: Lookups by source and result (counter)
  - reelmatch_poster_fetch_duration_seconds: Remote metadata latency (histogram)
  - circuit_breaker_*: State, requests, failures and transitions of the
    breaker guarding the metadata service

Dataset and Maintenance Metrics:
  - reelmatch_dataset_rows: Rows per base table after load (gauge)
  - reelmatch_badger_gc_runs_total: Poster cache GC runs (counter)

Example PromQL queries:

	# p95 recommendation latency per algorithm
	histogram_quantile(0.95, sum by (le, algorithm) (rate(reelmatch_recommend_duration_seconds_bucket[5m])))

	# Response cache hit ratio
	sum(rate(reelmatch_recommend_cache_total{result="hit"}[5m])) / sum(rate(reelmatch_recommend_cache_total[5m]))

# Cardinality Management

Label values are drawn from small fixed sets. Endpoints are recorded by chi
route pattern, never by raw URL, so movie titles never become label values.

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
