// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP REST API for Reelmatch.

The API backs the movie picker UI: a title list for the selection widget, the
combined recommendation slate with its two supplementary panels, raw
per-algorithm rankings, and poster artwork.

Endpoints:

	GET /api/v1/health/live                          liveness probe
	GET /api/v1/health/ready                         503 until both models are trained
	GET /api/v1/movies?q=&limit=                     catalog titles (default limit 50)
	GET /api/v1/recommendations?title=&posters=      slate + panels + notices
	GET /api/v1/recommendations/content?title=&k=    content ranking
	GET /api/v1/recommendations/collaborative?title=&k=
	GET /api/v1/posters?title=                       single poster
	GET /metrics                                     Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Status codes for /recommendations:

  - 200 when at least one engine produced a list. Partial slates carry
    "partial": true and a notice; a thin collaborative list carries the
    "lack of user ratings" notice.
  - 404 when neither engine knows the title.
  - 400 for a missing, blank or oversized title.
  - 503 before the models are trained, 504 when the query timeout fires.

Middleware Stack (in order):

 1. RequestID: X-Request-ID propagation and logging context
 2. RealIP and Recoverer (chi)
 3. AccessLog: structured request logging
 4. CORS (go-chi/cors)
 5. Per-group: httprate limiter, security headers, Prometheus, compression

Thread Safety:

Handlers hold only read-only references to the dataset and the engine, both
of which are safe for concurrent use.
*/
package api
