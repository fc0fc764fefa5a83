// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package middleware provides the HTTP middleware specific to reelmatch:
// request IDs wired into the logging context, Prometheus instrumentation
// keyed by chi route pattern, and structured access logging. Generic
// concerns (recovery, real IP, CORS, rate limiting) come from chi and its
// companion modules and are assembled in the api package.
package middleware
