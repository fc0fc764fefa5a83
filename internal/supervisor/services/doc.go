// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for Reelmatch components.

Each wrapper implements suture's Serve(ctx) error and fmt.Stringer:

  - HTTPServerService: runs *http.Server, shutting it down gracefully when
    the supervisor context is canceled. Bind failures are returned so the
    supervisor can back off and retry.
  - CacheGCService: runs badger value-log GC on the poster cache every
    interval, repeating while passes keep reclaiming files.
*/
package services
