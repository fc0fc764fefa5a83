// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package cache provides an in-memory LRU cache with TTL expiration.
//
// The recommendation engine uses it to memoize complete responses per query
// title; the dataset is immutable, so a cached response stays correct for
// the life of the process and the TTL only bounds memory residency.
//
//	c := cache.NewLRU[string, *recommend.Response](1024, 10*time.Minute)
//	c.Add(title, resp)
//	if resp, ok := c.Get(title); ok {
//	    // serve from cache
//	}
package cache
