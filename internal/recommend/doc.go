// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend blends two recommendation signals for a single seed
// movie into one slate.
//
// # Signals
//
//   - Content: cosine similarity of stemmed genre and tag profiles
//   - Collaborative: Pearson correlation of user rating columns
//
// Both are implemented in the algorithms subpackage and plugged into the
// Engine through the Algorithm interface.
//
// # Combination
//
// Combine keeps titles ranked by both signals first, in collaborative
// order, then pads from the content ranking and finally from the remaining
// collaborative titles. The slate never contains duplicates.
//
// # Errors
//
// Two conditions are recoverable and accompany a non-nil Response:
//
//   - ErrNotFound: the seed title has no content profile; the content list
//     is empty but the collaborative list is still computed
//   - ErrInsufficientResults: fewer than SlateSize distinct titles exist
//
// They are joined with errors.Join, so callers test with errors.Is:
//
//	resp, err := engine.Recommend(ctx, "Toy Story (1995)")
//	if err != nil && !recommend.IsRecoverable(err) {
//	    return err
//	}
//	panels := recommend.BuildPanels(resp, 5, err)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Algorithms are trained once over
// an immutable dataset, and every query only reads the trained state.
// Complete responses are memoized in an LRU cache keyed by title.
package recommend
