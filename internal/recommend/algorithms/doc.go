// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package algorithms implements the two recommendation signals used by the
// engine.
//
// # Content-Based
//
// ContentBased builds one profile per movie from its tags and genres,
// lowercases and stems it, counts terms over a vocabulary capped at the
// most frequent MaxFeatures terms (English stop words excluded) and ranks
// movies by cosine similarity to the seed.
//
// The SimilarityMatrix is virtual: rows are computed on demand from
// L2-normalized sparse vectors through an inverted index, so memory stays
// linear in the number of non-zero counts. It carries an explicit movie id
// to row mapping instead of relying on positional alignment.
//
// # Collaborative
//
// Collaborative pivots ratings into a title by user RatingMatrix, with
// absent cells kept absent, and ranks titles by pairwise-complete Pearson
// correlation against the seed column. Titles with an undefined
// correlation or with SupportFloor ratings or fewer are dropped.
//
// # Thread Safety
//
// Training acquires an exclusive lock while ranking uses a shared lock.
package algorithms
