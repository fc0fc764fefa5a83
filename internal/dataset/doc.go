// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset holds the four MovieLens base tables used by the
// recommenders: movies, links, ratings and tags.
//
// # Lifecycle
//
// A Dataset is built once at process start, either from in-memory rows via
// New or from CSV files via LoadCSV, and is shared read-only by every
// recommendation request afterwards. Nothing in the package mutates a
// Dataset after construction, so it is safe for concurrent use without
// locking.
//
// # Validation
//
// Joins between the tables are keyed on movie id everywhere. New validates
// the rows once, up front:
//
//   - movie ids must be positive and unique
//   - movie titles must be non-empty
//   - rating values must be finite
//   - ratings, tags and links that reference an unknown movie are dropped
//     and counted in Stats rather than failing the load
//
// Movies are stored in ascending id order. The content recommender relies
// on that order for its row index, and its tie breaking follows from it.
//
// # Loading
//
// LoadCSV reads the standard MovieLens CSV layout (movies.csv, links.csv,
// ratings.csv, tags.csv) through an embedded DuckDB instance:
//
//	ds, err := dataset.LoadCSV(ctx, dataset.Paths{
//	    Movies:  "data/movies.csv",
//	    Links:   "data/links.csv",
//	    Ratings: "data/ratings.csv",
//	    Tags:    "data/tags.csv",
//	}, dataset.LoaderOptions{})
package dataset
