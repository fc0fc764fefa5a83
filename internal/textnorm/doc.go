// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package textnorm normalizes free text for the content-based recommender.
//
// Normalization is a lowercase pass followed by the classic Porter suffix
// stripping algorithm applied to every whitespace separated token:
//
//	textnorm.Normalize("Dark Comedies")   // "dark comedi"
//	textnorm.Stem("running adventure")     // "run adventur"
//
// The stemmer follows Martin Porter's reference implementation, including
// its two published departures from the 1980 paper ("bli" -> "ble" and the
// "logi" -> "log" rule in step 2). Words of one or two letters are returned
// unchanged. Substituting another stemmer (Porter2/Snowball, Lancaster)
// changes the vocabulary and therefore the similarity scores.
//
// All functions are pure and safe for concurrent use.
package textnorm
