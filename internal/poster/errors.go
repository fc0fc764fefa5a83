// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import "errors"

var (
	// ErrUnknownTitle is returned for a title absent from the catalog.
	ErrUnknownTitle = errors.New("poster: unknown title")

	// ErrNoExternalID is returned when the movie has no TMDB link.
	ErrNoExternalID = errors.New("poster: movie has no external id")

	// ErrNoPoster is returned when the metadata service has no poster for the movie.
	ErrNoPoster = errors.New("poster: no poster available")
)
