// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

// MaxTitleLength bounds title parameters; the longest catalog title is far
// shorter.
const MaxTitleLength = 500

// MaxListLimit bounds limit and k parameters.
const MaxListLimit = 1000

// MovieSearchRequest is GET /api/v1/movies.
type MovieSearchRequest struct {
	Query string `query:"q" validate:"max=200,nocontrol"`
	Limit int    `query:"limit" validate:"min=1,max=1000"`
}

// RecommendRequest is GET /api/v1/recommendations.
type RecommendRequest struct {
	Title   string `query:"title" validate:"required,notblank,max=500,nocontrol"`
	Posters bool   `query:"posters"`
}

// RankRequest is GET /api/v1/recommendations/{content,collaborative}.
type RankRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500,nocontrol"`
	K     int    `query:"k" validate:"min=1,max=1000"`
}

// PosterRequest is GET /api/v1/posters.
type PosterRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500,nocontrol"`
}
