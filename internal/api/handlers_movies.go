// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// DefaultMovieLimit is used when /movies is called without a limit.
const DefaultMovieLimit = 50

// Movies handles GET /api/v1/movies?q=&limit=
// Returns catalog titles for the selection widget, in movie id order.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit, err := queryInt(r, "limit", DefaultMovieLimit)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := validation.MovieSearchRequest{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	}
	if !validateRequest(rw, &req) {
		return
	}

	// One extra row tells us whether the list was truncated.
	titles := h.ds.SearchTitles(req.Query, req.Limit+1)
	hasMore := len(titles) > req.Limit
	if hasMore {
		titles = titles[:req.Limit]
	}
	if titles == nil {
		titles = []string{}
	}

	rw.SuccessWithPagination(titles, &PaginationMeta{
		Count:   len(titles),
		Limit:   req.Limit,
		HasMore: hasMore,
	})
}
