// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Poster handles GET /api/v1/posters?title=
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.posters == nil {
		rw.ServiceUnavailable("poster lookups are disabled")
		return
	}

	req := validation.PosterRequest{Title: r.URL.Query().Get("title")}
	if !validateRequest(rw, &req) {
		return
	}

	p, err := h.posters.Resolve(r.Context(), req.Title)
	switch {
	case err == nil:
		rw.Success(p)
	case errors.Is(err, poster.ErrUnknownTitle):
		rw.NotFound("unknown title: " + req.Title)
	case errors.Is(err, poster.ErrNoExternalID), errors.Is(err, poster.ErrNoPoster):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeNoPoster, "no poster available", p)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		rw.ServiceUnavailable("poster service temporarily unavailable")
	default:
		rw.ExternalServiceError("tmdb", err)
	}
}
