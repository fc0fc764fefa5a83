// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// DefaultRankK is the list length for the raw ranking endpoints.
const DefaultRankK = 10

// PosterView is one slate entry's artwork. URL is empty when none was found.
type PosterView struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RecommendationView is the payload of GET /api/v1/recommendations.
type RecommendationView struct {
	recommend.Panels
	Posters  []PosterView               `json:"posters,omitempty"`
	Metadata recommend.ResponseMetadata `json:"metadata"`
}

// RankingView is the payload of the single-algorithm endpoints.
type RankingView struct {
	Query     string                  `json:"query"`
	Algorithm string                  `json:"algorithm"`
	Items     []recommend.ScoredTitle `json:"items"`
}

// Recommendations handles GET /api/v1/recommendations?title=&posters=
//
// A title unknown to both engines is a 404. A title that only one engine
// knows still yields 200 with whatever that engine found, plus notices.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	withPosters, err := queryBool(r, "posters")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := validation.RecommendRequest{
		Title:   r.URL.Query().Get("title"),
		Posters: withPosters,
	}
	if !validateRequest(rw, &req) {
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req.Title)
	if resp == nil {
		h.writeEngineError(rw, err)
		return
	}
	if errors.Is(err, recommend.ErrNotFound) && len(resp.Content) == 0 && len(resp.Collaborative) == 0 {
		rw.NotFound("unknown title: " + req.Title)
		return
	}

	view := RecommendationView{
		Panels:   recommend.BuildPanels(resp, h.config.Recommend.PanelSize, err),
		Metadata: resp.Metadata,
	}
	if req.Posters && h.posters != nil {
		view.Posters = h.slatePosters(r.Context(), view.Slate)
	}

	logging.Ctx(r.Context()).Debug().
		Str("title", sanitizeLogValue(req.Title)).
		Int("slate", len(view.Slate)).
		Bool("partial", view.Partial).
		Msg("Recommendations served")

	rw.Success(view)
}

// ContentRanking handles GET /api/v1/recommendations/content?title=&k=
func (h *Handler) ContentRanking(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "content", h.engine.RecommendByContent)
}

// CollaborativeRanking handles GET /api/v1/recommendations/collaborative?title=&k=
func (h *Handler) CollaborativeRanking(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "collaborative", h.engine.RecommendByCollaboration)
}

type rankFunc func(ctx context.Context, title string) ([]recommend.ScoredTitle, error)

func (h *Handler) ranking(w http.ResponseWriter, r *http.Request, algorithm string, rank rankFunc) {
	rw := NewResponseWriter(w, r)

	k, err := queryInt(r, "k", DefaultRankK)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req := validation.RankRequest{
		Title: r.URL.Query().Get("title"),
		K:     k,
	}
	if !validateRequest(rw, &req) {
		return
	}

	items, err := rank(r.Context(), req.Title)
	if errors.Is(err, recommend.ErrNotFound) {
		rw.NotFound("unknown title: " + req.Title)
		return
	}
	if err != nil {
		h.writeEngineError(rw, err)
		return
	}
	if len(items) > req.K {
		items = items[:req.K]
	}

	rw.Success(RankingView{
		Query:     req.Title,
		Algorithm: algorithm,
		Items:     items,
	})
}

func (h *Handler) slatePosters(ctx context.Context, slate []string) []PosterView {
	resolved := h.posters.ResolveAll(ctx, slate)
	out := make([]PosterView, len(resolved))
	for i, p := range resolved {
		out[i] = PosterView{Title: p.Title, URL: p.URL}
	}
	return out
}

// writeEngineError maps hard engine failures to status codes.
func (h *Handler) writeEngineError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotTrained):
		rw.ServiceUnavailable("recommendation models are not ready")
	case errors.Is(err, context.DeadlineExceeded):
		rw.GatewayTimeout("recommendation timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		rw.Error(499, "CLIENT_CLOSED_REQUEST", "request canceled")
	default:
		rw.InternalError("Failed to generate recommendations", err)
	}
}

var _ PosterResolver = (*poster.Resolver)(nil)
