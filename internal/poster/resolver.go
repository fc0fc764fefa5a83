// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Poster is the resolved artwork for one title.
type Poster struct {
	Title      string `json:"title"`
	MovieID    int64  `json:"movie_id,omitempty"`
	ExternalID int64  `json:"tmdb_id,omitempty"`
	URL        string `json:"url"`
	Cached     bool   `json:"cached"`

	// Err is set by ResolveAll for entries that could not be resolved.
	Err error `json:"-"`
}

// Resolver maps titles to poster URLs.
type Resolver struct {
	ds        *dataset.Dataset
	fetcher   MetadataFetcher
	store     *Store
	imageBase string
	now       func() time.Time
}

// NewResolver creates a resolver. store may be nil to disable caching.
func NewResolver(ds *dataset.Dataset, fetcher MetadataFetcher, store *Store, imageBaseURL string) (*Resolver, error) {
	if ds == nil {
		return nil, errors.New("poster: dataset is required")
	}
	if fetcher == nil {
		return nil, errors.New("poster: metadata fetcher is required")
	}
	if imageBaseURL == "" {
		return nil, errors.New("poster: image base url is required")
	}
	return &Resolver{
		ds:        ds,
		fetcher:   fetcher,
		store:     store,
		imageBase: strings.TrimRight(imageBaseURL, "/"),
		now:       time.Now,
	}, nil
}

// Resolve returns the poster for title. Errors wrap ErrUnknownTitle,
// ErrNoExternalID or ErrNoPoster, or report a metadata service failure.
func (r *Resolver) Resolve(ctx context.Context, title string) (Poster, error) {
	p := Poster{Title: title}

	movie, ok := r.ds.MovieByTitle(title)
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrUnknownTitle, title)
	}
	p.MovieID = movie.ID

	link, ok := r.ds.Link(movie.ID)
	if !ok || link.ExternalID == nil {
		metrics.RecordPosterLookup("catalog", "missing")
		return p, fmt.Errorf("%w: movie %d", ErrNoExternalID, movie.ID)
	}
	p.ExternalID = *link.ExternalID

	if entry, hit := r.cached(p.ExternalID); hit {
		p.Cached = true
		if entry.Missing {
			metrics.RecordPosterLookup("cache", "missing")
			return p, fmt.Errorf("%w: tmdb %d", ErrNoPoster, p.ExternalID)
		}
		metrics.RecordPosterLookup("cache", "ok")
		p.URL = r.imageURL(entry.Path)
		return p, nil
	}

	path, err := r.fetcher.PosterPath(ctx, p.ExternalID)
	switch {
	case errors.Is(err, ErrNoPoster):
		metrics.RecordPosterLookup("remote", "missing")
		r.remember(p.ExternalID, CacheEntry{Missing: true, FetchedAt: r.now()})
		return p, fmt.Errorf("%w: tmdb %d", ErrNoPoster, p.ExternalID)
	case err != nil:
		metrics.RecordPosterLookup("remote", "error")
		return p, err
	}

	metrics.RecordPosterLookup("remote", "ok")
	r.remember(p.ExternalID, CacheEntry{Path: path, FetchedAt: r.now()})
	p.URL = r.imageURL(path)
	return p, nil
}

// ResolveAll resolves every title, in order. Failures leave URL empty and
// set Err; ResolveAll itself never fails.
func (r *Resolver) ResolveAll(ctx context.Context, titles []string) []Poster {
	out := make([]Poster, len(titles))
	for i, title := range titles {
		p, err := r.Resolve(ctx, title)
		if err != nil {
			p.URL = ""
			p.Err = err
			if !isExpected(err) {
				logging.Ctx(ctx).Warn().Err(err).Str("title", title).Msg("poster lookup failed")
			}
		}
		out[i] = p
	}
	return out
}

func (r *Resolver) cached(externalID int64) (CacheEntry, bool) {
	if r.store == nil {
		return CacheEntry{}, false
	}
	entry, ok, err := r.store.Get(externalID)
	if err != nil {
		logging.Warn().Err(err).Int64("tmdb_id", externalID).Msg("poster cache read failed")
		return CacheEntry{}, false
	}
	return entry, ok
}

func (r *Resolver) remember(externalID int64, entry CacheEntry) {
	if r.store == nil {
		return
	}
	if err := r.store.Put(externalID, entry); err != nil {
		logging.Warn().Err(err).Int64("tmdb_id", externalID).Msg("poster cache write failed")
	}
}

func (r *Resolver) imageURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.imageBase + path
}

func isExpected(err error) bool {
	return errors.Is(err, ErrNoPoster) || errors.Is(err, ErrNoExternalID) || errors.Is(err, ErrUnknownTitle)
}
