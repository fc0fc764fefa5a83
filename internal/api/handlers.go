// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// PosterResolver looks up artwork for titles. *poster.Resolver satisfies it.
type PosterResolver interface {
	Resolve(ctx context.Context, title string) (poster.Poster, error)
	ResolveAll(ctx context.Context, titles []string) []poster.Poster
}

// Handler serves every API endpoint.
type Handler struct {
	engine    *recommend.Engine
	ds        *dataset.Dataset
	posters   PosterResolver
	config    *config.Config
	startTime time.Time
}

// NewHandler creates the API handler. posters may be nil when poster
// lookups are disabled.
func NewHandler(engine *recommend.Engine, ds *dataset.Dataset, posters PosterResolver, cfg *config.Config) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("api: recommendation engine is required")
	}
	if ds == nil {
		return nil, errors.New("api: dataset is required")
	}
	if cfg == nil {
		return nil, errors.New("api: config is required")
	}
	return &Handler{
		engine:    engine,
		ds:        ds,
		posters:   posters,
		config:    cfg,
		startTime: time.Now(),
	}, nil
}

// ClearCache drops memoized recommendations.
func (h *Handler) ClearCache() {
	h.engine.ClearCache()
}
