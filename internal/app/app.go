// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package app assembles the recommendation stack from configuration. Both
// the HTTP server and the CLI start from Build.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
)

// App is a loaded dataset with trained models and, optionally, a poster
// resolver.
type App struct {
	Config  *config.Config
	Dataset *dataset.Dataset
	Engine  *recommend.Engine

	// Posters and PosterStore are nil when poster lookups are disabled.
	// PosterStore is also nil when the cache is disabled.
	Posters     *poster.Resolver
	PosterStore *poster.Store
	Breaker     *poster.BreakerFetcher
}

// Build loads the dataset, trains both algorithms and wires the poster
// resolver. The caller must Close the result.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	log := logger.With().Str("component", "bootstrap").Logger()

	paths, opts := cfg.DataPaths()
	ds, err := dataset.LoadCSV(ctx, paths, opts)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	engineCfg := cfg.EngineConfig()
	engine, err := recommend.NewEngine(
		&engineCfg,
		algorithms.NewContentBased(cfg.ContentConfig()),
		algorithms.NewCollaborative(cfg.CollaborativeConfig()),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	start := time.Now()
	if err := engine.Train(ctx, ds); err != nil {
		return nil, fmt.Errorf("train models: %w", err)
	}
	log.Info().
		Int("support_floor", cfg.Recommend.SupportFloor).
		Int("max_features", cfg.Recommend.MaxFeatures).
		Dur("duration", time.Since(start)).
		Msg("Models trained")

	a := &App{Config: cfg, Dataset: ds, Engine: engine}
	if !cfg.Poster.Enabled {
		log.Info().Msg("Poster lookups disabled")
		return a, nil
	}
	if err := a.wirePosters(log); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func (a *App) wirePosters(log zerolog.Logger) error {
	cfg := a.Config

	client, err := poster.NewClient(cfg.PosterClientConfig())
	if err != nil {
		return fmt.Errorf("create poster client: %w", err)
	}
	a.Breaker = poster.NewBreakerFetcher(client, poster.DefaultBreakerConfig())

	if cfg.Poster.CacheTTL > 0 {
		store, err := poster.OpenStore(cfg.Poster.CachePath, cfg.Poster.CacheTTL)
		if err != nil {
			return fmt.Errorf("open poster cache: %w", err)
		}
		a.PosterStore = store
	}

	resolver, err := poster.NewResolver(a.Dataset, a.Breaker, a.PosterStore, cfg.Poster.ImageBaseURL)
	if err != nil {
		return fmt.Errorf("create poster resolver: %w", err)
	}
	a.Posters = resolver

	log.Info().
		Str("base_url", cfg.Poster.BaseURL).
		Bool("cache", a.PosterStore != nil).
		Str("cache_path", cfg.Poster.CachePath).
		Msg("Poster lookups enabled")
	return nil
}

// Close releases the poster cache.
func (a *App) Close() error {
	if a.PosterStore == nil {
		return nil
	}
	return a.PosterStore.Close()
}
