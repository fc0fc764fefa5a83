// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks that the configuration is complete and in range.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateData,
		c.validateRecommend,
		c.validatePoster,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.MoviesPath == "" {
		return errors.New("MOVIES_PATH is required")
	}
	if c.Data.RatingsPath == "" {
		return errors.New("RATINGS_PATH is required")
	}
	if c.Data.DuckDBThreads < 1 || c.Data.DuckDBThreads > 256 {
		return fmt.Errorf("DUCKDB_THREADS must be between 1 and 256, got %d", c.Data.DuckDBThreads)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.SupportFloor < 0 {
		return fmt.Errorf("SUPPORT_FLOOR must be non-negative, got %d", r.SupportFloor)
	}
	if r.ContentLimit < 1 {
		return fmt.Errorf("CONTENT_LIMIT must be positive, got %d", r.ContentLimit)
	}
	if r.MaxFeatures < 1 {
		return fmt.Errorf("MAX_FEATURES must be positive, got %d", r.MaxFeatures)
	}
	if r.Workers < 1 || r.Workers > 256 {
		return fmt.Errorf("RECOMMEND_WORKERS must be between 1 and 256, got %d", r.Workers)
	}
	engine := c.EngineConfig()
	if err := engine.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validatePoster() error {
	p := c.Poster
	if !p.Enabled {
		return nil
	}
	if p.APIKey == "" {
		return errors.New("TMDB_API_KEY is required when POSTER_ENABLED=true")
	}
	if err := validateHTTPURL(p.BaseURL, "TMDB_BASE_URL", true); err != nil {
		return err
	}
	if err := validateHTTPURL(p.ImageBaseURL, "TMDB_IMAGE_BASE_URL", true); err != nil {
		return err
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("POSTER_TIMEOUT must be positive, got %v", p.Timeout)
	}
	if p.RateLimitPerSecond <= 0 || p.RateBurst < 1 {
		return fmt.Errorf("poster rate limit must be positive, got %v/s burst %d", p.RateLimitPerSecond, p.RateBurst)
	}
	if p.CacheTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_TTL must be positive, got %v", p.CacheTTL)
	}
	if p.GCInterval < time.Minute {
		return fmt.Errorf("POSTER_GC_INTERVAL must be at least 1m, got %v", p.GCInterval)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, disabled; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
