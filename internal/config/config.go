// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
)

// Config holds all application configuration.
//
// Loading order (later layers win):
//  1. Defaults from defaultConfig
//  2. YAML file (CONFIG_PATH, ./config.yaml, /etc/reelmatch/config.yaml)
//  3. Environment variables listed in envMappings
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Poster    PosterConfig    `koanf:"poster"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the MovieLens-style CSV tables.
//
// Environment Variables:
//   - MOVIES_PATH, LINKS_PATH, RATINGS_PATH, TAGS_PATH
//   - DUCKDB_PATH: database file used while parsing (default: in-memory)
//   - DUCKDB_THREADS: parser threads (default: 4)
type DataConfig struct {
	MoviesPath    string `koanf:"movies_path"`
	LinksPath     string `koanf:"links_path"`
	RatingsPath   string `koanf:"ratings_path"`
	TagsPath      string `koanf:"tags_path"`
	DuckDBPath    string `koanf:"duckdb_path"`
	DuckDBThreads int    `koanf:"duckdb_threads"`
}

// RecommendConfig holds engine and algorithm settings.
type RecommendConfig struct {
	// SupportFloor drops collaborative candidates with this many ratings or fewer.
	SupportFloor int `koanf:"support_floor"`

	// ContentLimit is the length of the content ranking.
	ContentLimit int `koanf:"content_limit"`

	// MaxFeatures caps the content vocabulary.
	MaxFeatures int `koanf:"max_features"`

	SlateSize int `koanf:"slate_size"`
	PanelSize int `koanf:"panel_size"`

	// IncludeQueryInCollaborative keeps the seed title at the head of the
	// collaborative ranking.
	IncludeQueryInCollaborative bool `koanf:"include_query_in_collaborative"`

	Parallel        bool          `koanf:"parallel"`
	Workers         int           `koanf:"workers"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
}

// PosterConfig configures the poster resolver.
//
// Environment Variables:
//   - POSTER_ENABLED: resolve posters (default: false)
//   - TMDB_API_KEY: metadata API key; required when enabled
//   - POSTER_CACHE_PATH: badger directory; empty keeps the cache in memory
type PosterConfig struct {
	Enabled            bool          `koanf:"enabled"`
	APIKey             string        `koanf:"api_key"`
	BaseURL            string        `koanf:"base_url"`
	ImageBaseURL       string        `koanf:"image_base_url"`
	Language           string        `koanf:"language"`
	Timeout            time.Duration `koanf:"timeout"`
	RateLimitPerSecond float64       `koanf:"rate_limit_per_second"`
	RateBurst          int           `koanf:"rate_burst"`
	CachePath          string        `koanf:"cache_path"`
	CacheTTL           time.Duration `koanf:"cache_ttl"`
	GCInterval         time.Duration `koanf:"gc_interval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// LoggingSettings converts to the logging package configuration.
func (c *Config) LoggingSettings() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
	}
}

// DataPaths converts to the dataset loader's inputs.
func (c *Config) DataPaths() (dataset.Paths, dataset.LoaderOptions) {
	return dataset.Paths{
			Movies:  c.Data.MoviesPath,
			Links:   c.Data.LinksPath,
			Ratings: c.Data.RatingsPath,
			Tags:    c.Data.TagsPath,
		}, dataset.LoaderOptions{
			DatabasePath: c.Data.DuckDBPath,
			Threads:      c.Data.DuckDBThreads,
		}
}

// EngineConfig converts to the recommendation engine configuration.
func (c *Config) EngineConfig() recommend.Config {
	return recommend.Config{
		SlateSize:    c.Recommend.SlateSize,
		PanelSize:    c.Recommend.PanelSize,
		Parallel:     c.Recommend.Parallel,
		QueryTimeout: c.Recommend.QueryTimeout,
		Cache: recommend.CacheConfig{
			Enabled:    c.Recommend.CacheEnabled,
			TTL:        c.Recommend.CacheTTL,
			MaxEntries: c.Recommend.CacheMaxEntries,
		},
	}
}

// ContentConfig converts to the content algorithm configuration.
func (c *Config) ContentConfig() algorithms.ContentConfig {
	return algorithms.ContentConfig{
		MaxFeatures: c.Recommend.MaxFeatures,
		Limit:       c.Recommend.ContentLimit,
	}
}

// CollaborativeConfig converts to the collaborative algorithm configuration.
func (c *Config) CollaborativeConfig() algorithms.CollaborativeConfig {
	return algorithms.CollaborativeConfig{
		SupportFloor: c.Recommend.SupportFloor,
		IncludeQuery: c.Recommend.IncludeQueryInCollaborative,
		NumWorkers:   c.Recommend.Workers,
	}
}

// PosterClientConfig converts to the metadata client configuration.
func (c *Config) PosterClientConfig() poster.ClientConfig {
	return poster.ClientConfig{
		APIKey:             c.Poster.APIKey,
		BaseURL:            c.Poster.BaseURL,
		Language:           c.Poster.Language,
		Timeout:            c.Poster.Timeout,
		RateLimitPerSecond: c.Poster.RateLimitPerSecond,
		RateBurst:          c.Poster.RateBurst,
	}
}

// Load reads configuration from defaults, the first config file found and
// the environment.
func Load() (*Config, error) {
	return LoadWithKoanf(findConfigFile())
}
