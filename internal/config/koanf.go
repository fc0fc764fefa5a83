// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns the built-in defaults without reading files or the
// environment.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			MoviesPath:    "data/movies.csv",
			LinksPath:     "data/links.csv",
			RatingsPath:   "data/ratings.csv",
			TagsPath:      "data/tags.csv",
			DuckDBPath:    ":memory:",
			DuckDBThreads: 4,
		},
		Recommend: RecommendConfig{
			SupportFloor:                100,
			ContentLimit:                100,
			MaxFeatures:                 5000,
			SlateSize:                   5,
			PanelSize:                   5,
			IncludeQueryInCollaborative: false,
			Parallel:                    true,
			Workers:                     4,
			CacheEnabled:                true,
			CacheTTL:                    10 * time.Minute,
			CacheMaxEntries:             1024,
			QueryTimeout:                30 * time.Second,
		},
		Poster: PosterConfig{
			Enabled:            false,
			BaseURL:            "https://api.themoviedb.org/3",
			ImageBaseURL:       "https://image.tmdb.org/t/p/w500",
			Language:           "en-US",
			Timeout:            10 * time.Second,
			RateLimitPerSecond: 20,
			RateBurst:          5,
			CachePath:          "",
			CacheTTL:           7 * 24 * time.Hour,
			GCInterval:         10 * time.Minute,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: struct defaults, the
// YAML file at path (skipped when path is empty) and mapped environment
// variables. The result is validated.
func LoadWithKoanf(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variables (lowercased) to config paths.
// Unlisted variables are ignored so the process environment cannot leak
// into the config tree.
var envMappings = map[string]string{
	"movies_path":    "data.movies_path",
	"links_path":     "data.links_path",
	"ratings_path":   "data.ratings_path",
	"tags_path":      "data.tags_path",
	"duckdb_path":    "data.duckdb_path",
	"duckdb_threads": "data.duckdb_threads",

	"support_floor":                  "recommend.support_floor",
	"content_limit":                  "recommend.content_limit",
	"max_features":                   "recommend.max_features",
	"slate_size":                     "recommend.slate_size",
	"panel_size":                     "recommend.panel_size",
	"include_query_in_collaborative": "recommend.include_query_in_collaborative",
	"recommend_parallel":             "recommend.parallel",
	"recommend_workers":              "recommend.workers",
	"recommend_cache_enabled":        "recommend.cache_enabled",
	"recommend_cache_ttl":            "recommend.cache_ttl",
	"recommend_cache_max_entries":    "recommend.cache_max_entries",
	"recommend_query_timeout":        "recommend.query_timeout",

	"poster_enabled":               "poster.enabled",
	"tmdb_api_key":                 "poster.api_key",
	"tmdb_base_url":                "poster.base_url",
	"tmdb_image_base_url":          "poster.image_base_url",
	"tmdb_language":                "poster.language",
	"poster_timeout":               "poster.timeout",
	"poster_rate_limit_per_second": "poster.rate_limit_per_second",
	"poster_rate_burst":            "poster.rate_burst",
	"poster_cache_path":            "poster.cache_path",
	"poster_cache_ttl":             "poster.cache_ttl",
	"poster_gc_interval":           "poster.gc_interval",

	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its config path,
// or "" to skip it.
//
//   - TMDB_API_KEY -> poster.api_key
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
