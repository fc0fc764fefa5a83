// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains engine-level configuration. Algorithm parameters live
// with the algorithms themselves.
type Config struct {
	// SlateSize is the length of the combined slate.
	SlateSize int `json:"slate_size"`

	// PanelSize caps each supplementary panel shown to users.
	PanelSize int `json:"panel_size"`

	// Parallel runs the two algorithms concurrently.
	Parallel bool `json:"parallel"`

	// QueryTimeout bounds a single recommendation computation.
	QueryTimeout time.Duration `json:"query_timeout"`

	Cache CacheConfig `json:"cache"`
}

// CacheConfig controls memoization of complete responses.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		SlateSize:    5,
		PanelSize:    5,
		Parallel:     true,
		QueryTimeout: 30 * time.Second,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SlateSize <= 0 {
		return fmt.Errorf("slate_size must be positive, got %d", c.SlateSize)
	}
	if c.PanelSize <= 0 {
		return fmt.Errorf("panel_size must be positive, got %d", c.PanelSize)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query_timeout must be positive, got %v", c.QueryTimeout)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		QueryTimeout string `json:"query_timeout"`
		Cache        struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		} `json:"cache"`
	}{
		Alias:        (*Alias)(c),
		QueryTimeout: c.QueryTimeout.String(),
		Cache: struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		}{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
