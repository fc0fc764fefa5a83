// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ValueLogCollector runs one value-log GC pass. *poster.Store satisfies it.
// rewritten is true when a log file was reclaimed.
type ValueLogCollector interface {
	RunGC() (rewritten bool, err error)
}

// maxGCPassesPerTick bounds back-to-back passes while files keep getting
// rewritten.
const maxGCPassesPerTick = 8

// CacheGCService periodically compacts the poster cache.
type CacheGCService struct {
	store    ValueLogCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheGCService creates the GC loop. A non-positive interval means 10m.
func NewCacheGCService(store ValueLogCollector, interval time.Duration, logger zerolog.Logger) *CacheGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CacheGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "poster-cache-gc").Logger(),
	}
}

// Serve implements suture.Service. GC errors are logged, not returned: a
// failed pass is retried on the next tick without a restart.
func (s *CacheGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("poster cache GC running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

// collect repeats GC while it keeps reclaiming files, as badger recommends.
func (s *CacheGCService) collect(ctx context.Context) {
	start := time.Now()
	passes := 0
	for passes < maxGCPassesPerTick {
		if ctx.Err() != nil {
			return
		}
		rewritten, err := s.store.RunGC()
		if err != nil {
			s.logger.Warn().Err(err).Msg("poster cache GC failed")
			return
		}
		if !rewritten {
			break
		}
		passes++
	}
	if passes > 0 {
		s.logger.Info().Int("rewritten", passes).Dur("duration", time.Since(start)).Msg("poster cache compacted")
	}
}

// String implements fmt.Stringer; suture logs services by this name.
func (s *CacheGCService) String() string {
	return "poster-cache-gc"
}
