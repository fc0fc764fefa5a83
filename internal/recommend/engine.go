// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// cachedResult keeps the recoverable error alongside the response so a
// cache hit reports the same conditions as the original computation.
type cachedResult struct {
	resp *Response
	err  error
}

// Engine blends the content and collaborative signals into one response.
type Engine struct {
	content       Algorithm
	collaborative Algorithm

	config   *Config
	configMu sync.RWMutex

	cache *cache.LRU[string, cachedResult]

	logger zerolog.Logger

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	notFound     atomic.Int64
	insufficient atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates an engine over two algorithms. The algorithms are
// trained separately via Train.
func NewEngine(cfg *Config, content, collaborative Algorithm, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if content == nil || collaborative == nil {
		return nil, errors.New("both content and collaborative algorithms are required")
	}

	e := &Engine{
		content:       content,
		collaborative: collaborative,
		config:        cfg.Clone(),
		logger:        logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[string, cachedResult](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Train fits both algorithms on the dataset, concurrently.
func (e *Engine) Train(ctx context.Context, ds *dataset.Dataset) error {
	start := time.Now()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, alg := range []Algorithm{e.content, e.collaborative} {
		wg.Add(1)
		go func(i int, alg Algorithm) {
			defer wg.Done()
			algStart := time.Now()
			if err := alg.Train(ctx, ds); err != nil {
				errs[i] = fmt.Errorf("train %s: %w", alg.Name(), err)
				return
			}
			e.logger.Info().
				Str("algorithm", alg.Name()).
				Int("version", alg.Version()).
				Dur("duration", time.Since(algStart)).
				Msg("Algorithm trained")
		}(i, alg)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}

	e.ClearCache()
	e.logger.Info().Dur("duration", time.Since(start)).Msg("Recommendation models ready")
	return nil
}

// IsReady reports whether both algorithms are trained.
func (e *Engine) IsReady() bool {
	return e.content.IsTrained() && e.collaborative.IsTrained()
}

// Recommend computes the combined slate and both rankings for title.
//
// The returned error is either nil, a hard failure (nil response), or a
// join of ErrNotFound and ErrInsufficientResults accompanying a usable
// response. Use IsRecoverable or errors.Is to tell them apart.
func (e *Engine) Recommend(ctx context.Context, title string) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)
	cfg := e.GetConfig()
	log := e.requestLogger(ctx, title)

	if cached, ok := e.tryGetCached(title); ok {
		resp := cached.resp.clone()
		resp.Metadata.CacheHit = true
		resp.Metadata.RequestID = logging.RequestIDFromContext(ctx)
		log.Debug().Msg("Served recommendation from cache")
		e.recordOutcome(cached.err)
		return resp, cached.err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	content, collaborative, err := e.rankBoth(ctx, title, cfg.Parallel)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecommendOutcomes.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Recommendation failed")
		return nil, err
	}

	var contentErr error
	if content.err != nil {
		contentErr = content.err
		log.Debug().Err(content.err).Msg("Content path aborted")
	}

	slate, combineErr := Combine(Titles(collaborative.items), Titles(content.items), cfg.SlateSize)

	resp := &Response{
		Query:         title,
		Top:           slate,
		Collaborative: nonNil(collaborative.items),
		Content:       nonNil(content.items),
		Metadata: ResponseMetadata{
			RequestID:              logging.RequestIDFromContext(ctx),
			GeneratedAt:            time.Now().UTC(),
			LatencyMS:              time.Since(start).Milliseconds(),
			ContentLatencyMS:       content.latency.Milliseconds(),
			CollaborativeLatencyMS: collaborative.latency.Milliseconds(),
			ModelVersions: map[string]int{
				e.content.Name():       e.content.Version(),
				e.collaborative.Name(): e.collaborative.Version(),
			},
		},
	}
	outErr := errors.Join(contentErr, combineErr)

	e.storeCache(title, resp, outErr)
	e.recordOutcome(outErr)

	log.Debug().
		Int("top", len(resp.Top)).
		Int("content", len(resp.Content)).
		Int("collaborative", len(resp.Collaborative)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("Recommendation computed")

	return resp, outErr
}

// RecommendByContent returns only the content ranking.
func (e *Engine) RecommendByContent(ctx context.Context, title string) ([]ScoredTitle, error) {
	r := e.runAlgorithm(ctx, e.content, title)
	return nonNil(r.items), r.err
}

// RecommendByCollaboration returns only the collaborative ranking.
func (e *Engine) RecommendByCollaboration(ctx context.Context, title string) ([]ScoredTitle, error) {
	r := e.runAlgorithm(ctx, e.collaborative, title)
	return nonNil(r.items), r.err
}

type rankResult struct {
	items   []ScoredTitle
	err     error
	latency time.Duration
}

// rankBoth runs both algorithms. A content ErrNotFound is kept on the
// content result; any other error from either side is returned as a hard
// failure.
func (e *Engine) rankBoth(ctx context.Context, title string, parallel bool) (content, collaborative rankResult, err error) {
	if parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			content = e.runAlgorithm(ctx, e.content, title)
		}()
		go func() {
			defer wg.Done()
			collaborative = e.runAlgorithm(ctx, e.collaborative, title)
		}()
		wg.Wait()
	} else {
		collaborative = e.runAlgorithm(ctx, e.collaborative, title)
		content = e.runAlgorithm(ctx, e.content, title)
	}

	if collaborative.err != nil {
		return content, collaborative, fmt.Errorf("collaborative ranking: %w", collaborative.err)
	}
	if content.err != nil && !errors.Is(content.err, ErrNotFound) {
		return content, collaborative, fmt.Errorf("content ranking: %w", content.err)
	}
	return content, collaborative, nil
}

func (e *Engine) runAlgorithm(ctx context.Context, alg Algorithm, title string) rankResult {
	start := time.Now()
	items, err := alg.Rank(ctx, title)
	latency := time.Since(start)
	metrics.RecordAlgorithmRun(alg.Name(), latency, len(items), err)
	return rankResult{items: items, err: err, latency: latency}
}

func (e *Engine) recordOutcome(err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		e.notFound.Add(1)
		metrics.RecommendOutcomes.WithLabelValues("not_found").Inc()
	case errors.Is(err, ErrInsufficientResults):
		e.insufficient.Add(1)
		metrics.RecommendOutcomes.WithLabelValues("insufficient").Inc()
	default:
		metrics.RecommendOutcomes.WithLabelValues("ok").Inc()
	}
}

func (e *Engine) requestLogger(ctx context.Context, title string) zerolog.Logger {
	l := e.logger.With().Str("title", title)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		l = l.Str("request_id", id)
	}
	return l.Logger()
}

func (e *Engine) tryGetCached(title string) (cachedResult, bool) {
	if e.cache == nil {
		return cachedResult{}, false
	}
	if c, ok := e.cache.Get(title); ok {
		e.cacheHits.Add(1)
		metrics.RecommendCache.WithLabelValues("hit").Inc()
		return c, true
	}
	e.cacheMisses.Add(1)
	metrics.RecommendCache.WithLabelValues("miss").Inc()
	return cachedResult{}, false
}

func (e *Engine) storeCache(title string, resp *Response, err error) {
	if e.cache == nil {
		return
	}
	e.cache.Add(title, cachedResult{resp: resp.clone(), err: err})
}

// ClearCache drops every memoized response.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() EngineMetrics {
	return EngineMetrics{
		RequestCount: e.requestCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
		NotFound:     e.notFound.Load(),
		Insufficient: e.insufficient.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config.Clone()
}

func nonNil(items []ScoredTitle) []ScoredTitle {
	if items == nil {
		return []ScoredTitle{}
	}
	return items
}
