// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/dataset"
)

// ScoredTitle is a ranked title with the score its producer assigned.
// Content scores are cosine similarities in [0, 1]; collaborative scores
// are Pearson correlations in [-1, 1].
type ScoredTitle struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Titles strips scores, preserving order.
func Titles(items []ScoredTitle) []string {
	if len(items) == 0 {
		return []string{}
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

// Algorithm is a single recommendation signal. Implementations are trained
// once against an immutable dataset and then ranked concurrently.
type Algorithm interface {
	// Name returns the algorithm identifier ("content", "collaborative").
	Name() string

	// Train derives the model from the dataset.
	Train(ctx context.Context, ds *dataset.Dataset) error

	// Rank returns titles related to the query title, best first.
	Rank(ctx context.Context, title string) ([]ScoredTitle, error)

	// IsTrained returns whether Train has completed successfully.
	IsTrained() bool

	// Version returns the model version (incremented on each train).
	Version() int

	// LastTrainedAt returns when the model was last trained.
	LastTrainedAt() time.Time
}

// Response is the result of a single recommendation query.
type Response struct {
	// Query is the seed title.
	Query string `json:"query"`

	// Top is the combined slate, at most SlateSize titles, no duplicates.
	Top []string `json:"top"`

	// Collaborative is the full collaborative ranking.
	Collaborative []ScoredTitle `json:"collaborative"`

	// Content is the full content ranking.
	Content []ScoredTitle `json:"content"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries diagnostics for a response.
type ResponseMetadata struct {
	// RequestID correlates the response with logs.
	RequestID string `json:"request_id,omitempty"`

	// GeneratedAt is when the response was computed.
	GeneratedAt time.Time `json:"generated_at"`

	// LatencyMS is the end-to-end computation time.
	LatencyMS int64 `json:"latency_ms"`

	// ContentLatencyMS and CollaborativeLatencyMS time each engine.
	ContentLatencyMS       int64 `json:"content_latency_ms"`
	CollaborativeLatencyMS int64 `json:"collaborative_latency_ms"`

	// CacheHit is true when the response was served from cache.
	CacheHit bool `json:"cache_hit"`

	// ModelVersions maps algorithm name to model version.
	ModelVersions map[string]int `json:"model_versions,omitempty"`
}

// clone returns a copy whose slices can be handed to a caller without
// exposing cached state.
func (r *Response) clone() *Response {
	cp := *r
	cp.Top = append([]string(nil), r.Top...)
	cp.Collaborative = append([]ScoredTitle(nil), r.Collaborative...)
	cp.Content = append([]ScoredTitle(nil), r.Content...)
	if r.Metadata.ModelVersions != nil {
		cp.Metadata.ModelVersions = make(map[string]int, len(r.Metadata.ModelVersions))
		for k, v := range r.Metadata.ModelVersions {
			cp.Metadata.ModelVersions[k] = v
		}
	}
	return &cp
}

// EngineMetrics is a snapshot of engine counters.
type EngineMetrics struct {
	RequestCount int64 `json:"request_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	NotFound     int64 `json:"not_found"`
	Insufficient int64 `json:"insufficient"`
	ErrorCount   int64 `json:"error_count"`
}
