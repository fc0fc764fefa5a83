// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// fakeAlgorithm returns canned rankings per title.
type fakeAlgorithm struct {
	name     string
	rankings map[string][]ScoredTitle
	missing  error // returned for titles not in rankings
	trainErr error
	trained  atomic.Bool
	calls    atomic.Int64
}

func (f *fakeAlgorithm) Name() string { return f.name }

func (f *fakeAlgorithm) Train(_ context.Context, _ *dataset.Dataset) error {
	if f.trainErr != nil {
		return f.trainErr
	}
	f.trained.Store(true)
	return nil
}

func (f *fakeAlgorithm) Rank(_ context.Context, title string) ([]ScoredTitle, error) {
	f.calls.Add(1)
	if r, ok := f.rankings[title]; ok {
		return r, nil
	}
	if f.missing != nil {
		return nil, fmt.Errorf("%w: %q", f.missing, title)
	}
	return []ScoredTitle{}, nil
}

func (f *fakeAlgorithm) IsTrained() bool          { return f.trained.Load() }
func (f *fakeAlgorithm) Version() int             { return 1 }
func (f *fakeAlgorithm) LastTrainedAt() time.Time { return time.Time{} }

func newTestEngine(t *testing.T, cfg *Config) (*Engine, *fakeAlgorithm, *fakeAlgorithm) {
	t.Helper()
	content := &fakeAlgorithm{
		name:    "content",
		missing: ErrNotFound,
		rankings: map[string][]ScoredTitle{
			"Seed": scored("C1", "C2", "C3", "C4", "C5", "C6"),
			"Thin": scored("T1"),
		},
	}
	collab := &fakeAlgorithm{
		name: "collaborative",
		rankings: map[string][]ScoredTitle{
			"Seed":    scored("C3", "U1", "C1"),
			"Orphan":  scored("U1", "U2"),
			"Ratings": scored("R1", "R2", "R3", "R4", "R5", "R6"),
		},
	}
	e, err := NewEngine(cfg, content, collab, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := e.Train(context.Background(), nil); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return e, content, collab
}

func TestNewEngine(t *testing.T) {
	content := &fakeAlgorithm{name: "content"}
	collab := &fakeAlgorithm{name: "collaborative"}

	if _, err := NewEngine(nil, content, collab, zerolog.Nop()); err != nil {
		t.Errorf("NewEngine(nil config) error = %v", err)
	}
	bad := DefaultConfig()
	bad.SlateSize = 0
	if _, err := NewEngine(&bad, content, collab, zerolog.Nop()); err == nil {
		t.Error("expected invalid config error")
	}
	if _, err := NewEngine(nil, nil, collab, zerolog.Nop()); err == nil {
		t.Error("expected missing algorithm error")
	}
}

func TestEngine_Recommend(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		wantTop    []string
		wantErrs   []error
		wantNoErrs bool
	}{
		{
			name:       "intersection then content padding",
			title:      "Seed",
			wantTop:    []string{"C3", "C1", "C2", "C4", "C5"},
			wantNoErrs: true,
		},
		{
			name:     "content not found keeps collaborative",
			title:    "Orphan",
			wantTop:  []string{"U1", "U2"},
			wantErrs: []error{ErrNotFound, ErrInsufficientResults},
		},
		{
			name:     "content not found but collaborative fills slate",
			title:    "Ratings",
			wantTop:  []string{"R1", "R2", "R3", "R4", "R5"},
			wantErrs: []error{ErrNotFound},
		},
		{
			name:     "short slate",
			title:    "Thin",
			wantTop:  []string{"T1"},
			wantErrs: []error{ErrInsufficientResults},
		},
		{
			name:     "unknown everywhere",
			title:    "Nothing",
			wantTop:  []string{},
			wantErrs: []error{ErrNotFound, ErrInsufficientResults},
		},
	}

	for _, parallel := range []bool{true, false} {
		cfg := DefaultConfig()
		cfg.Parallel = parallel
		e, _, _ := newTestEngine(t, &cfg)

		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/parallel=%v", tt.name, parallel), func(t *testing.T) {
				resp, err := e.Recommend(context.Background(), tt.title)
				if resp == nil {
					t.Fatalf("Recommend() returned nil response, err = %v", err)
				}
				if !reflect.DeepEqual(resp.Top, tt.wantTop) {
					t.Errorf("Top = %v, want %v", resp.Top, tt.wantTop)
				}
				if tt.wantNoErrs && err != nil {
					t.Errorf("Recommend() error = %v, want nil", err)
				}
				for _, want := range tt.wantErrs {
					if !errors.Is(err, want) {
						t.Errorf("Recommend() error = %v, want %v", err, want)
					}
				}
				if !IsRecoverable(err) {
					t.Errorf("error %v should be recoverable", err)
				}
				if resp.Query != tt.title {
					t.Errorf("Query = %q", resp.Query)
				}
			})
		}
	}
}

func TestEngine_Cache(t *testing.T) {
	e, content, collab := newTestEngine(t, nil)
	ctx := logging.ContextWithRequestID(context.Background(), "req-1")

	first, err := e.Recommend(ctx, "Seed")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first call reported a cache hit")
	}
	if first.Metadata.RequestID != "req-1" {
		t.Errorf("RequestID = %q", first.Metadata.RequestID)
	}

	// Mutating a returned response must not leak into the cache.
	first.Top[0] = "tampered"

	second, err := e.Recommend(ctx, "Seed")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second call should hit the cache")
	}
	if second.Top[0] != "C3" {
		t.Errorf("cached Top[0] = %q, want C3", second.Top[0])
	}
	if content.calls.Load() != 1 || collab.calls.Load() != 1 {
		t.Errorf("algorithms called %d/%d times, want 1/1", content.calls.Load(), collab.calls.Load())
	}

	// Recoverable errors are replayed from cache.
	if _, err := e.Recommend(ctx, "Thin"); !errors.Is(err, ErrInsufficientResults) {
		t.Fatalf("Recommend(Thin) error = %v", err)
	}
	if _, err := e.Recommend(ctx, "Thin"); !errors.Is(err, ErrInsufficientResults) {
		t.Errorf("cached Recommend(Thin) error = %v", err)
	}

	m := e.GetMetrics()
	if m.RequestCount != 4 || m.CacheHits != 2 || m.CacheMisses != 2 || m.Insufficient != 2 {
		t.Errorf("metrics = %+v", m)
	}

	e.ClearCache()
	if _, err := e.Recommend(ctx, "Seed"); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if content.calls.Load() != 3 {
		t.Errorf("content calls = %d, want 3 after clear", content.calls.Load())
	}
}

func TestEngine_CacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e, content, _ := newTestEngine(t, &cfg)

	for i := 0; i < 3; i++ {
		if _, err := e.Recommend(context.Background(), "Seed"); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}
	if content.calls.Load() != 3 {
		t.Errorf("content calls = %d, want 3", content.calls.Load())
	}
}

func TestEngine_HardFailure(t *testing.T) {
	content := &fakeAlgorithm{name: "content", missing: errors.New("index corrupted")}
	collab := &fakeAlgorithm{name: "collaborative"}
	e, err := NewEngine(nil, content, collab, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	resp, err := e.Recommend(context.Background(), "x")
	if resp != nil || err == nil || IsRecoverable(err) {
		t.Errorf("Recommend() = %v, %v; want hard failure", resp, err)
	}
	if e.GetMetrics().ErrorCount != 1 {
		t.Errorf("ErrorCount = %d", e.GetMetrics().ErrorCount)
	}
}

func TestEngine_TrainError(t *testing.T) {
	content := &fakeAlgorithm{name: "content", trainErr: errors.New("no profiles")}
	collab := &fakeAlgorithm{name: "collaborative"}
	e, err := NewEngine(nil, content, collab, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if err := e.Train(context.Background(), nil); err == nil {
		t.Error("Train() should fail")
	}
	if e.IsReady() {
		t.Error("IsReady() = true after failed training")
	}
}

func TestEngine_SingleEngines(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)

	content, err := e.RecommendByContent(context.Background(), "Seed")
	if err != nil || len(content) != 6 {
		t.Errorf("RecommendByContent() = %v, %v", content, err)
	}
	if _, err := e.RecommendByContent(context.Background(), "Orphan"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RecommendByContent(Orphan) error = %v", err)
	}

	collab, err := e.RecommendByCollaboration(context.Background(), "Unrated")
	if err != nil || collab == nil || len(collab) != 0 {
		t.Errorf("RecommendByCollaboration() = %#v, %v", collab, err)
	}
}

func TestEngine_Concurrent(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := []string{"Seed", "Orphan", "Thin"}[i%3]
			if _, err := e.Recommend(context.Background(), title); !IsRecoverable(err) {
				t.Errorf("Recommend(%s) error = %v", title, err)
			}
		}(i)
	}
	wg.Wait()

	if !e.IsReady() {
		t.Error("IsReady() = false")
	}
}
