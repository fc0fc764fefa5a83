// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// stubAlgorithm returns canned rankings per title.
type stubAlgorithm struct {
	name     string
	rankings map[string][]recommend.ScoredTitle
	missing  error
	trained  bool
}

func (s *stubAlgorithm) Name() string { return s.name }

func (s *stubAlgorithm) Train(context.Context, *dataset.Dataset) error {
	s.trained = true
	return nil
}

func (s *stubAlgorithm) Rank(_ context.Context, title string) ([]recommend.ScoredTitle, error) {
	if !s.trained {
		return nil, recommend.ErrNotTrained
	}
	if r, ok := s.rankings[title]; ok {
		return r, nil
	}
	if s.missing != nil {
		return nil, fmt.Errorf("%w: %q", s.missing, title)
	}
	return []recommend.ScoredTitle{}, nil
}

func (s *stubAlgorithm) IsTrained() bool          { return s.trained }
func (s *stubAlgorithm) Version() int             { return 1 }
func (s *stubAlgorithm) LastTrainedAt() time.Time { return time.Time{} }

func scored(titles ...string) []recommend.ScoredTitle {
	out := make([]recommend.ScoredTitle, len(titles))
	for i, t := range titles {
		out[i] = recommend.ScoredTitle{Title: t, Score: 1 - float64(i)/10}
	}
	return out
}

// stubPosters resolves every title to a fixed URL except those in missing.
type stubPosters struct {
	mu      sync.Mutex
	missing map[string]error
	calls   int
}

func (s *stubPosters) Resolve(_ context.Context, title string) (poster.Poster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p := poster.Poster{Title: title, MovieID: 1, ExternalID: 42}
	if err, ok := s.missing[title]; ok {
		return p, err
	}
	p.URL = "https://img.example/" + title + ".jpg"
	return p, nil
}

func (s *stubPosters) ResolveAll(ctx context.Context, titles []string) []poster.Poster {
	out := make([]poster.Poster, len(titles))
	for i, t := range titles {
		p, err := s.Resolve(ctx, t)
		if err != nil {
			p.URL = ""
			p.Err = err
		}
		out[i] = p
	}
	return out
}

func newTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	names := []string{"Seed", "Orphan", "Thin", "Nowhere", "C1", "C2", "C3", "C4", "C5", "C6", "U1", "U2", "Toy Story (1995)", "Toy Story 2 (1999)"}
	movies := make([]dataset.Movie, len(names))
	for i, n := range names {
		movies[i] = dataset.Movie{ID: int64(i + 1), Title: n, Genres: []string{"Drama"}}
	}
	ds, err := dataset.New(movies, nil, nil, nil)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func newTestEngine(t *testing.T, train bool) *recommend.Engine {
	t.Helper()
	content := &stubAlgorithm{
		name:    "content",
		missing: recommend.ErrNotFound,
		rankings: map[string][]recommend.ScoredTitle{
			"Seed": scored("C1", "C2", "C3", "C4", "C5", "C6"),
			"Thin": scored("C1"),
		},
	}
	collab := &stubAlgorithm{
		name: "collaborative",
		rankings: map[string][]recommend.ScoredTitle{
			"Seed":   scored("C3", "U1", "C1"),
			"Orphan": scored("U1", "U2"),
		},
	}
	cfg := recommend.DefaultConfig()
	e, err := recommend.NewEngine(&cfg, content, collab, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if train {
		if err := e.Train(context.Background(), nil); err != nil {
			t.Fatalf("Train() error = %v", err)
		}
	}
	return e
}

type testServer struct {
	handler http.Handler
	posters *stubPosters
}

type serverOption func(*config.Config)

func withRateLimit(reqs int) serverOption {
	return func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitReqs = reqs
		c.Security.RateLimitWindow = time.Minute
	}
}

func newTestServer(t *testing.T, trained, withPosters bool, opts ...serverOption) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.CORSOrigins = []string{"https://ui.example"}
	for _, o := range opts {
		o(cfg)
	}

	ts := &testServer{}
	var resolver PosterResolver
	if withPosters {
		ts.posters = &stubPosters{missing: map[string]error{"C2": poster.ErrNoPoster}}
		resolver = ts.posters
	}

	h, err := NewHandler(newTestEngine(t, trained), newTestDataset(t), resolver, cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	mw := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security))
	ts.handler = NewRouter(h, mw).SetupChi()
	return ts
}

func (ts *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors APIResponse with a raw payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %q)", err, string(env.Data))
	}
}
