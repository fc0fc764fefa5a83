// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(ClientConfig{
		APIKey:   "test-key",
		BaseURL:  server.URL + "/3/",
		Language: "en-US",
		Timeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestClient_PosterPath(t *testing.T) {
	var gotPath, gotKey, gotLang string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotLang = r.URL.Query().Get("language")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":862,"title":"Toy Story","poster_path":"/uXDfjJbdP4ijW5hWSBrPrlKpxab.jpg"}`))
	})

	path, err := c.PosterPath(context.Background(), 862)
	if err != nil {
		t.Fatalf("PosterPath() error = %v", err)
	}
	if path != "/uXDfjJbdP4ijW5hWSBrPrlKpxab.jpg" {
		t.Errorf("path = %q", path)
	}
	if gotPath != "/3/movie/862" {
		t.Errorf("request path = %q, want /3/movie/862", gotPath)
	}
	if gotKey != "test-key" || gotLang != "en-US" {
		t.Errorf("query api_key=%q language=%q", gotKey, gotLang)
	}
}

func TestClient_PosterPathErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantNoPost bool
		wantStatus int
	}{
		{name: "null poster", status: 200, body: `{"id":1,"poster_path":null}`, wantNoPost: true},
		{name: "empty poster", status: 200, body: `{"id":1,"poster_path":""}`, wantNoPost: true},
		{name: "not found", status: 404, body: `{"status_code":34}`, wantNoPost: true},
		{name: "unauthorized", status: 401, body: `{"status_code":7}`, wantStatus: 401},
		{name: "server error", status: 503, body: `unavailable`, wantStatus: 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.PosterPath(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantNoPost && !errors.Is(err, ErrNoPoster) {
				t.Errorf("error = %v, want ErrNoPoster", err)
			}
			if tt.wantStatus != 0 {
				var se *StatusError
				if !errors.As(err, &se) || se.StatusCode != tt.wantStatus {
					t.Errorf("error = %v, want StatusError %d", err, tt.wantStatus)
				}
			}
		})
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"poster_path":`))
	})
	_, err := c.PosterPath(context.Background(), 1)
	if err == nil || errors.Is(err, ErrNoPoster) {
		t.Errorf("error = %v, want decode error", err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"poster_path":"/a.jpg"}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.PosterPath(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(ClientConfig{BaseURL: "https://api.example"}); err == nil {
		t.Error("expected error without api key")
	}
	if _, err := NewClient(ClientConfig{APIKey: "k"}); err == nil {
		t.Error("expected error without base url")
	}
}
