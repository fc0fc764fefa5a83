// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// MetadataFetcher returns the poster path for a TMDB movie id.
// Implementations return ErrNoPoster when the movie has none.
type MetadataFetcher interface {
	PosterPath(ctx context.Context, externalID int64) (string, error)
}

// ClientConfig configures the TMDB client.
type ClientConfig struct {
	APIKey             string
	BaseURL            string
	Language           string
	Timeout            time.Duration
	RateLimitPerSecond float64
	RateBurst          int
}

// StatusError reports an unexpected HTTP status from the metadata service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("poster: metadata service returned %d: %s", e.StatusCode, e.Body)
}

// Client calls the TMDB movie endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	limiter    *rate.Limiter
}

// NewClient creates a rate-limited TMDB client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("poster: api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("poster: base url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		limiter:    rate.NewLimiter(limit, burst),
	}, nil
}

type movieResponse struct {
	ID         int64   `json:"id"`
	PosterPath *string `json:"poster_path"`
}

// PosterPath fetches the poster path of a movie. A 404 or a null
// poster_path yields ErrNoPoster.
func (c *Client) PosterPath(ctx context.Context, externalID int64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("poster: rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	endpoint := c.baseURL + "/movie/" + strconv.FormatInt(externalID, 10) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("poster: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.PosterFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("poster: request movie %d: %w", externalID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNoPoster
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var movie movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return "", fmt.Errorf("poster: decode movie %d: %w", externalID, err)
	}
	if movie.PosterPath == nil || *movie.PosterPath == "" {
		return "", ErrNoPoster
	}
	return *movie.PosterPath, nil
}
