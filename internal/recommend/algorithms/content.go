// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/textnorm"
)

// ContentConfig contains configuration for content-based ranking.
type ContentConfig struct {
	// MaxFeatures caps the vocabulary size.
	MaxFeatures int

	// Limit is the maximum number of titles returned by Rank.
	Limit int
}

// DefaultContentConfig returns default content configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		MaxFeatures: 5000,
		Limit:       100,
	}
}

// Profile is the normalized text of one movie.
type Profile struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
	Text    string `json:"text"`
}

// BuildProfiles derives one profile per movie, in ascending movie id order.
//
// Every tag row contributes "<tag> <genres>", so the genres repeat once per
// tag; a movie without tags contributes its genres alone. The rows are
// space-joined, pipe characters become spaces, and the result is
// lowercased and stemmed.
func BuildProfiles(ds *dataset.Dataset) []Profile {
	tagsByMovie := make(map[int64][]string)
	for _, t := range ds.Tags() {
		tagsByMovie[t.MovieID] = append(tagsByMovie[t.MovieID], t.Text)
	}

	movies := ds.Movies()
	profiles := make([]Profile, len(movies))
	var sb strings.Builder
	for i, m := range movies {
		genres := m.GenreText()
		tags := tagsByMovie[m.ID]

		sb.Reset()
		if len(tags) == 0 {
			sb.WriteString(" ")
			sb.WriteString(genres)
		}
		for k, tag := range tags {
			if k > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(tag)
			sb.WriteString(" ")
			sb.WriteString(genres)
		}

		text := strings.ReplaceAll(sb.String(), dataset.GenreSeparator, " ")
		profiles[i] = Profile{
			MovieID: m.ID,
			Title:   m.Title,
			Text:    textnorm.Normalize(text),
		}
	}
	return profiles
}

// ContentBased ranks movies by cosine similarity of their profiles.
type ContentBased struct {
	BaseAlgorithm
	config ContentConfig

	profiles   []Profile
	vocabulary *Vocabulary
	matrix     *SimilarityMatrix

	// rowByTitle holds the first row for each title.
	rowByTitle map[string]int
}

// NewContentBased creates a new content-based algorithm.
func NewContentBased(cfg ContentConfig) *ContentBased {
	def := DefaultContentConfig()
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = def.MaxFeatures
	}
	if cfg.Limit <= 0 {
		cfg.Limit = def.Limit
	}
	return &ContentBased{
		BaseAlgorithm: NewBaseAlgorithm("content"),
		config:        cfg,
	}
}

// Train builds profiles, the vocabulary and the similarity matrix.
func (c *ContentBased) Train(ctx context.Context, ds *dataset.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}

	profiles := BuildProfiles(ds)
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	docs := make([]string, len(profiles))
	ids := make([]int64, len(profiles))
	rowByTitle := make(map[string]int, len(profiles))
	for i, p := range profiles {
		docs[i] = p.Text
		ids[i] = p.MovieID
		if _, seen := rowByTitle[p.Title]; !seen {
			rowByTitle[p.Title] = i
		}
	}

	cv := &CountVectorizer{MaxFeatures: c.config.MaxFeatures, StopWords: englishStopWords}
	vocab, vectors := cv.FitTransform(docs)
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	matrix, err := NewSimilarityMatrix(ids, vectors, vocab.Len())
	if err != nil {
		return fmt.Errorf("build similarity matrix: %w", err)
	}

	c.acquireTrainLock()
	defer c.releaseTrainLock()

	c.profiles = profiles
	c.vocabulary = vocab
	c.matrix = matrix
	c.rowByTitle = rowByTitle
	c.markTrained()
	return nil
}

// Rank returns up to Limit titles ordered by similarity to title, highest
// first. Ties keep ascending movie id order. The seed title itself is never
// returned, including through other movies that share it. ErrNotFound is
// returned when title has no profile.
func (c *ContentBased) Rank(ctx context.Context, title string) ([]recommend.ScoredTitle, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.trained {
		return nil, recommend.ErrNotTrained
	}

	row, ok := c.rowByTitle[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", recommend.ErrNotFound, title)
	}

	sims := c.matrix.Row(row)
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	candidates := make([]int, 0, len(sims))
	for i := range sims {
		if c.profiles[i].Title == title {
			continue
		}
		candidates = append(candidates, i)
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return sims[candidates[a]] > sims[candidates[b]]
	})

	if len(candidates) > c.config.Limit {
		candidates = candidates[:c.config.Limit]
	}
	out := make([]recommend.ScoredTitle, len(candidates))
	for i, row := range candidates {
		out[i] = recommend.ScoredTitle{Title: c.profiles[row].Title, Score: sims[row]}
	}
	return out, nil
}

// Matrix returns the trained similarity matrix, or nil before training.
func (c *ContentBased) Matrix() *SimilarityMatrix {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return c.matrix
}

// Profiles returns the trained profiles in row order.
func (c *ContentBased) Profiles() []Profile {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return c.profiles
}

// VocabularySize returns the number of terms in the trained vocabulary.
func (c *ContentBased) VocabularySize() int {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	if c.vocabulary == nil {
		return 0
	}
	return c.vocabulary.Len()
}
