// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func mustDataset(t *testing.T, movies []dataset.Movie, ratings []dataset.Rating, tags []dataset.Tag) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(movies, nil, ratings, tags)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func trainedContent(t *testing.T, ds *dataset.Dataset, cfg ContentConfig) *ContentBased {
	t.Helper()
	c := NewContentBased(cfg)
	if err := c.Train(context.Background(), ds); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return c
}

func contentFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	movies := []dataset.Movie{
		{ID: 1, Title: "Toy Story (1995)", Genres: []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}},
		{ID: 2, Title: "Jumanji (1995)", Genres: []string{"Adventure", "Children", "Fantasy"}},
		{ID: 3, Title: "Heat (1995)", Genres: []string{"Action", "Crime", "Thriller"}},
		{ID: 4, Title: "Toy Story 2 (1999)", Genres: []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}},
		{ID: 5, Title: "Empty (2000)"},
		{ID: 6, Title: "Casino (1995)", Genres: []string{"Crime", "Drama"}},
	}
	tags := []dataset.Tag{
		{MovieID: 1, Text: "pixar"},
		{MovieID: 1, Text: "fun"},
		{MovieID: 4, Text: "pixar"},
		{MovieID: 3, Text: "heist"},
		{MovieID: 6, Text: "Mafia|gambling"},
	}
	return mustDataset(t, movies, nil, tags)
}

func TestBuildProfiles(t *testing.T) {
	t.Parallel()

	profiles := BuildProfiles(contentFixture(t))

	want := map[int64]string{
		1: "pixar adventur anim children comedi fantasi fun adventur anim children comedi fantasi",
		2: "adventur children fantasi",
		3: "heist action crime thriller",
		5: "",
		6: "mafia gambl crime drama",
	}
	if len(profiles) != 6 {
		t.Fatalf("len(profiles) = %d, want 6", len(profiles))
	}
	for i, p := range profiles {
		if i > 0 && profiles[i-1].MovieID >= p.MovieID {
			t.Errorf("profiles not in ascending id order at %d", i)
		}
		if w, ok := want[p.MovieID]; ok && p.Text != w {
			t.Errorf("profile %d text = %q, want %q", p.MovieID, p.Text, w)
		}
	}
}

func TestContentBased_TwoMovieScenario(t *testing.T) {
	t.Parallel()

	ds := mustDataset(t, []dataset.Movie{
		{ID: 1, Title: "A", Genres: []string{"Action"}},
		{ID: 2, Title: "B", Genres: []string{"Action"}},
	}, nil, nil)
	c := trainedContent(t, ds, DefaultContentConfig())

	got, err := c.Rank(context.Background(), "A")
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "B" {
		t.Fatalf("Rank(A) = %v, want [B]", got)
	}
	if math.Abs(got[0].Score-1) > 1e-12 {
		t.Errorf("similarity(A, B) = %v, want 1", got[0].Score)
	}
	if c.Matrix().At(0, 0) != 1 {
		t.Errorf("similarity(A, A) = %v, want 1", c.Matrix().At(0, 0))
	}
}

func TestContentBased_Rank(t *testing.T) {
	t.Parallel()

	c := trainedContent(t, contentFixture(t), DefaultContentConfig())

	tests := []struct {
		name    string
		title   string
		wantErr error
		verify  func(t *testing.T, got []recommend.ScoredTitle)
	}{
		{
			name:  "closest title first",
			title: "Toy Story (1995)",
			verify: func(t *testing.T, got []recommend.ScoredTitle) {
				if got[0].Title != "Toy Story 2 (1999)" {
					t.Errorf("top = %q, want Toy Story 2 (1999)", got[0].Title)
				}
				if got[1].Title != "Jumanji (1995)" {
					t.Errorf("second = %q, want Jumanji (1995)", got[1].Title)
				}
			},
		},
		{
			name:  "excludes the query",
			title: "Heat (1995)",
			verify: func(t *testing.T, got []recommend.ScoredTitle) {
				if len(got) != 5 {
					t.Errorf("len = %d, want 5", len(got))
				}
				for _, s := range got {
					if s.Title == "Heat (1995)" {
						t.Error("query title returned")
					}
				}
				if got[0].Title != "Casino (1995)" {
					t.Errorf("top = %q, want Casino (1995)", got[0].Title)
				}
			},
		},
		{
			name:  "ties keep id order",
			title: "Empty (2000)",
			verify: func(t *testing.T, got []recommend.ScoredTitle) {
				want := []string{"Toy Story (1995)", "Jumanji (1995)", "Heat (1995)", "Toy Story 2 (1999)", "Casino (1995)"}
				for i, s := range got {
					if s.Score != 0 {
						t.Errorf("score[%d] = %v, want 0 for an empty profile", i, s.Score)
					}
					if s.Title != want[i] {
						t.Errorf("got[%d] = %q, want %q", i, s.Title, want[i])
					}
				}
			},
		},
		{
			name:    "unknown title",
			title:   "Nope (2020)",
			wantErr: recommend.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Rank(context.Background(), tt.title)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Rank() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Score > got[i-1].Score {
					t.Errorf("scores not descending at %d", i)
				}
			}
			tt.verify(t, got)
		})
	}
}

func TestContentBased_Limit(t *testing.T) {
	t.Parallel()

	movies := make([]dataset.Movie, 0, 30)
	for i := 1; i <= 30; i++ {
		movies = append(movies, dataset.Movie{ID: int64(i), Title: fmt.Sprintf("Movie %d", i), Genres: []string{"Drama"}})
	}
	c := trainedContent(t, mustDataset(t, movies, nil, nil), ContentConfig{Limit: 10})

	got, err := c.Rank(context.Background(), "Movie 1")
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
	if got[0].Title != "Movie 2" {
		t.Errorf("top = %q, want Movie 2 (stable tie order)", got[0].Title)
	}
}

func TestContentBased_DuplicateTitle(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		{ID: 1, Title: "Hamlet (1996)", Genres: []string{"Drama"}},
		{ID: 2, Title: "Hamlet (1996)", Genres: []string{"Drama"}},
		{ID: 3, Title: "Othello (1995)", Genres: []string{"Drama"}},
		{ID: 4, Title: "Heat (1995)", Genres: []string{"Action"}},
	}
	c := trainedContent(t, mustDataset(t, movies, nil, nil), DefaultContentConfig())

	got, err := c.Rank(context.Background(), "Hamlet (1996)")
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(got), got)
	}
	if got[0].Title != "Othello (1995)" || got[0].Score != 1 {
		t.Errorf("top = %+v, want Othello (1995) at 1", got[0])
	}
	for _, s := range got {
		if s.Title == "Hamlet (1996)" {
			t.Error("query title returned through its duplicate row")
		}
	}
}

func TestContentBased_Idempotent(t *testing.T) {
	t.Parallel()

	c := trainedContent(t, contentFixture(t), DefaultContentConfig())
	first, err := c.Rank(context.Background(), "Jumanji (1995)")
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	second, _ := c.Rank(context.Background(), "Jumanji (1995)")
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("Rank() not idempotent: %v vs %v", first, second)
	}
}

func TestContentBased_NotTrained(t *testing.T) {
	t.Parallel()

	c := NewContentBased(ContentConfig{})
	if _, err := c.Rank(context.Background(), "x"); !errors.Is(err, recommend.ErrNotTrained) {
		t.Errorf("Rank() error = %v, want ErrNotTrained", err)
	}
	if c.IsTrained() {
		t.Error("IsTrained() = true before Train")
	}
	if c.Name() != "content" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestContentBased_TrainMarksVersion(t *testing.T) {
	t.Parallel()

	ds := contentFixture(t)
	c := trainedContent(t, ds, DefaultContentConfig())
	if c.Version() != 1 || !c.IsTrained() || c.LastTrainedAt().IsZero() {
		t.Errorf("after train: version=%d trained=%v", c.Version(), c.IsTrained())
	}
	if err := c.Train(context.Background(), ds); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if c.Version() != 2 {
		t.Errorf("Version() = %d, want 2", c.Version())
	}
	if c.VocabularySize() == 0 {
		t.Error("VocabularySize() = 0")
	}
}
