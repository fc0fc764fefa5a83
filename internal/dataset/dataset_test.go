// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func sampleMovies() []Movie {
	return []Movie{
		{ID: 3, Title: "Grumpier Old Men (1995)", Genres: []string{"Comedy", "Romance"}},
		{ID: 1, Title: "Toy Story (1995)", Genres: []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}},
		{ID: 2, Title: "Jumanji (1995)", Genres: []string{"Adventure", "Children", "Fantasy"}},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		movies  []Movie
		links   []Link
		ratings []Rating
		tags    []Tag
		wantErr bool
		verify  func(t *testing.T, ds *Dataset)
	}{
		{
			name:   "sorts movies by id",
			movies: sampleMovies(),
			verify: func(t *testing.T, ds *Dataset) {
				want := []string{"Toy Story (1995)", "Jumanji (1995)", "Grumpier Old Men (1995)"}
				if got := ds.Titles(); !reflect.DeepEqual(got, want) {
					t.Errorf("Titles() = %v, want %v", got, want)
				}
			},
		},
		{
			name:    "drops rows for unknown movies",
			movies:  sampleMovies(),
			links:   []Link{{MovieID: 1, ExternalID: int64Ptr(862)}, {MovieID: 99}},
			ratings: []Rating{{UserID: 1, MovieID: 1, Value: 4}, {UserID: 2, MovieID: 42, Value: 3}},
			tags:    []Tag{{MovieID: 2, Text: "board game"}, {MovieID: 77, Text: "lost"}},
			verify: func(t *testing.T, ds *Dataset) {
				s := ds.Stats()
				if s.Ratings != 1 || s.DroppedRatings != 1 {
					t.Errorf("ratings = %d dropped %d, want 1 and 1", s.Ratings, s.DroppedRatings)
				}
				if s.Tags != 1 || s.DroppedTags != 1 {
					t.Errorf("tags = %d dropped %d, want 1 and 1", s.Tags, s.DroppedTags)
				}
				if s.Links != 1 || s.DroppedLinks != 1 {
					t.Errorf("links = %d dropped %d, want 1 and 1", s.Links, s.DroppedLinks)
				}
				if s.Users != 1 {
					t.Errorf("users = %d, want 1", s.Users)
				}
			},
		},
		{
			name:    "keeps duplicate ratings",
			movies:  sampleMovies(),
			ratings: []Rating{{UserID: 1, MovieID: 1, Value: 4}, {UserID: 1, MovieID: 1, Value: 2}},
			verify: func(t *testing.T, ds *Dataset) {
				if len(ds.Ratings()) != 2 {
					t.Errorf("len(Ratings()) = %d, want 2", len(ds.Ratings()))
				}
			},
		},
		{
			name:    "rejects non-positive id",
			movies:  []Movie{{ID: 0, Title: "Zero"}},
			wantErr: true,
		},
		{
			name:    "rejects duplicate id",
			movies:  []Movie{{ID: 1, Title: "A"}, {ID: 1, Title: "B"}},
			wantErr: true,
		},
		{
			name:    "rejects empty title",
			movies:  []Movie{{ID: 1, Title: "  "}},
			wantErr: true,
		},
		{
			name:    "rejects non-finite rating",
			movies:  sampleMovies(),
			ratings: []Rating{{UserID: 1, MovieID: 1, Value: math.NaN()}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := New(tt.movies, tt.links, tt.ratings, tt.tags)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRow) {
					t.Fatalf("New() error = %v, want ErrInvalidRow", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if tt.verify != nil {
				tt.verify(t, ds)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	movies := sampleMovies()
	ds, err := New(movies, nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	movies[0].Title = "changed"
	movies[1].Genres[0] = "changed"

	m, ok := ds.MovieByID(1)
	if !ok {
		t.Fatal("MovieByID(1) not found")
	}
	if m.Genres[0] != "Adventure" {
		t.Errorf("genres leaked caller mutation: %v", m.Genres)
	}
	if m3, _ := ds.MovieByID(3); m3.Title != "Grumpier Old Men (1995)" {
		t.Errorf("title leaked caller mutation: %q", m3.Title)
	}
}

func TestDataset_Lookups(t *testing.T) {
	t.Parallel()

	movies := append(sampleMovies(), Movie{ID: 10, Title: "Toy Story (1995)"})
	ds, err := New(movies, []Link{{MovieID: 1, ExternalID: int64Ptr(862)}}, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	m, ok := ds.MovieByTitle("Toy Story (1995)")
	if !ok || m.ID != 1 {
		t.Errorf("MovieByTitle() = %+v, %v; want id 1", m, ok)
	}
	if _, ok := ds.MovieByTitle("Heat (1995)"); ok {
		t.Error("MovieByTitle() found a missing title")
	}
	if !ds.HasTitle("Jumanji (1995)") {
		t.Error("HasTitle() = false for a known title")
	}

	l, ok := ds.Link(1)
	if !ok || l.ExternalID == nil || *l.ExternalID != 862 {
		t.Errorf("Link(1) = %+v, %v", l, ok)
	}
	if _, ok := ds.Link(2); ok {
		t.Error("Link(2) found a missing link")
	}
}

func TestDataset_SearchTitles(t *testing.T) {
	t.Parallel()

	ds, err := New(sampleMovies(), nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"case insensitive", "toy", 0, []string{"Toy Story (1995)"}},
		{"year matches all", "1995", 0, []string{"Toy Story (1995)", "Jumanji (1995)", "Grumpier Old Men (1995)"}},
		{"limit", "", 2, []string{"Toy Story (1995)", "Jumanji (1995)"}},
		{"no match", "heat", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ds.SearchTitles(tt.query, tt.limit); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchTitles(%q, %d) = %v, want %v", tt.query, tt.limit, got, tt.want)
			}
		})
	}
}

func TestParseGenres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"Comedy", []string{"Comedy"}},
		{"Action|Crime|Thriller", []string{"Action", "Crime", "Thriller"}},
		{"(no genres listed)", []string{"(no genres listed)"}},
		{"Drama||War", []string{"Drama", "War"}},
	}

	for _, tt := range tests {
		if got := ParseGenres(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseGenres(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
