// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidRow is returned by New when a row violates a table invariant.
var ErrInvalidRow = errors.New("invalid dataset row")

// Dataset is the immutable handle over the base tables.
// Slices returned by accessors are shared and must not be modified.
type Dataset struct {
	movies  []Movie
	byID    map[int64]int
	byTitle map[string][]int

	ratings []Rating
	tags    []Tag
	links   map[int64]Link

	stats Stats
}

// New validates the given rows and builds a Dataset. The input slices are
// copied; callers may reuse them afterwards.
func New(movies []Movie, links []Link, ratings []Rating, tags []Tag) (*Dataset, error) {
	ds := &Dataset{
		movies:  make([]Movie, len(movies)),
		byID:    make(map[int64]int, len(movies)),
		byTitle: make(map[string][]int, len(movies)),
		links:   make(map[int64]Link, len(links)),
	}
	copy(ds.movies, movies)

	sort.SliceStable(ds.movies, func(i, j int) bool {
		return ds.movies[i].ID < ds.movies[j].ID
	})

	for i := range ds.movies {
		m := &ds.movies[i]
		if m.ID <= 0 {
			return nil, fmt.Errorf("%w: movie id must be positive, got %d", ErrInvalidRow, m.ID)
		}
		if _, dup := ds.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate movie id %d", ErrInvalidRow, m.ID)
		}
		if strings.TrimSpace(m.Title) == "" {
			return nil, fmt.Errorf("%w: movie %d has an empty title", ErrInvalidRow, m.ID)
		}
		m.Genres = append([]string(nil), m.Genres...)
		ds.byID[m.ID] = i
		ds.byTitle[m.Title] = append(ds.byTitle[m.Title], i)
	}

	users := make(map[int64]struct{})
	ds.ratings = make([]Rating, 0, len(ratings))
	for _, r := range ratings {
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, fmt.Errorf("%w: rating by user %d for movie %d is not finite", ErrInvalidRow, r.UserID, r.MovieID)
		}
		if _, ok := ds.byID[r.MovieID]; !ok {
			ds.stats.DroppedRatings++
			continue
		}
		users[r.UserID] = struct{}{}
		ds.ratings = append(ds.ratings, r)
	}

	ds.tags = make([]Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := ds.byID[t.MovieID]; !ok {
			ds.stats.DroppedTags++
			continue
		}
		ds.tags = append(ds.tags, t)
	}

	for _, l := range links {
		if _, ok := ds.byID[l.MovieID]; !ok {
			ds.stats.DroppedLinks++
			continue
		}
		ds.links[l.MovieID] = l
	}

	ds.stats.Movies = len(ds.movies)
	ds.stats.Ratings = len(ds.ratings)
	ds.stats.Tags = len(ds.tags)
	ds.stats.Links = len(ds.links)
	ds.stats.Users = len(users)

	return ds, nil
}

// Movies returns all movies in ascending id order.
func (ds *Dataset) Movies() []Movie { return ds.movies }

// Ratings returns all ratings that reference a known movie, in input order.
func (ds *Dataset) Ratings() []Rating { return ds.ratings }

// Tags returns all tags that reference a known movie, in input order.
func (ds *Dataset) Tags() []Tag { return ds.tags }

// Stats returns row counts for the dataset.
func (ds *Dataset) Stats() Stats { return ds.stats }

// MovieByID looks up a movie by id.
func (ds *Dataset) MovieByID(id int64) (Movie, bool) {
	i, ok := ds.byID[id]
	if !ok {
		return Movie{}, false
	}
	return ds.movies[i], true
}

// MovieByTitle returns the first movie, in id order, with the given title.
func (ds *Dataset) MovieByTitle(title string) (Movie, bool) {
	idx := ds.byTitle[title]
	if len(idx) == 0 {
		return Movie{}, false
	}
	return ds.movies[idx[0]], true
}

// HasTitle reports whether any movie carries the given title.
func (ds *Dataset) HasTitle(title string) bool {
	return len(ds.byTitle[title]) > 0
}

// Link returns the external catalog link for a movie.
func (ds *Dataset) Link(movieID int64) (Link, bool) {
	l, ok := ds.links[movieID]
	return l, ok
}

// Titles returns every title in movie id order. Duplicate titles appear
// once per movie.
func (ds *Dataset) Titles() []string {
	titles := make([]string, len(ds.movies))
	for i, m := range ds.movies {
		titles[i] = m.Title
	}
	return titles
}

// SearchTitles returns up to limit titles containing query, matched case
// insensitively, in movie id order. An empty query matches everything.
// A non-positive limit means no limit.
func (ds *Dataset) SearchTitles(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, m := range ds.movies {
		if q != "" && !strings.Contains(strings.ToLower(m.Title), q) {
			continue
		}
		out = append(out, m.Title)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
