// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import "strings"

// GenreSeparator separates genre tokens in the raw movies table.
const GenreSeparator = "|"

// Movie is a catalog entry.
type Movie struct {
	// ID is the MovieLens movie id.
	ID int64 `json:"id"`

	// Title is the display title, including the release year.
	Title string `json:"title"`

	// Genres are the category tokens in their original order.
	Genres []string `json:"genres"`
}

// GenreText returns the genres joined by single spaces.
func (m Movie) GenreText() string {
	return strings.Join(m.Genres, " ")
}

// ParseGenres splits a raw pipe separated genre field.
// Empty segments are skipped.
func ParseGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, GenreSeparator)
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// Tag is a free-text annotation attached to a movie.
type Tag struct {
	MovieID int64  `json:"movie_id"`
	Text    string `json:"tag"`
}

// Rating is a single user rating. The natural key is (UserID, MovieID) but
// duplicates are tolerated; consumers decide how to aggregate them.
type Rating struct {
	UserID  int64   `json:"user_id"`
	MovieID int64   `json:"movie_id"`
	Value   float64 `json:"rating"`
}

// Link maps a movie to its external metadata catalog id (TMDB).
// ExternalID is nil when the catalog has no entry for the movie.
type Link struct {
	MovieID    int64  `json:"movie_id"`
	ExternalID *int64 `json:"external_id,omitempty"`
}

// Stats summarizes a loaded dataset.
type Stats struct {
	Movies  int `json:"movies"`
	Ratings int `json:"ratings"`
	Tags    int `json:"tags"`
	Links   int `json:"links"`
	Users   int `json:"users"`

	// Rows dropped because they referenced an unknown movie id.
	DroppedRatings int `json:"dropped_ratings"`
	DroppedTags    int `json:"dropped_tags"`
	DroppedLinks   int `json:"dropped_links"`
}
