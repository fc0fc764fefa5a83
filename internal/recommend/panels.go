// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "errors"

// NoticeLackOfRatings is shown when too few users rated the seed title to
// fill the collaborative panel.
const NoticeLackOfRatings = "lack of user ratings"

// NoticeNotEnoughData is shown when the combined slate is short.
const NoticeNotEnoughData = "not enough data to fill the slate"

// NoticeNoContentMatch is shown when the seed has no content profile.
const NoticeNoContentMatch = "no content profile for this title"

// Panels is the display view of a Response: the slate plus the two
// supplementary lists, each capped for display.
type Panels struct {
	Query          string   `json:"query"`
	Slate          []string `json:"slate"`
	SimilarUsers   []string `json:"similar_users"`
	SimilarContent []string `json:"similar_content"`
	Notices        []string `json:"notices,omitempty"`

	// Partial is true when the slate is shorter than requested.
	Partial bool `json:"partial"`
}

// BuildPanels caps each list at size entries and attaches user notices for
// the recoverable conditions carried by err.
func BuildPanels(resp *Response, size int, err error) Panels {
	p := Panels{
		Query:          resp.Query,
		Slate:          head(resp.Top, size),
		SimilarUsers:   head(Titles(resp.Collaborative), size),
		SimilarContent: head(Titles(resp.Content), size),
	}

	if len(resp.Collaborative) < size {
		p.Notices = append(p.Notices, NoticeLackOfRatings)
	}
	if errors.Is(err, ErrNotFound) {
		p.Notices = append(p.Notices, NoticeNoContentMatch)
	}
	if errors.Is(err, ErrInsufficientResults) {
		p.Partial = true
		p.Notices = append(p.Notices, NoticeNotEnoughData)
	}
	return p
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
