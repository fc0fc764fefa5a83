// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "fmt"

// Combine merges the two rankings into a slate of at most size titles.
//
// Titles present in both lists come first, in collaborative order. The
// slate is then padded from the front of the content list, skipping titles
// already present. If content runs out, the remaining collaborative titles
// fill the gap, so the slate is short only when the union of both lists
// holds fewer than size distinct titles. A short slate is returned together
// with ErrInsufficientResults.
func Combine(collaborative, content []string, size int) ([]string, error) {
	if size <= 0 {
		return []string{}, nil
	}

	inContent := make(map[string]struct{}, len(content))
	for _, t := range content {
		inContent[t] = struct{}{}
	}

	slate := make([]string, 0, size)
	seen := make(map[string]struct{}, size)

	// The intersection is kept whole; only padding is capped by size.
	for _, t := range collaborative {
		if _, ok := inContent[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		slate = append(slate, t)
	}
	if len(slate) > size {
		slate = slate[:size]
	}

	pad := func(from []string) {
		for _, t := range from {
			if len(slate) >= size {
				return
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			slate = append(slate, t)
		}
	}
	pad(content)
	pad(collaborative)

	if len(slate) < size {
		return slate, fmt.Errorf("%w: slate has %d of %d titles", ErrInsufficientResults, len(slate), size)
	}
	return slate, nil
}
