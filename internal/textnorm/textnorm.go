// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package textnorm

import "strings"

// Stem splits text on whitespace, stems every token and rejoins the tokens
// with single spaces. Leading and trailing whitespace is dropped.
func Stem(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	for i, f := range fields {
		fields[i] = StemWord(f)
	}
	return strings.Join(fields, " ")
}

// Normalize lowercases text and stems it.
func Normalize(text string) string {
	return Stem(strings.ToLower(text))
}
