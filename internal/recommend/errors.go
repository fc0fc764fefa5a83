// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "errors"

var (
	// ErrNotFound means the query title is not in the content profile set.
	// Only the content path is aborted; the collaborative result stands.
	ErrNotFound = errors.New("title not found")

	// ErrInsufficientResults means the combined slate is shorter than
	// requested. The partial slate is still returned.
	ErrInsufficientResults = errors.New("insufficient results")

	// ErrNotTrained is returned when ranking before training.
	ErrNotTrained = errors.New("model not trained")
)

// IsRecoverable reports whether err only carries conditions that leave a
// usable, possibly partial, response. A nil error is recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !IsRecoverable(e) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInsufficientResults)
}
