// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package poster resolves movie titles to poster image URLs.

A title is mapped to the first catalog movie with that title, then to the
movie's TMDB id through the links table. The poster path is looked up in a
badger-backed cache and, on a miss, fetched from the TMDB movie endpoint:

	GET {base_url}/movie/{tmdb_id}?api_key={key}&language={language}

The URL returned to callers is the image base URL joined with poster_path.

Remote calls pass through a token-bucket limiter (x/time/rate) and a
circuit breaker (sony/gobreaker) that opens when at least 60% of at least
10 requests in a one-minute window fail. A missing poster is a valid answer,
is cached like any other, and does not count as a breaker failure.

ResolveAll never fails: entries whose lookup failed carry an empty URL and
the error, so a recommendation slate always renders.
*/
package poster
