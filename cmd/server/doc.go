// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the Reelmatch HTTP server.

Reelmatch recommends movies from a MovieLens-style catalog. For a chosen
title it blends a content ranking (genres and tags) with a collaborative
ranking (rating correlation) into a short slate, and serves both rankings
as supplementary panels.

# Startup

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON by default
 3. Dataset: CSV tables read through DuckDB
 4. Training: content profiles and the rating matrix, once
 5. Posters (optional): TMDB client behind a circuit breaker and a badger cache
 6. Supervisor tree:

	reelmatch
	├── api-layer
	│   └── http-server
	└── maintenance-layer
	    └── poster-cache-gc

# Configuration

Common environment variables:

	CONFIG_PATH=/etc/reelmatch/config.yaml
	MOVIES_PATH=data/movies.csv
	RATINGS_PATH=data/ratings.csv
	HTTP_PORT=8080
	LOG_LEVEL=debug
	POSTER_ENABLED=true
	TMDB_API_KEY=...

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for server.shutdown_timeout, then the poster cache is
closed.
*/
package main
