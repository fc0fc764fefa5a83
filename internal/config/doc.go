// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads reelmatch configuration with Koanf v2.

Three layers are merged, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/reelmatch/config.yaml
 3. Environment variables from a fixed mapping table

Example config.yaml:

	data:
	  movies_path: /data/ml-latest-small/movies.csv
	  ratings_path: /data/ml-latest-small/ratings.csv
	  tags_path: /data/ml-latest-small/tags.csv
	  links_path: /data/ml-latest-small/links.csv
	recommend:
	  support_floor: 100
	  slate_size: 5
	poster:
	  enabled: true
	  cache_path: /var/lib/reelmatch/posters
	server:
	  port: 8080
	logging:
	  level: info
	  format: json

The metadata API key is only ever read from the file or TMDB_API_KEY.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	logging.Init(cfg.LoggingSettings())
	paths, opts := cfg.DataPaths()
	ds, err := dataset.LoadCSV(ctx, paths, opts)

Load validates the result; an invalid configuration never reaches the caller.
*/
package config
