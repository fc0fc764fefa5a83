// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Reelmatch CLI.

The recommend command loads the catalog, trains both models and prints the
slate with its two supporting panels. It reads the same config.yaml and
environment variables as the server, so a query here matches what the
HTTP API would return for the same data.

	reelmatch -c config.yaml recommend "Heat (1995)"
	reelmatch recommend --json "Heat (1995)" | jq .slate
	reelmatch movies -s heat
*/
package main
