// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides the process-wide zerolog logger for reelmatch.
//
// JSON output is the default; console output is meant for local runs and
// the CLI. Logs always go to stderr unless Config.Output says otherwise, so
// the CLI can print results on stdout.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("movies", n).Msg("dataset loaded")
//	logging.Ctx(ctx).Warn().Str("title", title).Msg("title unknown to content model")
//
// Request IDs set by the API middleware travel in the context and are added
// to every entry logged through Ctx.
//
// SlogHandler bridges log/slog into zerolog for libraries that only speak
// slog, notably sutureslog in the supervisor tree.
//
// Setting REELMATCH_QUIET=1 disables logging before Init runs, which keeps
// benchmark and fuzz output clean.
package logging
