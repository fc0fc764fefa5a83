// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Paths locates the MovieLens CSV files. Movies is required. Ratings loads
// empty when blank. Links and tags load empty when blank or when the file
// does not exist.
type Paths struct {
	Movies  string
	Links   string
	Ratings string
	Tags    string
}

// LoaderOptions tunes the embedded DuckDB instance used for parsing.
type LoaderOptions struct {
	// DatabasePath is the DuckDB database. Empty means ":memory:".
	DatabasePath string

	// Threads caps DuckDB worker threads. Zero means runtime.NumCPU().
	Threads int
}

// LoadCSV reads the base tables from CSV through DuckDB and validates them
// with New.
func LoadCSV(ctx context.Context, paths Paths, opts LoaderOptions) (*Dataset, error) {
	if paths.Movies == "" {
		return nil, errors.New("movies path is required")
	}
	for _, p := range []string{paths.Movies, paths.Ratings} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
	}
	paths.Links = optionalTable("links", paths.Links)
	paths.Tags = optionalTable("tags", paths.Tags)

	conn, err := openDuckDB(opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close DuckDB connection")
		}
	}()

	start := time.Now()

	movies, err := loadMovies(ctx, conn, paths.Movies)
	if err != nil {
		return nil, err
	}

	var links []Link
	if paths.Links != "" {
		if links, err = loadLinks(ctx, conn, paths.Links); err != nil {
			return nil, err
		}
	}

	var ratings []Rating
	if paths.Ratings != "" {
		if ratings, err = loadRatings(ctx, conn, paths.Ratings); err != nil {
			return nil, err
		}
	}

	var tags []Tag
	if paths.Tags != "" {
		if tags, err = loadTags(ctx, conn, paths.Tags); err != nil {
			return nil, err
		}
	}

	ds, err := New(movies, links, ratings, tags)
	if err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	stats := ds.Stats()
	metrics.RecordDatasetStats(stats.Movies, stats.Ratings, stats.Tags, stats.Links, stats.Users)

	logging.Info().
		Int("movies", stats.Movies).
		Int("ratings", stats.Ratings).
		Int("tags", stats.Tags).
		Int("links", stats.Links).
		Int("users", stats.Users).
		Int("dropped_ratings", stats.DroppedRatings).
		Int("dropped_tags", stats.DroppedTags).
		Int("dropped_links", stats.DroppedLinks).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	return ds, nil
}

// optionalTable returns path, or "" when the file does not exist so the
// table loads empty.
func optionalTable(table, path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Str("table", table).Str("path", path).Msg("Optional table not found, loading it empty")
		return ""
	}
	return path
}

func openDuckDB(opts LoaderOptions) (*sql.DB, error) {
	path := opts.DatabasePath
	if path == "" {
		path = ":memory:"
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Auto-install is disabled so loading never reaches the network.
	connStr := fmt.Sprintf("%s?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false", path, threads)
	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	return conn, nil
}

// csvSource renders a read_csv table function over path. Every column is
// read as VARCHAR and cast explicitly in the select list, so type
// detection never depends on the first rows of the file.
func csvSource(path string) string {
	return fmt.Sprintf("read_csv(%s, header = true, all_varchar = true, quote = '\"', escape = '\"')", quoteLiteral(path))
}

// quoteLiteral quotes s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func loadMovies(ctx context.Context, conn *sql.DB, path string) ([]Movie, error) {
	query := fmt.Sprintf(`
		SELECT CAST(movieId AS BIGINT), COALESCE(title, ''), COALESCE(genres, '')
		FROM %s`, csvSource(path))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query movies %s: %w", path, err)
	}
	defer closeRows(rows)

	var movies []Movie
	for rows.Next() {
		var (
			m      Movie
			genres string
		)
		if err := rows.Scan(&m.ID, &m.Title, &genres); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.Genres = ParseGenres(genres)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func loadLinks(ctx context.Context, conn *sql.DB, path string) ([]Link, error) {
	query := fmt.Sprintf(`
		SELECT CAST(movieId AS BIGINT), TRY_CAST(tmdbId AS BIGINT)
		FROM %s`, csvSource(path))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query links %s: %w", path, err)
	}
	defer closeRows(rows)

	var links []Link
	for rows.Next() {
		var (
			l    Link
			tmdb sql.NullInt64
		)
		if err := rows.Scan(&l.MovieID, &tmdb); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		if tmdb.Valid {
			id := tmdb.Int64
			l.ExternalID = &id
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

func loadRatings(ctx context.Context, conn *sql.DB, path string) ([]Rating, error) {
	query := fmt.Sprintf(`
		SELECT CAST(userId AS BIGINT), CAST(movieId AS BIGINT), CAST(rating AS DOUBLE)
		FROM %s`, csvSource(path))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ratings %s: %w", path, err)
	}
	defer closeRows(rows)

	var ratings []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Value); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

func loadTags(ctx context.Context, conn *sql.DB, path string) ([]Tag, error) {
	query := fmt.Sprintf(`
		SELECT CAST(movieId AS BIGINT), COALESCE(tag, '')
		FROM %s`, csvSource(path))

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tags %s: %w", path, err)
	}
	defer closeRows(rows)

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.MovieID, &t.Text); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logging.Debug().Err(err).Msg("Failed to close rows")
	}
}
