// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// fixtureConfig writes a tiny catalog plus a config file pointing at it.
func fixtureConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	movies := writeFixture(t, dir, "movies.csv", `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy
2,Jumanji (1995),Adventure|Children|Fantasy
3,Heat (1995),Action|Crime|Thriller
4,Toy Story 2 (1999),Adventure|Animation|Children|Comedy|Fantasy
`)
	ratings := writeFixture(t, dir, "ratings.csv", `userId,movieId,rating,timestamp
1,1,5.0,1
1,2,4.0,1
1,3,1.0,1
1,4,5.0,1
2,1,4.0,1
2,2,3.0,1
2,3,2.0,1
2,4,4.5,1
3,1,2.0,1
3,2,2.5,1
3,3,5.0,1
3,4,1.5,1
`)
	return writeFixture(t, dir, "config.yaml", `data:
  movies_path: `+movies+`
  ratings_path: `+ratings+`
  duckdb_threads: 1
recommend:
  support_floor: 1
  workers: 1
poster:
  enabled: false
`)
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "reelmatch "+version {
		t.Errorf("output = %q", out)
	}
}

func TestMovies_Search(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, _, err := run(t, "--config", cfgPath, "movies", "--search", "toy")
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{"Toy Story (1995)", "Toy Story 2 (1999)"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestMovies_Limit(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, _, err := run(t, "-c", cfgPath, "movies", "-n", "1")
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	if strings.TrimSpace(out) != "Toy Story (1995)" {
		t.Errorf("output = %q", out)
	}
}

func TestMovies_NoMatch(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, errOut, err := run(t, "-c", cfgPath, "movies", "--search", "zzz")
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	if out != "" || !strings.Contains(errOut, "no matching titles") {
		t.Errorf("stdout = %q stderr = %q", out, errOut)
	}
}

func TestRecommend_Text(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, _, err := run(t, "-c", cfgPath, "recommend", "Toy Story (1995)")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, want := range []string{"Because you picked: Toy Story (1995)", "Top picks:", "Toy Story 2 (1999)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecommend_JSON(t *testing.T) {
	cfgPath := fixtureConfig(t)

	out, _, err := run(t, "-c", cfgPath, "recommend", "--json", "Toy Story (1995)")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var got recommendOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.Query != "Toy Story (1995)" {
		t.Errorf("query = %q", got.Query)
	}
	if len(got.SimilarContent) == 0 || got.SimilarContent[0] != "Toy Story 2 (1999)" {
		t.Errorf("similar_content = %v", got.SimilarContent)
	}
}

func TestRecommend_UnknownTitle(t *testing.T) {
	cfgPath := fixtureConfig(t)

	_, _, err := run(t, "-c", cfgPath, "recommend", "Nope (2000)")
	if err == nil || !strings.Contains(err.Error(), "unknown title") {
		t.Fatalf("err = %v, want unknown title", err)
	}
}

func TestRecommend_RequiresTitle(t *testing.T) {
	cfgPath := fixtureConfig(t)

	if _, _, err := run(t, "-c", cfgPath, "recommend"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestBadConfigPath(t *testing.T) {
	_, _, err := run(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "movies")
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Fatalf("err = %v", err)
	}
}
