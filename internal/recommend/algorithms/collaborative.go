// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// CollaborativeConfig contains configuration for correlation ranking.
type CollaborativeConfig struct {
	// SupportFloor drops titles with this many ratings or fewer.
	SupportFloor int

	// IncludeQuery keeps the seed title in its own ranking, where it
	// normally tops the list with correlation 1.
	IncludeQuery bool

	// NumWorkers is the number of parallel workers.
	NumWorkers int
}

// DefaultCollaborativeConfig returns default collaborative configuration.
func DefaultCollaborativeConfig() CollaborativeConfig {
	return CollaborativeConfig{
		SupportFloor: 100,
		IncludeQuery: false,
		NumWorkers:   4,
	}
}

// RatingColumn holds every rating one title received. Users are dense
// indices in ascending order; duplicate ratings by one user are averaged.
type RatingColumn struct {
	Title  string
	Users  []int32
	Values []float64

	// Count is the number of raw rating rows, duplicates included.
	Count int

	// Mean is the mean over the raw rating rows.
	Mean float64
}

// RatingMatrix is a sparse title by user matrix. Absent cells mean the
// user never rated the title; they are never imputed.
type RatingMatrix struct {
	columns  []RatingColumn // ascending title order
	byTitle  map[string]int
	numUsers int
}

type ratingCell struct {
	user  int32
	value float64
}

// NewRatingMatrix joins ratings with movie titles and pivots them.
// Movies sharing a title share a column.
func NewRatingMatrix(ds *dataset.Dataset) *RatingMatrix {
	userSet := make(map[int64]struct{})
	for _, r := range ds.Ratings() {
		userSet[r.UserID] = struct{}{}
	}
	userIDs := make([]int64, 0, len(userSet))
	for u := range userSet {
		userIDs = append(userIDs, u)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
	userIndex := make(map[int64]int32, len(userIDs))
	for i, u := range userIDs {
		userIndex[u] = int32(i)
	}

	cells := make(map[string][]ratingCell)
	for _, r := range ds.Ratings() {
		m, ok := ds.MovieByID(r.MovieID)
		if !ok {
			continue
		}
		cells[m.Title] = append(cells[m.Title], ratingCell{user: userIndex[r.UserID], value: r.Value})
	}

	titles := make([]string, 0, len(cells))
	for t := range cells {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	rm := &RatingMatrix{
		columns:  make([]RatingColumn, len(titles)),
		byTitle:  make(map[string]int, len(titles)),
		numUsers: len(userIDs),
	}
	for i, t := range titles {
		rm.columns[i] = buildColumn(t, cells[t])
		rm.byTitle[t] = i
	}
	return rm
}

func buildColumn(title string, cells []ratingCell) RatingColumn {
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].user < cells[j].user })

	col := RatingColumn{Title: title, Count: len(cells)}
	var total float64
	for i := 0; i < len(cells); {
		j := i
		var sum float64
		for j < len(cells) && cells[j].user == cells[i].user {
			sum += cells[j].value
			j++
		}
		total += sum
		col.Users = append(col.Users, cells[i].user)
		col.Values = append(col.Values, sum/float64(j-i))
		i = j
	}
	if col.Count > 0 {
		col.Mean = total / float64(col.Count)
	}
	return col
}

// NumTitles returns the number of rated titles.
func (rm *RatingMatrix) NumTitles() int { return len(rm.columns) }

// NumUsers returns the number of distinct users.
func (rm *RatingMatrix) NumUsers() int { return rm.numUsers }

// Column returns the ratings for title.
func (rm *RatingMatrix) Column(title string) (RatingColumn, bool) {
	i, ok := rm.byTitle[title]
	if !ok {
		return RatingColumn{}, false
	}
	return rm.columns[i], true
}

// Pearson computes the linear correlation of two columns over the users
// who rated both. ok is false when fewer than two users overlap or either
// side has zero variance over the overlap.
func Pearson(a, b RatingColumn) (r float64, ok bool) {
	var xs, ys []float64
	for i, j := 0, 0; i < len(a.Users) && j < len(b.Users); {
		switch {
		case a.Users[i] == b.Users[j]:
			xs = append(xs, a.Values[i])
			ys = append(ys, b.Values[j])
			i++
			j++
		case a.Users[i] < b.Users[j]:
			i++
		default:
			j++
		}
	}
	return pearson(xs, ys)
}

func pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n < 2 {
		return 0, false
	}

	var mx, my float64
	for i := 0; i < n; i++ {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}

	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r)), true
}

// Collaborative ranks titles by how similarly users rated them to the seed.
type Collaborative struct {
	BaseAlgorithm
	config CollaborativeConfig
	matrix *RatingMatrix
}

// NewCollaborative creates a new collaborative algorithm.
func NewCollaborative(cfg CollaborativeConfig) *Collaborative {
	if cfg.SupportFloor < 0 {
		cfg.SupportFloor = 0
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}
	return &Collaborative{
		BaseAlgorithm: NewBaseAlgorithm("collaborative"),
		config:        cfg,
	}
}

// Train builds the rating matrix.
func (c *Collaborative) Train(ctx context.Context, ds *dataset.Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	matrix := NewRatingMatrix(ds)
	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	c.acquireTrainLock()
	defer c.releaseTrainLock()
	c.matrix = matrix
	c.markTrained()
	return nil
}

// Matrix returns the trained rating matrix, or nil before training.
func (c *Collaborative) Matrix() *RatingMatrix {
	c.acquirePredictLock()
	defer c.releasePredictLock()
	return c.matrix
}

// Rank returns titles ordered by correlation with title, highest first,
// ties broken by title. Titles with an undefined correlation or without
// more than SupportFloor ratings are dropped. A title nobody rated yields
// an empty ranking.
func (c *Collaborative) Rank(ctx context.Context, title string) ([]recommend.ScoredTitle, error) {
	c.acquirePredictLock()
	defer c.releasePredictLock()

	if !c.trained {
		return nil, recommend.ErrNotTrained
	}

	query, ok := c.matrix.Column(title)
	if !ok {
		return []recommend.ScoredTitle{}, nil
	}

	columns := c.matrix.columns
	scores := make([]float64, len(columns))
	valid := make([]bool, len(columns))

	numWorkers := c.config.NumWorkers
	chunkSize := (len(columns) + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(columns) {
			end = len(columns)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if (i-start)%256 == 0 && ContextCancelled(ctx) {
					return
				}
				col := &columns[i]
				if col.Count <= c.config.SupportFloor {
					continue
				}
				if !c.config.IncludeQuery && col.Title == title {
					continue
				}
				scores[i], valid[i] = Pearson(query, *col)
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]recommend.ScoredTitle, 0)
	for i, ok := range valid {
		if ok {
			out = append(out, recommend.ScoredTitle{Title: columns[i].Title, Score: scores[i]})
		}
	}
	// Columns are in title order already, so a stable sort breaks ties by title.
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out, nil
}
