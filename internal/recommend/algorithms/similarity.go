// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"fmt"
	"math"
)

type posting struct {
	row    int
	weight float64
}

// SimilarityMatrix is the cosine similarity between every pair of profile
// vectors. Entries are computed on demand; the matrix is symmetric, its
// diagonal is 1 and every entry lies in [0, 1]. A zero vector has
// similarity 0 to every other row.
type SimilarityMatrix struct {
	vectors  []SparseVector // L2-normalized
	postings [][]posting    // per term index
	ids      []int64
	rowByID  map[int64]int
}

// NewSimilarityMatrix builds a matrix over count vectors. ids[i] is the
// movie id of row i; vocabSize bounds the term indices.
func NewSimilarityMatrix(ids []int64, vectors []SparseVector, vocabSize int) (*SimilarityMatrix, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("ids and vectors differ in length: %d != %d", len(ids), len(vectors))
	}

	m := &SimilarityMatrix{
		vectors:  make([]SparseVector, len(vectors)),
		postings: make([][]posting, vocabSize),
		ids:      append([]int64(nil), ids...),
		rowByID:  make(map[int64]int, len(ids)),
	}

	for row, id := range ids {
		if _, dup := m.rowByID[id]; dup {
			return nil, fmt.Errorf("duplicate movie id %d", id)
		}
		m.rowByID[id] = row

		v := normalize(vectors[row])
		m.vectors[row] = v
		for k, idx := range v.Indices {
			if idx < 0 || idx >= vocabSize {
				return nil, fmt.Errorf("row %d: term index %d out of range", row, idx)
			}
			m.postings[idx] = append(m.postings[idx], posting{row: row, weight: v.Values[k]})
		}
	}
	return m, nil
}

func normalize(v SparseVector) SparseVector {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	out := SparseVector{
		Indices: append([]int(nil), v.Indices...),
		Values:  make([]float64, len(v.Values)),
	}
	if sum == 0 {
		return SparseVector{}
	}
	norm := math.Sqrt(sum)
	for i, x := range v.Values {
		out.Values[i] = x / norm
	}
	return out
}

// Len returns the number of rows.
func (m *SimilarityMatrix) Len() int { return len(m.ids) }

// RowOf returns the row index for a movie id.
func (m *SimilarityMatrix) RowOf(movieID int64) (int, bool) {
	row, ok := m.rowByID[movieID]
	return row, ok
}

// MovieIDAt returns the movie id of row.
func (m *SimilarityMatrix) MovieIDAt(row int) int64 { return m.ids[row] }

// At returns the similarity between rows i and j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	if i == j {
		return 1
	}
	a, b := m.vectors[i], m.vectors[j]
	var dot float64
	for x, y := 0, 0; x < len(a.Indices) && y < len(b.Indices); {
		switch {
		case a.Indices[x] == b.Indices[y]:
			dot += a.Values[x] * b.Values[y]
			x++
			y++
		case a.Indices[x] < b.Indices[y]:
			x++
		default:
			y++
		}
	}
	return clampUnit(dot)
}

// Row returns the similarities of row i against every row.
// Terms are visited in ascending index order, matching At, so
// Row(i)[j] == Row(j)[i] == At(i, j) exactly.
func (m *SimilarityMatrix) Row(i int) []float64 {
	out := make([]float64, len(m.ids))
	v := m.vectors[i]
	for k, idx := range v.Indices {
		w := v.Values[k]
		for _, p := range m.postings[idx] {
			out[p.row] += w * p.weight
		}
	}
	for j := range out {
		out[j] = clampUnit(out[j])
	}
	out[i] = 1
	return out
}

// Dense materializes the full matrix. Intended for small corpora and tests.
func (m *SimilarityMatrix) Dense() [][]float64 {
	dense := make([][]float64, len(m.ids))
	for i := range dense {
		dense[i] = m.Row(i)
	}
	return dense
}

func clampUnit(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
