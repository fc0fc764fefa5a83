// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"regexp"
	"sort"
)

// tokenPattern matches maximal runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize splits a document into word tokens of length two or more.
// Single characters and punctuation are discarded.
func Tokenize(doc string) []string {
	return tokenPattern.FindAllString(doc, -1)
}

// SparseVector holds the non-zero entries of a term vector, sorted by
// ascending term index.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int { return len(v.Indices) }

// CountVectorizer turns documents into raw term-count vectors.
type CountVectorizer struct {
	// MaxFeatures caps the vocabulary at the most frequent terms across
	// the corpus. Ties are broken alphabetically. Zero means no cap.
	MaxFeatures int

	// StopWords are removed before counting. Nil keeps every token.
	StopWords map[string]struct{}
}

// Vocabulary maps terms to vector indices in alphabetical order.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Terms returns the terms in index order.
func (v *Vocabulary) Terms() []string { return v.terms }

// Index returns the vector index of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// FitTransform learns the vocabulary from docs and returns one count
// vector per document.
func (cv *CountVectorizer) FitTransform(docs []string) (*Vocabulary, []SparseVector) {
	docCounts := make([]map[string]int, len(docs))
	totals := make(map[string]int)

	for i, doc := range docs {
		counts := make(map[string]int)
		for _, tok := range Tokenize(doc) {
			if _, stop := cv.StopWords[tok]; stop {
				continue
			}
			counts[tok]++
			totals[tok]++
		}
		docCounts[i] = counts
	}

	terms := make([]string, 0, len(totals))
	for t := range totals {
		terms = append(terms, t)
	}

	if cv.MaxFeatures > 0 && len(terms) > cv.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] != totals[terms[j]] {
				return totals[terms[i]] > totals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:cv.MaxFeatures]
	}
	sort.Strings(terms)

	vocab := &Vocabulary{terms: terms, index: make(map[string]int, len(terms))}
	for i, t := range terms {
		vocab.index[t] = i
	}

	vectors := make([]SparseVector, len(docs))
	for i, counts := range docCounts {
		var v SparseVector
		for t, n := range counts {
			if idx, ok := vocab.index[t]; ok {
				v.Indices = append(v.Indices, idx)
				v.Values = append(v.Values, float64(n))
			}
		}
		sortSparse(&v)
		vectors[i] = v
	}

	return vocab, vectors
}

// sortSparse orders the entries of v by term index.
func sortSparse(v *SparseVector) {
	sort.Sort(sparseByIndex{v})
}

type sparseByIndex struct{ v *SparseVector }

func (s sparseByIndex) Len() int           { return len(s.v.Indices) }
func (s sparseByIndex) Less(i, j int) bool { return s.v.Indices[i] < s.v.Indices[j] }
func (s sparseByIndex) Swap(i, j int) {
	s.v.Indices[i], s.v.Indices[j] = s.v.Indices[j], s.v.Indices[i]
	s.v.Values[i], s.v.Values[j] = s.v.Values[j], s.v.Values[i]
}
