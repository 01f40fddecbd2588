// SPDX-License-Identifier: MIT

package vsm

import (
	"math"
	"regexp"
	"sort"

	"golang.org/x/text/cases"

	"github.com/katalvlaran/lvltrace/matrix"
)

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Tokenize case-folds text and returns its tokens in order.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(cases.Fold().String(text), -1)
}

// TFIDF is a fitted vocabulary with inverse document frequencies.
type TFIDF struct {
	vocab map[string]int
	idf   []float64
}

// FitTFIDF learns the vocabulary (sorted terms) and smooth idf
// ln((1+n)/(1+df)) + 1 from docs.
func FitTFIDF(docs []string) *TFIDF {
	df := make(map[string]int)
	for _, d := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(d) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	m := &TFIDF{vocab: make(map[string]int, len(terms)), idf: make([]float64, len(terms))}
	n := float64(len(docs))
	for i, t := range terms {
		m.vocab[t] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return m
}

// VocabularySize is the number of distinct terms.
func (m *TFIDF) VocabularySize() int { return len(m.idf) }

// Transform maps docs to L2-normalized tf·idf rows. Terms outside the
// vocabulary are ignored; a document without known terms is a zero row.
func (m *TFIDF) Transform(docs []string) (*matrix.Dense, error) {
	cols := len(m.idf)
	data := make([]float64, len(docs)*cols)
	for r, d := range docs {
		row := data[r*cols : (r+1)*cols]
		for _, tok := range Tokenize(d) {
			if j, ok := m.vocab[tok]; ok {
				row[j]++
			}
		}
		var norm float64
		for j := range row {
			row[j] *= m.idf[j]
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
	}

	return matrix.NewFromData(len(docs), cols, data)
}
