// SPDX-License-Identifier: MIT

package vsm

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/katalvlaran/lvltrace/technique"
)

// Vectorizer computes source×target similarity for an algebraic model.
type Vectorizer struct{}

// New returns the default vectorizer.
func New() *Vectorizer { return &Vectorizer{} }

// Similarity fits TF-IDF on both levels and compares every source artifact
// with every target artifact under model.
func (v *Vectorizer) Similarity(model technique.AlgebraicModel, source, target []dataset.Artifact) (*matrix.Dense, error) {
	a, b := bodies(source), bodies(target)
	tfidf := FitTFIDF(append(append(make([]string, 0, len(a)+len(b)), a...), b...))
	ta, err := tfidf.Transform(a)
	if err != nil {
		return nil, err
	}
	tb, err := tfidf.Transform(b)
	if err != nil {
		return nil, err
	}

	switch model {
	case technique.ModelVSM:
		return Cosine(ta, tb)
	case technique.ModelLSI:
		return lsi(ta, tb)
	}

	return nil, errors.Newf("vsm: unsupported algebraic model %s", model)
}

func lsi(ta, tb *matrix.Dense) (*matrix.Dense, error) {
	k := min(ta.Rows(), tb.Rows(), MaxLSIComponents)
	stacked := make([]float64, 0, len(ta.RawData())+len(tb.RawData()))
	stacked = append(append(stacked, ta.RawData()...), tb.RawData()...)
	x, err := matrix.NewFromData(ta.Rows()+tb.Rows(), ta.Cols(), stacked)
	if err != nil {
		return nil, err
	}
	coords, err := LatentCoordinates(x, k)
	if err != nil {
		return nil, err
	}
	srcRows, tgtRows := seq(0, ta.Rows()), seq(ta.Rows(), ta.Rows()+tb.Rows())
	ca, err := coords.Induced(srcRows, nil)
	if err != nil {
		return nil, err
	}
	cb, err := coords.Induced(tgtRows, nil)
	if err != nil {
		return nil, err
	}

	return Cosine(ca, cb)
}

func bodies(as []dataset.Artifact) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Body
	}

	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}

	return out
}
