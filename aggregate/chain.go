// SPDX-License-Identifier: MIT

package aggregate

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// Chain composes the matrices of consecutive edges along a path into a
// single source-by-target matrix.
// MAIN DESCRIPTION:
//   - Left fold of a generalized product. For a pair (U, L):
//     MAX: out[r,c] = max_k U[r,k]·L[k,c]
//     SUM: out[r,c] = Σ_k U[r,k]·L[k,c], min-max rescaled when any value > 1
//     PCA: row (r,c) of an observation matrix holds U[r,k]·L[k,c] for every k;
//     out[r,c] is the PCA-weighted row sum, then min-max scaled.
//
// Behavior highlights:
//   - A single matrix is returned as an independent copy.
//   - An empty inner dimension yields a zero matrix of the outer shape.
//
// Errors:
//   - ErrNoMatrices, ErrShapeMismatch (inner dimensions), ErrUnknownMethod.
//
// Complexity:
//   - Time O(Σ r·k·c) per fold step (PCA adds the eigen solve on k columns).
func Chain(method Method, ms ...*matrix.Dense) (*matrix.Dense, error) {
	if len(ms) == 0 {
		return nil, ErrNoMatrices
	}
	for i, m := range ms {
		if m == nil {
			return nil, errors.Wrapf(matrix.ErrNilMatrix, "chain operand %d", i)
		}
	}
	acc := ms[0].Clone()
	var err error
	for i := 1; i < len(ms); i++ {
		if acc.Cols() != ms[i].Rows() {
			return nil, errors.Wrapf(ErrShapeMismatch, "chain step %d: %dx%d then %dx%d",
				i, acc.Rows(), acc.Cols(), ms[i].Rows(), ms[i].Cols())
		}
		if acc, err = composePair(method, acc, ms[i]); err != nil {
			return nil, err
		}
	}

	return acc, nil
}

func composePair(method Method, upper, lower *matrix.Dense) (*matrix.Dense, error) {
	if method == MethodPCA {
		return composePCA(upper, lower)
	}
	reduce, err := method.scalar()
	if err != nil {
		return nil, err
	}
	nRows, nMid, nCols := upper.Rows(), upper.Cols(), lower.Cols()
	u, l := upper.RawData(), lower.RawData()
	out := make([]float64, nRows*nCols)
	products := make([]float64, nMid)
	var r, c, k int
	for r = 0; r < nRows; r++ {
		for c = 0; c < nCols; c++ {
			for k = 0; k < nMid; k++ {
				products[k] = u[r*nMid+k] * l[k*nCols+c]
			}
			out[r*nCols+c] = reduceWith(reduce, products)
		}
	}
	if method == MethodSum && exceedsOne(out) {
		out = matrix.MinMaxScale(out)
	}

	return matrix.NewFromData(nRows, nCols, out)
}

// composePCA builds the (nRows·nCols)×nMid observation matrix of path products,
// weights it with PCAWeights and min-max scales the result.
func composePCA(upper, lower *matrix.Dense) (*matrix.Dense, error) {
	nRows, nMid, nCols := upper.Rows(), upper.Cols(), lower.Cols()
	if nMid == 0 {
		return matrix.Zeros(nRows, nCols)
	}
	u, l := upper.RawData(), lower.RawData()
	data := make([]float64, nRows*nCols*nMid)
	var r, c, k, row int
	for r = 0; r < nRows; r++ {
		for c = 0; c < nCols; c++ {
			row = r*nCols + c
			for k = 0; k < nMid; k++ {
				data[row*nMid+k] = u[r*nMid+k] * l[k*nCols+c]
			}
		}
	}
	obs, err := matrix.NewFromData(nRows*nCols, nMid, data)
	if err != nil {
		return nil, err
	}
	scores := matrix.MinMaxScale(weightedRows(obs, PCAWeights(obs)))

	return matrix.NewFromData(nRows, nCols, scores)
}
