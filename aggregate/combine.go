// SPDX-License-Identifier: MIT

package aggregate

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// Combine reduces equally shaped matrices cell by cell.
// MAIN DESCRIPTION:
//   - Flatten each input and stack them as columns of an observation matrix
//     (rows = cell positions, columns = inputs).
//   - MAX/SUM: scalar reducer per row.
//   - PCA: PCAWeights over the observations, weighted sum of the raw columns.
//   - Any result above 1 is min-max rescaled, then reshaped to the input shape.
//     Rescaling covers the whole result, so a 1×1 SUM above 1 becomes 0 and
//     an all-equal result above 1 becomes all zeros.
//
// Errors:
//   - ErrNoMatrices, ErrShapeMismatch, ErrUnknownMethod.
//
// Complexity:
//   - Time O(N·r·c) for MAX/SUM; PCA adds O(r·c·N²) for the covariance.
func Combine(method Method, ms ...*matrix.Dense) (*matrix.Dense, error) {
	if len(ms) == 0 {
		return nil, ErrNoMatrices
	}
	for i, m := range ms {
		if m == nil {
			return nil, errors.Wrapf(matrix.ErrNilMatrix, "combine operand %d", i)
		}
		if err := matrix.ValidateSameShape(ms[0], m); err != nil {
			return nil, errors.Wrapf(ErrShapeMismatch, "combine operand %d: %dx%d, want %dx%d",
				i, m.Rows(), m.Cols(), ms[0].Rows(), ms[0].Cols())
		}
	}
	rows, cols := ms[0].Shape()
	cells, n := rows*cols, len(ms)

	stacked := make([]float64, cells*n)
	for k, m := range ms {
		for i, v := range m.RawData() {
			stacked[i*n+k] = v
		}
	}
	obs, err := matrix.NewFromData(cells, n, stacked)
	if err != nil {
		return nil, err
	}

	var values []float64
	if method == MethodPCA {
		values = weightedRows(obs, PCAWeights(obs))
	} else {
		reduce, err := method.scalar()
		if err != nil {
			return nil, err
		}
		values = make([]float64, cells)
		for i := 0; i < cells; i++ {
			values[i] = reduceWith(reduce, stacked[i*n:(i+1)*n])
		}
	}
	if exceedsOne(values) {
		values = matrix.MinMaxScale(values)
	}

	return matrix.NewFromData(rows, cols, values)
}
