// SPDX-License-Identifier: MIT

package aggregate

import (
	"math"

	"github.com/katalvlaran/lvltrace/matrix"
)

// PCAWeights returns one weight per column of obs (rows = observations,
// columns = sources of evidence).
// MAIN DESCRIPTION:
//   - Weight k is the k-th largest explained-variance ratio of a PCA that keeps
//     every component, fitted on the column-standardized observations.
//
// Implementation:
//   - Stage 1: standardize every column (population std; constant columns center to 0).
//   - Stage 2: sample covariance of the standardized columns.
//   - Stage 3: Jacobi eigenvalues, sorted descending, negatives clamped to 0.
//   - Stage 4: ratio = λ_k / Σλ.
//
// Behavior highlights:
//   - Ratios are applied positionally: column k receives the k-th ratio.
//   - Fewer than two observations, zero total variance, non-convergence or
//     NaN all fall back to uniform 1/N.
//
// Complexity:
//   - Time O(r·c² + c³·sweeps), Space O(r·c + c²).
func PCAWeights(obs *matrix.Dense) []float64 {
	r, c := obs.Shape()
	if c == 0 {
		return nil
	}
	uniform := make([]float64, c)
	for i := range uniform {
		uniform[i] = 1 / float64(c)
	}
	if r < 2 {
		return uniform
	}

	raw := obs.RawData()
	std := make([]float64, r*c)
	col := make([]float64, r)
	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			col[i] = raw[i*c+j]
		}
		for i, v := range matrix.Standardize(col) {
			std[i*c+j] = v
		}
	}
	z, err := matrix.NewFromData(r, c, std)
	if err != nil {
		return uniform
	}
	cov, _, err := matrix.Covariance(z)
	if err != nil {
		return uniform
	}
	eigs, _, err := matrix.EigenDescending(cov, matrix.DefaultEigenTol, matrix.DefaultEigenMaxIter)
	if err != nil {
		return uniform
	}

	var total float64
	for k, v := range eigs {
		if v < 0 {
			eigs[k] = 0
		}
		total += eigs[k]
	}
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return uniform
	}
	for k := range eigs {
		eigs[k] /= total
	}

	return eigs
}

// weightedRows returns Σ_k obs[i,k]·w[k] for every row i.
func weightedRows(obs *matrix.Dense, w []float64) []float64 {
	r, c := obs.Shape()
	raw := obs.RawData()
	out := make([]float64, r)
	var i, k int
	for i = 0; i < r; i++ {
		for k = 0; k < c; k++ {
			out[i] += raw[i*c+k] * w[k]
		}
	}

	return out
}
