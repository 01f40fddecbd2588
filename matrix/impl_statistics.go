// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms used by similarity scaling and PCA weighting
//     (min-max scaling, z-scoring, column centering, covariance) as deterministic
//     compositions over canonical kernels (Mul/Transpose/Scale).
//
// Exposed API:
//   - MinMaxScale(values)    -> scaled copy in [0,1]; constant input → zeros
//   - Standardize(values)    -> z-scores with population std; zero std → centered values
//   - ScaleMinMax(m)         -> MinMaxScale over every cell of m
//   - CenterColumns(X)       -> (Xc, means)
//   - Covariance(X)          -> (Cov, means), sample covariance of columns (Xcᵀ Xc)/(r-1)
//
// Determinism:
//   - Fixed i→j traversal for all explicit loops.

package matrix

import "math"

const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// MinMaxScale maps values linearly onto [0,1].
// A constant (or empty) input maps to all zeros.
// Complexity: O(n).
func MinMaxScale(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / span
	}

	return out
}

// ScaleMinMax returns a copy of m whose cells are min-max scaled together.
func ScaleMinMax(m *Dense) *Dense {
	return &Dense{r: m.r, c: m.c, data: MinMaxScale(m.data)}
}

// Standardize returns (v-mean)/std using the population standard deviation.
// MAIN DESCRIPTION:
//   - Column z-scoring ahead of PCA.
//
// Behavior highlights:
//   - len(values) <= 1 returns an unchanged copy.
//   - std == 0 leaves the centered values (all zeros).
//
// Complexity:
//   - Time O(n), Space O(n).
func Standardize(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	n := len(values)
	if n <= 1 {
		return out
	}
	var mean, ss float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	for i := range out {
		out[i] -= mean
		ss += out[i] * out[i]
	}
	std := math.Sqrt(ss / float64(n))
	if std == 0 {
		return out
	}
	for i := range out {
		out[i] /= std
	}

	return out
}

// CenterColumns subtracts the per-column mean from every element.
// Zero-size input returns an empty copy and zero means.
// Complexity: O(r*c).
func CenterColumns(x *Dense) (*Dense, []float64, error) {
	if err := ValidateNotNil(x); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	means := make([]float64, x.c)
	out := x.Clone()
	if x.r == 0 || x.c == 0 {
		return out, means, nil
	}
	var i, j int
	for i = 0; i < x.r; i++ {
		for j = 0; j < x.c; j++ {
			means[j] += x.data[i*x.c+j]
		}
	}
	for j = 0; j < x.c; j++ {
		means[j] /= float64(x.r)
	}
	for i = 0; i < x.r; i++ {
		for j = 0; j < x.c; j++ {
			out.data[i*x.c+j] -= means[j]
		}
	}

	return out, means, nil
}

// Covariance computes the sample covariance of the columns of x.
// MAIN DESCRIPTION:
//   - Cov = (Xcᵀ Xc)/(r-1) where Xc is column-centered x.
//
// Implementation:
//   - Stage 1: validate non-nil, r>=2 (c==0 yields an empty 0×0 result).
//   - Stage 2: center columns.
//   - Stage 3: Transpose, Mul, Scale.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2).
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
//
// Notes:
//   - The result is exactly symmetric: both triangles accumulate in the same k order.
func Covariance(x *Dense) (*Dense, []float64, error) {
	if err := ValidateNotNil(x); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if x.c == 0 {
		return &Dense{}, []float64{}, nil
	}
	if x.r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	xc, means, err := CenterColumns(x)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	xct, err := Transpose(xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	g, err := Mul(xct, xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Scale(g, 1.0/float64(x.r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return cov, means, nil
}
