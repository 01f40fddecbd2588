// SPDX-License-Identifier: MIT
// Package matrix: shape validators shared by every kernel.
//
// Validators return plain sentinels; facades wrap them with an operation tag.

package matrix

import "math"

// ValidateNotNil returns ErrNilMatrix if m is nil.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}

	return nil
}

// ValidateSameShape checks that a and b are non-nil and share (rows, cols).
func ValidateSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.r != b.r || a.c != b.c {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateMulCompatible checks a.Cols() == b.Rows().
func ValidateMulCompatible(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.c != b.r {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
func ValidateSquare(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}
	if m.r != m.c {
		return ErrNonSquare
	}

	return nil
}

// ValidateSymmetric checks squareness and |m[i,j]-m[j,i]| <= eps for i<j.
// Complexity: O(n²).
func ValidateSymmetric(m *Dense, eps float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > eps {
				return ErrAsymmetry
			}
		}
	}

	return nil
}
