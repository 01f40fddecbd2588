// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Every kernel returns these sentinels (optionally wrapped with an
// operation tag) and tests match them via errors.Is.

package matrix

import "github.com/cockroachdb/errors"

// Every message is prefixed with "matrix: ...". Kernels wrap them with
// matrixErrorf(tag, err); errors.Is sees through the wrapper.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive
	// (or negative for the zero-allowing constructors).
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or ragged input rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrMatrixEigenFailed indicates that the Jacobi routine did not converge
	// under the given tolerance/iterations.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrCorruptBlob is returned by UnmarshalBinary for truncated or inconsistent payloads.
	ErrCorruptBlob = errors.New("matrix: corrupt binary payload")
)
