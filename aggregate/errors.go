// SPDX-License-Identifier: MIT

package aggregate

import "github.com/cockroachdb/errors"

var (
	// ErrShapeMismatch indicates incompatible operand shapes
	// (inner dimensions for Chain, full shape for Combine).
	ErrShapeMismatch = errors.New("aggregate: shape mismatch")

	// ErrNoMatrices is returned when nothing is given to reduce.
	ErrNoMatrices = errors.New("aggregate: no matrices")

	// ErrUnknownMethod is returned for tokens outside MAX, SUM and PCA.
	ErrUnknownMethod = errors.New("aggregate: unknown method")
)
