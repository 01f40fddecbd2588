// SPDX-License-Identifier: MIT

package pipeline

import "github.com/cockroachdb/errors"

var (
	// ErrShapeMismatch indicates a stage produced or received a matrix whose
	// shape does not match the levels it connects.
	ErrShapeMismatch = errors.New("pipeline: shape mismatch")

	// ErrUnsupportedDeclaration is returned for a declaration type without stages.
	ErrUnsupportedDeclaration = errors.New("pipeline: unsupported declaration")
)
