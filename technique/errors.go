// SPDX-License-Identifier: MIT

package technique

import "github.com/cockroachdb/errors"

var (
	// ErrSyntax indicates malformed expression text or an unknown symbol.
	ErrSyntax = errors.New("technique: syntax error")

	// ErrValidation indicates a well-formed expression that violates a variant's rules
	// (arity, parameter values, broken chains, mismatched endpoints).
	ErrValidation = errors.New("technique: invalid declaration")
)
