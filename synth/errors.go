// SPDX-License-Identifier: MIT

package synth

import "github.com/cockroachdb/errors"

var (
	// ErrNoSynthesisPath is returned when two levels are not connected by any
	// chain of known traces.
	ErrNoSynthesisPath = errors.New("synth: no path to synthesize traces")

	// ErrEmptyPath indicates a path with fewer than two levels.
	ErrEmptyPath = errors.New("synth: path needs at least two levels")
)
