// SPDX-License-Identifier: MIT

package dataset

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidTraceID is returned for malformed "i-j" identifiers or i == j.
	ErrInvalidTraceID = errors.New("dataset: invalid trace id")

	// ErrLevelOutOfRange indicates a level index outside [0, LevelCount).
	ErrLevelOutOfRange = errors.New("dataset: level out of range")

	// ErrMissingTrace is returned when no matrix (in either orientation) exists for a pair.
	ErrMissingTrace = errors.New("dataset: missing trace matrix")

	// ErrNoOracle is returned when neither orientation of an oracle matrix exists.
	ErrNoOracle = errors.New("dataset: no oracle matrix")

	// ErrUnknownArtifact indicates a trace link naming an artifact absent from its level.
	ErrUnknownArtifact = errors.New("dataset: unknown artifact")

	// ErrDuplicateTrace indicates both orientations of a pair were declared.
	ErrDuplicateTrace = errors.New("dataset: duplicate trace")

	// ErrInvalidDataset wraps structural validation failures of a dataset file.
	ErrInvalidDataset = errors.New("dataset: invalid dataset")
)
