// SPDX-License-Identifier: MIT

package dataset

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// Store is the read surface the evaluator consumes.
type Store interface {
	// Name identifies the dataset; it keys cache entries.
	Name() string
	// LevelCount is the number of artifact levels.
	LevelCount() int
	// ArtifactCount returns the size of a level.
	ArtifactCount(level int) (int, error)
	// Artifacts returns the artifacts of a level in order.
	Artifacts(level int) ([]Artifact, error)
	// DirectMatrix returns the (possibly synthesized) trace matrix for id.
	DirectMatrix(id TraceID) (*matrix.Dense, error)
	// OracleMatrix returns the ground-truth matrix for (source, target).
	OracleMatrix(source, target int) (*matrix.Dense, error)
}

// Dataset is the in-memory Store.
type Dataset struct {
	name    string
	levels  []Level
	traces  *MatrixMap
	oracles *MatrixMap
}

var _ Store = (*Dataset)(nil)

// New validates shapes and builds a Dataset.
// MAIN DESCRIPTION:
//   - Every trace matrix must be (|source level|, |target level|) and reference
//     levels within range.
//
// Implementation:
//   - Stage 1: reject fewer than one level or empty levels.
//   - Stage 2: validate every stored matrix against the level sizes.
//   - Stage 3: snapshot traces as oracles.
//
// Errors:
//   - ErrInvalidDataset, ErrLevelOutOfRange, matrix.ErrDimensionMismatch.
func New(name string, levels []Level, traces *MatrixMap) (*Dataset, error) {
	if len(levels) == 0 {
		return nil, errors.Wrap(ErrInvalidDataset, "no levels")
	}
	for i, l := range levels {
		if len(l.Artifacts) == 0 {
			return nil, errors.Wrapf(ErrInvalidDataset, "level %d has no artifacts", i)
		}
	}
	if traces == nil {
		traces = NewMatrixMap()
	}
	d := &Dataset{name: name, levels: levels, traces: traces}
	for _, id := range traces.IDs() {
		if id.Target >= len(levels) {
			return nil, errors.Wrapf(ErrLevelOutOfRange, "trace %s", id)
		}
		m, _ := traces.Get(id)
		if m.Rows() != len(levels[id.Source].Artifacts) || m.Cols() != len(levels[id.Target].Artifacts) {
			return nil, errors.Wrapf(matrix.ErrDimensionMismatch,
				"trace %s is %dx%d, levels hold %d and %d artifacts",
				id, m.Rows(), m.Cols(), len(levels[id.Source].Artifacts), len(levels[id.Target].Artifacts))
		}
	}
	d.oracles = traces.Clone()

	return d, nil
}

// Name identifies the dataset.
func (d *Dataset) Name() string { return d.name }

// LevelCount is the number of levels.
func (d *Dataset) LevelCount() int { return len(d.levels) }

// Levels returns the level slice (read-only by convention).
func (d *Dataset) Levels() []Level { return d.levels }

func (d *Dataset) level(i int) (Level, error) {
	if i < 0 || i >= len(d.levels) {
		return Level{}, errors.Wrapf(ErrLevelOutOfRange, "level %d of %d", i, len(d.levels))
	}

	return d.levels[i], nil
}

// ArtifactCount returns the number of artifacts in a level.
func (d *Dataset) ArtifactCount(level int) (int, error) {
	l, err := d.level(level)
	if err != nil {
		return 0, err
	}

	return len(l.Artifacts), nil
}

// Artifacts returns the artifacts of a level.
func (d *Dataset) Artifacts(level int) ([]Artifact, error) {
	l, err := d.level(level)
	if err != nil {
		return nil, err
	}

	return l.Artifacts, nil
}

// Traces exposes the mutable trace map. Synthesis completes and refines it in place.
func (d *Dataset) Traces() *MatrixMap { return d.traces }

// DirectMatrix returns the trace matrix for id, transposing when only the
// reverse orientation is stored.
func (d *Dataset) DirectMatrix(id TraceID) (*matrix.Dense, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	m, ok := d.traces.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrMissingTrace, "%s in %s", id, d.name)
	}

	return m, nil
}

// OracleMatrix returns the ground truth for (source, target): the stored
// "s-t" matrix, else the transpose of "t-s".
func (d *Dataset) OracleMatrix(source, target int) (*matrix.Dense, error) {
	id := TraceID{Source: source, Target: target}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	m, ok := d.oracles.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrNoOracle, "%s in %s", id, d.name)
	}

	return m, nil
}
