// SPDX-License-Identifier: MIT

package dataset

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// MatrixMap stores one similarity matrix per unordered pair of levels.
// MAIN DESCRIPTION:
//   - Entries live under the canonical id (i<j). Set with i>j stores the
//     transpose; Get with i>j transposes on demand.
//
// Behavior highlights:
//   - Never holds both orientations of a pair.
//   - Stored matrices are treated as immutable; callers replace, never mutate.
//
// Notes:
//   - Not safe for concurrent mutation; synthesis owns it exclusively.
type MatrixMap struct {
	m map[TraceID]*matrix.Dense
}

// NewMatrixMap returns an empty map.
func NewMatrixMap() *MatrixMap {
	return &MatrixMap{m: make(map[TraceID]*matrix.Dense)}
}

// Set stores m for id, canonicalizing orientation.
func (mm *MatrixMap) Set(id TraceID, m *matrix.Dense) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if m == nil {
		return errors.Wrapf(matrix.ErrNilMatrix, "set %s", id)
	}
	if !id.IsCanonical() {
		t, err := matrix.Transpose(m)
		if err != nil {
			return errors.Wrapf(err, "set %s", id)
		}
		m = t
		id = id.Reverse()
	}
	mm.m[id] = m

	return nil
}

// Get returns the matrix for id in the requested orientation.
// The boolean is false when neither orientation is stored.
func (mm *MatrixMap) Get(id TraceID) (*matrix.Dense, bool) {
	if m, ok := mm.m[id]; ok {
		return m, true
	}
	m, ok := mm.m[id.Reverse()]
	if !ok {
		return nil, false
	}
	t, err := matrix.Transpose(m)
	if err != nil {
		return nil, false
	}

	return t, true
}

// Has reports whether either orientation of id is stored.
func (mm *MatrixMap) Has(id TraceID) bool {
	_, ok := mm.m[id.Canonical()]

	return ok
}

// Len is the number of stored pairs.
func (mm *MatrixMap) Len() int { return len(mm.m) }

// IDs returns the canonical ids in (Source, Target) order.
func (mm *MatrixMap) IDs() []TraceID {
	ids := make([]TraceID, 0, len(mm.m))
	for id := range mm.m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Source != ids[j].Source {
			return ids[i].Source < ids[j].Source
		}

		return ids[i].Target < ids[j].Target
	})

	return ids
}

// Clone copies the index; matrices are shared since they are never mutated in place.
func (mm *MatrixMap) Clone() *MatrixMap {
	c := &MatrixMap{m: make(map[TraceID]*matrix.Dense, len(mm.m))}
	for id, m := range mm.m {
		c.m[id] = m
	}

	return c
}
