// SPDX-License-Identifier: MIT

package dataset

import (
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvltrace/matrix"
)

// File is the on-disk structure of a dataset.
//
//	name: MockDataset
//	levels:
//	  - name: requirements
//	    artifacts:
//	      - {id: R1, body: "..."}
//	traces:
//	  "0-1": [[R1, D1]]
//
// Dataset names key cache entries, so "_" and "/" are rejected.
type File struct {
	Name   string                `yaml:"name" validate:"required,excludesall=_/"`
	Levels []Level               `yaml:"levels" validate:"required,min=1,dive"`
	Traces map[string][][]string `yaml:"traces" validate:"dive,dive,len=2"`
}

var validate = validator.New()

// LoadFile reads and parses a YAML dataset file.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", path)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}

	return d, nil
}

// Parse decodes a YAML dataset and builds its trace matrices.
// MAIN DESCRIPTION:
//   - Structural checks via struct tags, then link lists become 0/1 matrices.
//
// Implementation:
//   - Stage 1: yaml.Unmarshal into File; validator.Struct.
//   - Stage 2: index artifact IDs per level (duplicates rejected).
//   - Stage 3: per trace key, parse the id, allocate |src|×|tgt| zeros,
//     set 1 for every link; reject both orientations of one pair.
//   - Stage 4: New(name, levels, traces).
//
// Errors:
//   - ErrInvalidDataset, ErrInvalidTraceID, ErrUnknownArtifact, ErrDuplicateTrace.
func Parse(data []byte) (*Dataset, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(ErrInvalidDataset, err.Error())
	}
	if err := validate.Struct(f); err != nil {
		return nil, errors.Wrap(ErrInvalidDataset, err.Error())
	}

	index := make([]map[string]int, len(f.Levels))
	for li, l := range f.Levels {
		index[li] = make(map[string]int, len(l.Artifacts))
		for ai, a := range l.Artifacts {
			if _, dup := index[li][a.ID]; dup {
				return nil, errors.Wrapf(ErrInvalidDataset, "level %d: duplicate artifact %q", li, a.ID)
			}
			index[li][a.ID] = ai
		}
	}

	keys := make([]string, 0, len(f.Traces))
	for k := range f.Traces {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	traces := NewMatrixMap()
	for _, key := range keys {
		id, err := ParseTraceID(key)
		if err != nil {
			return nil, err
		}
		if id.Source >= len(f.Levels) || id.Target >= len(f.Levels) {
			return nil, errors.Wrapf(ErrLevelOutOfRange, "trace %s", id)
		}
		if traces.Has(id) {
			return nil, errors.Wrapf(ErrDuplicateTrace, "%s", id)
		}
		m, err := matrix.NewDense(len(f.Levels[id.Source].Artifacts), len(f.Levels[id.Target].Artifacts))
		if err != nil {
			return nil, errors.Wrapf(err, "trace %s", id)
		}
		for _, link := range f.Traces[key] {
			r, ok := index[id.Source][link[0]]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownArtifact, "trace %s: %q not in level %d", id, link[0], id.Source)
			}
			c, ok := index[id.Target][link[1]]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownArtifact, "trace %s: %q not in level %d", id, link[1], id.Target)
			}
			if err = m.Set(r, c, 1); err != nil {
				return nil, err
			}
		}
		if err = traces.Set(id, m); err != nil {
			return nil, err
		}
	}

	return New(f.Name, f.Levels, traces)
}
