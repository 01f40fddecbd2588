// SPDX-License-Identifier: MIT

package dataset

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Artifact is a single textual artifact (requirement, design element, class).
type Artifact struct {
	ID   string `yaml:"id" validate:"required"`
	Body string `yaml:"body"`
}

// Level is an ordered group of artifacts; its index in the dataset is its identity.
type Level struct {
	Name      string     `yaml:"name"`
	Artifacts []Artifact `yaml:"artifacts" validate:"min=1,dive"`
}

// TraceID names an ordered pair of levels. String form is "i-j".
type TraceID struct {
	Source int
	Target int
}

// String renders "source-target".
func (t TraceID) String() string {
	return strconv.Itoa(t.Source) + "-" + strconv.Itoa(t.Target)
}

// Reverse swaps source and target.
func (t TraceID) Reverse() TraceID { return TraceID{Source: t.Target, Target: t.Source} }

// Canonical orders the pair so Source < Target.
func (t TraceID) Canonical() TraceID {
	if t.Source > t.Target {
		return t.Reverse()
	}

	return t
}

// IsCanonical reports Source < Target.
func (t TraceID) IsCanonical() bool { return t.Source < t.Target }

// Validate rejects negative indices and self pairs.
func (t TraceID) Validate() error {
	if t.Source < 0 || t.Target < 0 || t.Source == t.Target {
		return errors.Wrapf(ErrInvalidTraceID, "%s", t)
	}

	return nil
}

// ParseTraceID parses "i-j" with non-negative, distinct i and j.
func ParseTraceID(s string) (TraceID, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return TraceID{}, errors.Wrapf(ErrInvalidTraceID, "%q", s)
	}
	src, err := strconv.Atoi(left)
	if err != nil {
		return TraceID{}, errors.Wrapf(ErrInvalidTraceID, "%q: source", s)
	}
	tgt, err := strconv.Atoi(right)
	if err != nil {
		return TraceID{}, errors.Wrapf(ErrInvalidTraceID, "%q: target", s)
	}
	id := TraceID{Source: src, Target: tgt}
	if err = id.Validate(); err != nil {
		return TraceID{}, err
	}

	return id, nil
}
