// SPDX-License-Identifier: MIT

package technique

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind enumerates the declaration variants.
type Kind int

const (
	KindDirect Kind = iota
	KindTransitive
	KindSampledArtifacts
	KindSampledTraces
	KindCombined
)

var kindSymbols = [...]string{
	KindDirect:           ".",
	KindTransitive:       "x",
	KindSampledArtifacts: "~",
	KindSampledTraces:    "$",
	KindCombined:         "o",
}

var kindNames = [...]string{
	KindDirect:           "direct",
	KindTransitive:       "transitive",
	KindSampledArtifacts: "sampled-artifacts",
	KindSampledTraces:    "sampled-traces",
	KindCombined:         "combined",
}

// Symbol is the DSL symbol of k.
func (k Kind) Symbol() string { return kindSymbols[k] }

// String is a human-readable variant name.
func (k Kind) String() string { return kindNames[k] }

func kindForSymbol(sym string) (Kind, bool) {
	for i, s := range kindSymbols {
		if s == sym {
			return Kind(i), true
		}
	}

	return 0, false
}

// AlgebraicModel selects the text representation used for direct similarity.
type AlgebraicModel int

const (
	ModelVSM AlgebraicModel = iota
	ModelLSI
)

func (m AlgebraicModel) String() string {
	if m == ModelLSI {
		return "LSI"
	}

	return "VSM"
}

// ParseAlgebraicModel accepts VSM and LSI (case-insensitive).
func ParseAlgebraicModel(s string) (AlgebraicModel, error) {
	switch strings.ToUpper(s) {
	case "VSM":
		return ModelVSM, nil
	case "LSI":
		return ModelLSI, nil
	}

	return 0, errors.Wrapf(ErrValidation, "unknown algebraic model %q", s)
}

// TraceType says whether a direct technique reads known traces or computes text similarity.
type TraceType int

const (
	NotTraced TraceType = iota
	Traced
)

// String is the canonical short token (T or NT).
func (t TraceType) String() string {
	if t == Traced {
		return "T"
	}

	return "NT"
}

// ParseTraceType accepts T/TRACED and NT/NOT_TRACED.
func ParseTraceType(s string) (TraceType, error) {
	switch strings.ToUpper(s) {
	case "T", "TRACED":
		return Traced, nil
	case "NT", "NOT_TRACED":
		return NotTraced, nil
	}

	return 0, errors.Wrapf(ErrValidation, "unknown trace type %q", s)
}

// ScalingMethod selects how link matrices are normalized before chaining.
type ScalingMethod int

const (
	// ScalingIndependent min-max scales each link matrix on its own.
	ScalingIndependent ScalingMethod = iota
	// ScalingGlobal min-max scales across the values of every link matrix together.
	ScalingGlobal
)

func (s ScalingMethod) String() string {
	if s == ScalingGlobal {
		return "GLOBAL"
	}

	return "INDEPENDENT"
}

// ParseScalingMethod accepts INDEPENDENT and GLOBAL (case-insensitive).
func ParseScalingMethod(s string) (ScalingMethod, error) {
	switch strings.ToUpper(s) {
	case "INDEPENDENT":
		return ScalingIndependent, nil
	case "GLOBAL":
		return ScalingGlobal, nil
	}

	return 0, errors.Wrapf(ErrValidation, "unknown scaling method %q", s)
}
