// SPDX-License-Identifier: MIT

package aggregate

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Method selects the reducer used by Chain and Combine.
type Method int

const (
	// MethodMax keeps the strongest evidence.
	MethodMax Method = iota
	// MethodSum accumulates evidence, rescaling results above 1.
	MethodSum
	// MethodPCA weights inputs by explained variance.
	MethodPCA
)

var methodNames = [...]string{MethodMax: "MAX", MethodSum: "SUM", MethodPCA: "PCA"}

// String returns the DSL token for m.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}

	return methodNames[m]
}

// ParseMethod maps a case-insensitive token to a Method.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if strings.EqualFold(s, name) {
			return Method(i), nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownMethod, "%q", s)
}

// scalar returns the MAX/SUM reducer; PCA has no scalar form.
func (m Method) scalar() (func(acc, v float64) float64, error) {
	switch m {
	case MethodMax:
		return func(acc, v float64) float64 {
			if v > acc {
				return v
			}

			return acc
		}, nil
	case MethodSum:
		return func(acc, v float64) float64 { return acc + v }, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%s has no scalar reducer", m)
	}
}
