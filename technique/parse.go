// SPDX-License-Identifier: MIT

package technique

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/aggregate"
)

// Parse reads technique text into a validated Declaration tree.
func Parse(text string) (Declaration, error) {
	e, err := ReadString(text)
	if err != nil {
		return nil, err
	}

	return FromExpr(e)
}

// MustParse is Parse that panics on error. For fixtures and examples.
func MustParse(text string) Declaration {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return d
}

// FromExpr builds a Declaration from a parsed expression.
// MAIN DESCRIPTION:
//   - Dispatch on the symbol through the static symbol table, then apply the
//     variant's construction contract.
//
// Errors:
//   - ErrSyntax: not a (SYMBOL (PARAMS) (COMPONENTS)) triple, or unknown symbol.
//   - ErrValidation: parameter or component rules violated.
func FromExpr(e Expr) (Declaration, error) {
	if !e.IsList || len(e.List) != 3 || e.List[0].IsList || !e.List[1].IsList || !e.List[2].IsList {
		return nil, errors.Wrapf(ErrSyntax, "expected (SYMBOL (PARAMS) (COMPONENTS)), got %s", e)
	}
	sym := e.List[0].Atom
	kind, ok := kindForSymbol(sym)
	if !ok {
		return nil, errors.Wrapf(ErrSyntax, "unable to recognize command %q", sym)
	}
	params, err := atoms(e.List[1])
	if err != nil {
		return nil, err
	}
	comps := e.List[2].List

	switch kind {
	case KindDirect:
		d, err := directFromExpr(params, comps)
		if err != nil {
			return nil, err
		}
		return d, nil
	case KindTransitive:
		agg, scaling, err := chainParams(params, 2)
		if err != nil {
			return nil, err
		}
		links, err := directLinks(comps)
		if err != nil {
			return nil, err
		}
		t, err := NewTransitive(agg, scaling, links...)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindSampledArtifacts, KindSampledTraces:
		agg, scaling, err := chainParams(params, 3)
		if err != nil {
			return nil, err
		}
		p, err := strconv.ParseFloat(params[2], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrValidation, "sample percentage %q", params[2])
		}
		links, err := directLinks(comps)
		if err != nil {
			return nil, err
		}
		s, err := NewSampled(kind, agg, scaling, p, links...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		if len(params) != 1 {
			return nil, errors.Wrapf(ErrValidation, "combined technique takes 1 parameter, got %d", len(params))
		}
		agg, err := aggregate.ParseMethod(params[0])
		if err != nil {
			return nil, errors.Wrap(ErrValidation, err.Error())
		}
		parts := make([]Declaration, 0, len(comps))
		for _, c := range comps {
			d, err := FromExpr(c)
			if err != nil {
				return nil, err
			}
			parts = append(parts, d)
		}
		c, err := NewCombined(agg, parts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func atoms(e Expr) ([]string, error) {
	out := make([]string, len(e.List))
	for i, a := range e.List {
		if a.IsList {
			return nil, errors.Wrapf(ErrValidation, "parameter %d is a list: %s", i, a)
		}
		out[i] = a.Atom
	}

	return out, nil
}

func directFromExpr(params []string, comps []Expr) (*Direct, error) {
	if len(params) != 2 {
		return nil, errors.Wrapf(ErrValidation, "direct technique takes 2 parameters, got %d", len(params))
	}
	if len(comps) != 2 || comps[0].IsList || comps[1].IsList {
		return nil, errors.Wrap(ErrValidation, "direct technique takes exactly (SOURCE TARGET)")
	}
	model, err := ParseAlgebraicModel(params[0])
	if err != nil {
		return nil, err
	}
	trace, err := ParseTraceType(params[1])
	if err != nil {
		return nil, err
	}
	src, err := strconv.Atoi(comps[0].Atom)
	if err != nil {
		return nil, errors.Wrapf(ErrValidation, "source level %q", comps[0].Atom)
	}
	tgt, err := strconv.Atoi(comps[1].Atom)
	if err != nil {
		return nil, errors.Wrapf(ErrValidation, "target level %q", comps[1].Atom)
	}

	return NewDirect(model, trace, src, tgt)
}

func chainParams(params []string, want int) (aggregate.Method, ScalingMethod, error) {
	if len(params) != want {
		return 0, 0, errors.Wrapf(ErrValidation, "expected %d parameters, got %d", want, len(params))
	}
	agg, err := aggregate.ParseMethod(params[0])
	if err != nil {
		return 0, 0, errors.Wrap(ErrValidation, err.Error())
	}
	scaling, err := ParseScalingMethod(params[1])
	if err != nil {
		return 0, 0, err
	}

	return agg, scaling, nil
}

func directLinks(comps []Expr) ([]*Direct, error) {
	links := make([]*Direct, 0, len(comps))
	for i, c := range comps {
		d, err := FromExpr(c)
		if err != nil {
			return nil, err
		}
		direct, ok := d.(*Direct)
		if !ok {
			return nil, errors.Wrapf(ErrValidation, "link %d must be a direct technique, got %s", i, d.Kind())
		}
		links = append(links, direct)
	}

	return links, nil
}
