// SPDX-License-Identifier: MIT

package technique

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/aggregate"
)

// Declaration is a node of a technique tree. The set of implementations is
// closed: *Direct, *Transitive, *Sampled and *Combined.
type Declaration interface {
	// Kind is the variant of this node.
	Kind() Kind
	// Source is the level the resulting matrix has as rows.
	Source() int
	// Target is the level the resulting matrix has as columns.
	Target() int
	// Stochastic reports whether this node or any descendant samples randomly.
	Stochastic() bool
	// Name is the canonical expression text.
	Name() string
	// Components lists the direct children (nil for Direct).
	Components() []Declaration

	sealed()
}

// Direct compares two levels with one algebraic model, or reads their known traces.
type Direct struct {
	Model AlgebraicModel
	Trace TraceType
	Src   int
	Tgt   int
}

// NewDirect validates the endpoints.
func NewDirect(model AlgebraicModel, trace TraceType, source, target int) (*Direct, error) {
	if source < 0 || target < 0 {
		return nil, errors.Wrapf(ErrValidation, "negative level in %d-%d", source, target)
	}
	if source == target {
		return nil, errors.Wrapf(ErrValidation, "direct technique from level %d to itself", source)
	}

	return &Direct{Model: model, Trace: trace, Src: source, Tgt: target}, nil
}

func (d *Direct) Kind() Kind                { return KindDirect }
func (d *Direct) Source() int               { return d.Src }
func (d *Direct) Target() int               { return d.Tgt }
func (d *Direct) Stochastic() bool          { return false }
func (d *Direct) Components() []Declaration { return nil }
func (d *Direct) sealed()                   {}

// Name renders "(. (MODEL TRACE) (SOURCE TARGET))".
func (d *Direct) Name() string {
	return render(KindDirect,
		[]string{d.Model.String(), d.Trace.String()},
		[]string{strconv.Itoa(d.Src), strconv.Itoa(d.Tgt)})
}

// Transitive chains direct links through intermediate levels.
type Transitive struct {
	Aggregation aggregate.Method
	Scaling     ScalingMethod
	Links       []*Direct
}

// NewTransitive validates that links form a contiguous chain of at least two
// direct techniques sharing one algebraic model.
func NewTransitive(agg aggregate.Method, scaling ScalingMethod, links ...*Direct) (*Transitive, error) {
	if len(links) < 2 {
		return nil, errors.Wrapf(ErrValidation, "transitive technique needs at least 2 links, got %d", len(links))
	}
	for i, l := range links {
		if l == nil {
			return nil, errors.Wrapf(ErrValidation, "link %d is nil", i)
		}
		if l.Model != links[0].Model {
			return nil, errors.Wrapf(ErrValidation, "link %d uses %s, chain uses %s", i, l.Model, links[0].Model)
		}
		if i > 0 && links[i-1].Tgt != l.Src {
			return nil, errors.Wrapf(ErrValidation, "link %d starts at level %d, previous ends at %d", i, l.Src, links[i-1].Tgt)
		}
	}
	if links[0].Src == links[len(links)-1].Tgt {
		return nil, errors.Wrapf(ErrValidation, "chain returns to its source level %d", links[0].Src)
	}

	return &Transitive{Aggregation: agg, Scaling: scaling, Links: links}, nil
}

func (t *Transitive) Kind() Kind       { return KindTransitive }
func (t *Transitive) Source() int      { return t.Links[0].Src }
func (t *Transitive) Target() int      { return t.Links[len(t.Links)-1].Tgt }
func (t *Transitive) Stochastic() bool { return false }
func (t *Transitive) sealed()          {}

// Model is the algebraic model shared by every link.
func (t *Transitive) Model() AlgebraicModel { return t.Links[0].Model }

func (t *Transitive) Components() []Declaration {
	out := make([]Declaration, len(t.Links))
	for i, l := range t.Links {
		out[i] = l
	}

	return out
}

// Name renders "(x (AGG SCALING) (LINK ...))".
func (t *Transitive) Name() string {
	return render(KindTransitive, []string{t.Aggregation.String(), t.Scaling.String()}, names(t.Components()))
}

// Sampled is a Transitive technique evaluated on a random subset of
// intermediate artifacts (KindSampledArtifacts) or with a random subset of
// link cells replaced by known traces (KindSampledTraces).
type Sampled struct {
	Transitive
	Variant    Kind
	Percentage float64
}

// NewSampled validates the variant, the percentage in (0,1] and the chain.
func NewSampled(kind Kind, agg aggregate.Method, scaling ScalingMethod, percentage float64, links ...*Direct) (*Sampled, error) {
	if kind != KindSampledArtifacts && kind != KindSampledTraces {
		return nil, errors.Wrapf(ErrValidation, "%s is not a sampled variant", kind)
	}
	if !(percentage > 0 && percentage <= 1) {
		return nil, errors.Wrapf(ErrValidation, "sample percentage %v outside (0,1]", percentage)
	}
	t, err := NewTransitive(agg, scaling, links...)
	if err != nil {
		return nil, err
	}

	return &Sampled{Transitive: *t, Variant: kind, Percentage: percentage}, nil
}

func (s *Sampled) Kind() Kind       { return s.Variant }
func (s *Sampled) Stochastic() bool { return true }

// Name renders "(~ (AGG SCALING P) (LINK ...))" with P to six decimals.
func (s *Sampled) Name() string {
	return render(s.Variant,
		[]string{s.Aggregation.String(), s.Scaling.String(), strconv.FormatFloat(s.Percentage, 'f', 6, 64)},
		names(s.Components()))
}

// Combined merges several techniques with identical endpoints.
type Combined struct {
	Aggregation aggregate.Method
	Parts       []Declaration
}

// NewCombined validates at least two parts resolving to the same (source, target).
func NewCombined(agg aggregate.Method, parts ...Declaration) (*Combined, error) {
	if len(parts) < 2 {
		return nil, errors.Wrapf(ErrValidation, "combined technique needs at least 2 components, got %d", len(parts))
	}
	for i, p := range parts {
		if p == nil {
			return nil, errors.Wrapf(ErrValidation, "component %d is nil", i)
		}
		if p.Source() != parts[0].Source() || p.Target() != parts[0].Target() {
			return nil, errors.Wrapf(ErrValidation, "component %d spans %d-%d, expected %d-%d",
				i, p.Source(), p.Target(), parts[0].Source(), parts[0].Target())
		}
	}

	return &Combined{Aggregation: agg, Parts: parts}, nil
}

func (c *Combined) Kind() Kind                { return KindCombined }
func (c *Combined) Source() int               { return c.Parts[0].Source() }
func (c *Combined) Target() int               { return c.Parts[0].Target() }
func (c *Combined) Components() []Declaration { return c.Parts }
func (c *Combined) sealed()                   {}

func (c *Combined) Stochastic() bool {
	for _, p := range c.Parts {
		if p.Stochastic() {
			return true
		}
	}

	return false
}

// Name renders "(o (AGG) (PART ...))".
func (c *Combined) Name() string {
	return render(KindCombined, []string{c.Aggregation.String()}, names(c.Parts))
}

func names(ds []Declaration) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name()
	}

	return out
}

func render(k Kind, params, components []string) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(k.Symbol())
	sb.WriteString(" (")
	sb.WriteString(strings.Join(params, " "))
	sb.WriteString(") (")
	sb.WriteString(strings.Join(components, " "))
	sb.WriteString("))")

	return sb.String()
}
