// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/aggregate"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/katalvlaran/lvltrace/technique"
)

// stage is one named step of a pipeline.
type stage struct {
	name string
	run  func(ctx context.Context, e *Evaluator, st *State) error
}

// Stage names, in the order they appear across pipelines.
const (
	stageDirect          = "direct"
	stageLinks           = "links"
	stageSampleArtifacts = "sample-artifacts"
	stageSampleTraces    = "sample-traces"
	stageScale           = "scale"
	stageChain           = "chain"
	stageCombine         = "combine"
)

// pipelineFor returns the stages of kind in run order.
func pipelineFor(kind technique.Kind) ([]stage, bool) {
	links := stage{name: stageLinks, run: runLinks}
	scale := stage{name: stageScale, run: runScale}
	chain := stage{name: stageChain, run: runChain}

	switch kind {
	case technique.KindDirect:
		return []stage{{name: stageDirect, run: runDirect}}, true
	case technique.KindTransitive:
		return []stage{links, scale, chain}, true
	case technique.KindSampledArtifacts:
		return []stage{links, {name: stageSampleArtifacts, run: runSampleArtifacts}, scale, chain}, true
	case technique.KindSampledTraces:
		return []stage{links, {name: stageSampleTraces, run: runSampleTraces}, scale, chain}, true
	case technique.KindCombined:
		return []stage{{name: stageCombine, run: runCombine}}, true
	}

	return nil, false
}

// StageNames lists the stage names run for kind, in order.
func StageNames(kind technique.Kind) []string {
	stages, _ := pipelineFor(kind)
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.name)
	}

	return names
}

func stagesFor(d technique.Declaration) ([]stage, error) {
	switch d.(type) {
	case *technique.Direct, *technique.Transitive, *technique.Sampled, *technique.Combined:
	default:
		return nil, errors.Wrapf(ErrUnsupportedDeclaration, "%T", d)
	}
	stages, ok := pipelineFor(d.Kind())
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedDeclaration, "kind %s", d.Kind())
	}

	return stages, nil
}

// chainOf returns the chain behind a transitive or sampled declaration.
func chainOf(d technique.Declaration) (*technique.Transitive, error) {
	switch t := d.(type) {
	case *technique.Transitive:
		return t, nil
	case *technique.Sampled:
		return &t.Transitive, nil
	}

	return nil, errors.Wrapf(ErrUnsupportedDeclaration, "%s is not a chain", d.Kind())
}

func runDirect(_ context.Context, e *Evaluator, st *State) error {
	d, ok := st.Declaration.(*technique.Direct)
	if !ok {
		return errors.Wrapf(ErrUnsupportedDeclaration, "%T in direct stage", st.Declaration)
	}
	if d.Trace == technique.Traced {
		m, err := st.Dataset.DirectMatrix(dataset.TraceID{Source: d.Src, Target: d.Tgt})
		if err != nil {
			return err
		}
		st.Similarity = m
		return nil
	}

	src, err := st.Dataset.Artifacts(d.Src)
	if err != nil {
		return err
	}
	tgt, err := st.Dataset.Artifacts(d.Tgt)
	if err != nil {
		return err
	}
	m, err := e.vec.Similarity(d.Model, src, tgt)
	if err != nil {
		return errors.Wrapf(err, "%s similarity %d-%d", d.Model, d.Src, d.Tgt)
	}
	st.Similarity = m

	return nil
}

// runLinks evaluates every chain link through the Evaluator, so links are cached.
func runLinks(ctx context.Context, e *Evaluator, st *State) error {
	t, err := chainOf(st.Declaration)
	if err != nil {
		return err
	}
	st.Intermediate = make([]*matrix.Dense, 0, len(t.Links))
	for _, l := range t.Links {
		m, err := e.Evaluate(ctx, l)
		if err != nil {
			return err
		}
		st.Intermediate = append(st.Intermediate, m)
	}

	return nil
}

// runSampleArtifacts keeps a random subset of each intermediate level.
func runSampleArtifacts(_ context.Context, e *Evaluator, st *State) error {
	s, ok := st.Declaration.(*technique.Sampled)
	if !ok {
		return errors.Wrapf(ErrUnsupportedDeclaration, "%T in sample-artifacts stage", st.Declaration)
	}
	for i := 0; i+1 < len(st.Intermediate); i++ {
		upper, lower := st.Intermediate[i], st.Intermediate[i+1]
		if upper.Cols() != lower.Rows() {
			return errors.Wrapf(ErrShapeMismatch, "boundary %d: %d columns vs %d rows", i, upper.Cols(), lower.Rows())
		}
		keep := SampleIndices(e.rng, upper.Cols(), s.Percentage)
		var err error
		if st.Intermediate[i], err = upper.Induced(nil, keep); err != nil {
			return err
		}
		if st.Intermediate[i+1], err = lower.Induced(keep, nil); err != nil {
			return err
		}
	}

	return nil
}

// runSampleTraces replaces a random subset of link cells with oracle values.
// Positions index the row-major concatenation of all link matrices in chain
// order. Links without an oracle keep their computed values.
func runSampleTraces(_ context.Context, e *Evaluator, st *State) error {
	s, ok := st.Declaration.(*technique.Sampled)
	if !ok {
		return errors.Wrapf(ErrUnsupportedDeclaration, "%T in sample-traces stage", st.Declaration)
	}
	total := 0
	for _, m := range st.Intermediate {
		total += m.Len()
	}
	picked := SampleIndices(e.rng, total, s.Percentage)

	offset, next := 0, 0
	for i, m := range st.Intermediate {
		end := offset + m.Len()
		var cells []int
		for ; next < len(picked) && picked[next] < end; next++ {
			cells = append(cells, picked[next]-offset)
		}
		offset = end
		if len(cells) == 0 {
			continue
		}
		link := s.Links[i]
		oracle, err := st.Dataset.OracleMatrix(link.Src, link.Tgt)
		if errors.Is(err, dataset.ErrNoOracle) {
			continue
		}
		if err != nil {
			return err
		}
		if err = matrix.ValidateSameShape(oracle, m); err != nil {
			return errors.Wrapf(ErrShapeMismatch, "oracle %d-%d: %v", link.Src, link.Tgt, err)
		}
		replaced := m.Clone()
		src, dst := oracle.RawData(), replaced.RawData()
		for _, c := range cells {
			dst[c] = src[c]
		}
		st.Intermediate[i] = replaced
	}

	return nil
}

// runScale min-max scales the link matrices, independently or globally.
func runScale(_ context.Context, _ *Evaluator, st *State) error {
	t, err := chainOf(st.Declaration)
	if err != nil {
		return err
	}
	if t.Scaling == technique.ScalingIndependent {
		for i, m := range st.Intermediate {
			st.Intermediate[i] = matrix.ScaleMinMax(m)
		}
		return nil
	}

	var all []float64
	for _, m := range st.Intermediate {
		all = append(all, m.RawData()...)
	}
	scaled := matrix.MinMaxScale(all)
	offset := 0
	for i, m := range st.Intermediate {
		part, err := matrix.NewFromData(m.Rows(), m.Cols(), scaled[offset:offset+m.Len()])
		if err != nil {
			return err
		}
		st.Intermediate[i] = part
		offset += m.Len()
	}

	return nil
}

func runChain(_ context.Context, _ *Evaluator, st *State) error {
	t, err := chainOf(st.Declaration)
	if err != nil {
		return err
	}
	m, err := aggregate.Chain(t.Aggregation, st.Intermediate...)
	if err != nil {
		return err
	}
	st.Similarity = m

	return nil
}

// runCombine evaluates every part recursively and merges them cell by cell.
func runCombine(ctx context.Context, e *Evaluator, st *State) error {
	c, ok := st.Declaration.(*technique.Combined)
	if !ok {
		return errors.Wrapf(ErrUnsupportedDeclaration, "%T in combine stage", st.Declaration)
	}
	parts := make([]*matrix.Dense, 0, len(c.Parts))
	for i, p := range c.Parts {
		m, err := e.Evaluate(ctx, p)
		if err != nil {
			return err
		}
		if len(parts) > 0 && matrix.ValidateSameShape(parts[0], m) != nil {
			return errors.Wrapf(ErrShapeMismatch, "part %d is %dx%d, part 0 is %dx%d",
				i, m.Rows(), m.Cols(), parts[0].Rows(), parts[0].Cols())
		}
		parts = append(parts, m)
	}
	m, err := aggregate.Combine(c.Aggregation, parts...)
	if err != nil {
		return err
	}
	st.Similarity = m

	return nil
}
