// SPDX-License-Identifier: MIT

package synth

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/aggregate"
	"github.com/katalvlaran/lvltrace/core"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/logger"
	"github.com/katalvlaran/lvltrace/matrix"
)

// DefaultRounds is the number of refinement passes after the missing pairs are filled.
const DefaultRounds = 5

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithMethod sets how candidates from several paths are merged. Default MAX.
func WithMethod(m aggregate.Method) Option {
	return func(s *Synthesizer) { s.method = m }
}

// WithRounds sets the number of refinement rounds. Negative values are ignored.
func WithRounds(n int) Option {
	return func(s *Synthesizer) {
		if n >= 0 {
			s.rounds = n
		}
	}
}

// WithLogger installs a logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(s *Synthesizer) { s.log = logger.OrNop(l) }
}

// Synthesizer fills and refines the trace matrices of a level graph.
type Synthesizer struct {
	method aggregate.Method
	rounds int
	log    *zap.Logger
}

// New returns a Synthesizer with MAX merging and DefaultRounds refinement rounds.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		method: aggregate.MethodMax,
		rounds: DefaultRounds,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Method is the candidate merge method.
func (s *Synthesizer) Method() aggregate.Method { return s.method }

// Label names the configuration, e.g. "MAX5" for MAX with five rounds.
func (s *Synthesizer) Label() string { return s.method.String() + strconv.Itoa(s.rounds) }

// Rounds is the number of refinement rounds.
func (s *Synthesizer) Rounds() int { return s.rounds }

// Complete builds the level graph of d and synthesizes every missing pair of
// d's trace map in place. The returned graph is complete.
func (s *Synthesizer) Complete(ctx context.Context, d *dataset.Dataset) (*core.Graph, error) {
	g, err := BuildGraph(d.LevelCount(), d.Traces().IDs())
	if err != nil {
		return nil, err
	}
	if err = s.SynthesizeMissing(ctx, g, d.Traces()); err != nil {
		return nil, errors.Wrapf(err, "dataset %s", d.Name())
	}

	return g, nil
}

// SynthesizeMissing completes traces over the levels of g.
// MAIN DESCRIPTION:
//   - Every unordered pair of levels without a matrix receives the merge of
//     its path candidates; g gains an edge per synthesized pair.
//
// Implementation:
//   - Stage 1: label connected components; for each pair (i,j), i<j, not
//     stored, reject split components with ErrNoSynthesisPath, then enumerate
//     all simple paths in the current graph.
//   - Stage 2: compute every candidate matrix against the known traces only,
//     then store all of them and add their edges.
//   - Stage 3: run Rounds() refinement rounds (see Refine).
//
// Behavior highlights:
//   - Calling it again on a complete map finds nothing missing but still refines.
//
// Errors:
//   - ErrNoSynthesisPath, dataset.ErrMissingTrace, aggregate errors, ctx.Err().
func (s *Synthesizer) SynthesizeMissing(ctx context.Context, g *core.Graph, traces *dataset.MatrixMap) error {
	if g == nil {
		return errors.New("synth: graph is nil")
	}
	n := g.VertexCount()
	component, err := Components(ctx, g)
	if err != nil {
		return err
	}

	var (
		pending []dataset.TraceID
		found   = make(map[dataset.TraceID][][]int)
	)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			id := dataset.TraceID{Source: i, Target: j}
			if traces.Has(id) {
				continue
			}
			if component[i] != component[j] {
				return errors.Wrapf(ErrNoSynthesisPath, "levels %s are disconnected", id)
			}
			paths, err := Paths(ctx, g, i, j)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.Wrapf(ErrNoSynthesisPath, "levels %s", id)
			}
			pending = append(pending, id)
			found[id] = paths
		}
	}

	synthesized := make(map[dataset.TraceID]*matrix.Dense, len(pending))
	for _, id := range pending {
		m, err := s.CandidateMatrix(traces, found[id])
		if err != nil {
			return errors.Wrapf(err, "synthesize %s", id)
		}
		synthesized[id] = m
		s.log.Debug("synthesized missing traces",
			zap.Stringer(logger.FieldTraceID, id),
			zap.Int(logger.FieldPaths, len(found[id])))
	}
	for _, id := range pending {
		if err := traces.Set(id, synthesized[id]); err != nil {
			return err
		}
		if _, err := g.AddEdge(vertexID(id.Source), vertexID(id.Target)); err != nil && !errors.Is(err, core.ErrMultiEdgeNotAllowed) {
			return errors.Wrapf(err, "edge %s", id)
		}
	}

	for round := 0; round < s.rounds; round++ {
		if err := s.Refine(ctx, g, traces); err != nil {
			return errors.Wrapf(err, "refinement round %d", round+1)
		}
		s.log.Debug("refinement round done", zap.Int(logger.FieldRound, round+1), zap.Int(logger.FieldCount, traces.Len()))
	}
	s.log.Info("trace synthesis complete",
		zap.Int(logger.FieldCount, len(pending)),
		zap.Int(logger.FieldRound, s.rounds),
		zap.Stringer(logger.FieldMethod, s.method))

	return nil
}

// Refine recomputes every stored pair from all of its paths in g.
// All candidates read a snapshot taken before the round; results replace the
// stored matrices together at the end.
func (s *Synthesizer) Refine(ctx context.Context, g *core.Graph, traces *dataset.MatrixMap) error {
	snapshot := traces.Clone()
	ids := snapshot.IDs()
	updated := make([]*matrix.Dense, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		paths, err := Paths(ctx, g, id.Source, id.Target)
		if err != nil {
			return err
		}
		if updated[i], err = s.CandidateMatrix(snapshot, paths); err != nil {
			return errors.Wrapf(err, "refine %s", id)
		}
	}
	for i, id := range ids {
		if err := traces.Set(id, updated[i]); err != nil {
			return err
		}
	}

	return nil
}

// CandidateMatrix merges one candidate per path.
// Each candidate is the MAX chain of the matrices on the path's consecutive
// level pairs; candidates are combined with Method().
func (s *Synthesizer) CandidateMatrix(traces *dataset.MatrixMap, paths [][]int) (*matrix.Dense, error) {
	if len(paths) == 0 {
		return nil, ErrNoSynthesisPath
	}
	candidates := make([]*matrix.Dense, 0, len(paths))
	for _, p := range paths {
		ms, err := pathMatrices(traces, p)
		if err != nil {
			return nil, err
		}
		c, err := aggregate.Chain(aggregate.MethodMax, ms...)
		if err != nil {
			return nil, errors.Wrapf(err, "path %v", p)
		}
		candidates = append(candidates, c)
	}

	return aggregate.Combine(s.method, candidates...)
}

func pathMatrices(traces *dataset.MatrixMap, path []int) ([]*matrix.Dense, error) {
	if len(path) < 2 {
		return nil, errors.Wrapf(ErrEmptyPath, "%v", path)
	}
	ms := make([]*matrix.Dense, 0, len(path)-1)
	for k := 0; k+1 < len(path); k++ {
		id := dataset.TraceID{Source: path[k], Target: path[k+1]}
		m, ok := traces.Get(id)
		if !ok {
			return nil, errors.Wrapf(dataset.ErrMissingTrace, "%s on path %v", id, path)
		}
		ms = append(ms, m)
	}

	return ms, nil
}
