// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/cache"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/logger"
	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/katalvlaran/lvltrace/technique"
	"github.com/katalvlaran/lvltrace/vsm"
)

// Vectorizer computes direct textual similarity between two artifact levels.
type Vectorizer interface {
	Similarity(model technique.AlgebraicModel, source, target []dataset.Artifact) (*matrix.Dense, error)
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithVectorizer replaces the default TF-IDF/LSI vectorizer.
func WithVectorizer(v Vectorizer) Option {
	return func(e *Evaluator) {
		if v != nil {
			e.vec = v
		}
	}
}

// WithCache routes evaluations through c. Default: a disabled cache.
func WithCache(c *cache.Cache) Option {
	return func(e *Evaluator) { e.cache = c }
}

// WithRand sets the random source used by sampling stages.
// Default: a source seeded from the clock.
func WithRand(r *rand.Rand) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithLogger installs a logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) { e.log = logger.OrNop(l) }
}

// WithCacheNamespace files cache entries under CacheDataset(store name, ns).
// Callers that prepare the trace store differently (synthesis method, rounds,
// no synthesis) must pass different namespaces. Default: the bare store name.
func WithCacheNamespace(ns string) Option {
	return func(e *Evaluator) { e.ns = ns }
}

// CacheDataset is the cache dataset name for a store name and a namespace.
func CacheDataset(name, ns string) string {
	if ns == "" {
		return name
	}

	return name + "-" + ns
}

// Evaluator turns declarations into similarity matrices for one dataset.
// It is not safe for concurrent use: the random source and the store's
// matrices are shared without locking.
type Evaluator struct {
	store dataset.Store
	vec   Vectorizer
	cache *cache.Cache
	rng   *rand.Rand
	log   *zap.Logger
	ns    string
}

// New returns an Evaluator over store.
func New(store dataset.Store, opts ...Option) *Evaluator {
	e := &Evaluator{
		store: store,
		vec:   vsm.New(),
		cache: cache.Disabled(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Store is the dataset under evaluation.
func (e *Evaluator) Store() dataset.Store { return e.store }

// CacheDataset is the dataset name this Evaluator's cache entries use.
func (e *Evaluator) CacheDataset() string { return CacheDataset(e.store.Name(), e.ns) }

// EvaluateString parses expr and evaluates it.
func (e *Evaluator) EvaluateString(ctx context.Context, expr string) (*matrix.Dense, error) {
	d, err := technique.Parse(expr)
	if err != nil {
		return nil, err
	}

	return e.Evaluate(ctx, d)
}

// Evaluate returns the (|source level|, |target level|) similarity matrix of d.
// MAIN DESCRIPTION:
//   - Consults the cache under (CacheDataset(), d.Name()); stochastic
//     declarations always recompute.
//   - On a miss, runs the stages of d's kind in order over a fresh State.
//
// Errors:
//   - technique, dataset, aggregate and cache errors; ErrShapeMismatch; ctx.Err().
func (e *Evaluator) Evaluate(ctx context.Context, d technique.Declaration) (*matrix.Dense, error) {
	if d == nil {
		return nil, errors.Wrap(ErrUnsupportedDeclaration, "nil declaration")
	}

	return e.cache.GetOrCompute(ctx, e.CacheDataset(), d, func(ctx context.Context) (*matrix.Dense, error) {
		return e.run(ctx, d)
	})
}

func (e *Evaluator) run(ctx context.Context, d technique.Declaration) (*matrix.Dense, error) {
	stages, err := stagesFor(d)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	st := &State{Dataset: e.store, Declaration: d}
	for _, s := range stages {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		e.log.Debug("stage",
			zap.String(logger.FieldStage, s.name),
			zap.Stringer(logger.FieldKind, d.Kind()),
			zap.String(logger.FieldTechnique, d.Name()))
		if err = s.run(ctx, e, st); err != nil {
			return nil, errors.Wrapf(err, "%s stage of %s", s.name, d.Name())
		}
	}
	if err = e.checkShape(d, st.Similarity); err != nil {
		return nil, err
	}
	e.log.Debug("evaluated",
		zap.String(logger.FieldTechnique, d.Name()),
		zap.Int(logger.FieldComponents, technique.CountNodes(d)),
		zap.Int(logger.FieldRows, st.Similarity.Rows()),
		zap.Int(logger.FieldCols, st.Similarity.Cols()),
		zap.Int64(logger.FieldDurationMS, time.Since(start).Milliseconds()))

	return st.Similarity, nil
}

// checkShape verifies m spans d's source and target levels.
func (e *Evaluator) checkShape(d technique.Declaration, m *matrix.Dense) error {
	if m == nil {
		return errors.Wrapf(ErrShapeMismatch, "%s produced no matrix", d.Name())
	}
	rows, err := e.store.ArtifactCount(d.Source())
	if err != nil {
		return err
	}
	cols, err := e.store.ArtifactCount(d.Target())
	if err != nil {
		return err
	}
	if m.Rows() != rows || m.Cols() != cols {
		return errors.Wrapf(ErrShapeMismatch, "%s is %dx%d, levels %d and %d hold %d and %d artifacts",
			d.Name(), m.Rows(), m.Cols(), d.Source(), d.Target(), rows, cols)
	}

	return nil
}
