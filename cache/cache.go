// SPDX-License-Identifier: MIT

package cache

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/logger"
	"github.com/katalvlaran/lvltrace/matrix"
)

// Key identifies a cacheable computation.
type Key interface {
	// Name is the canonical, structurally unique name of the computation.
	Name() string
	// Stochastic results are never stored or reused.
	Stochastic() bool
}

// ComputeFunc produces the value for a key on a miss.
type ComputeFunc func(ctx context.Context) (*matrix.Dense, error)

// Option configures a Cache.
type Option func(*Cache)

// WithEnabled toggles storage use. A disabled cache always computes.
func WithEnabled(enabled bool) Option {
	return func(c *Cache) { c.enabled = enabled }
}

// WithLogger installs a logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.log = logger.OrNop(l) }
}

// Cache routes deterministic computations through a Store.
// A nil *Cache behaves as a disabled one.
type Cache struct {
	enabled bool
	store   Store
	log     *zap.Logger
}

// New returns an enabled Cache over store. A nil store yields a disabled cache.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{enabled: store != nil, store: store, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.enabled = false
	}

	return c
}

// Disabled returns a cache that never stores.
func Disabled() *Cache { return New(nil) }

// Enabled reports whether lookups and stores happen.
func (c *Cache) Enabled() bool { return c != nil && c.enabled }

// Store exposes the backend (nil when none was given).
func (c *Cache) Store() Store {
	if c == nil {
		return nil
	}

	return c.store
}

// GetOrCompute returns the stored matrix for (dataset, key) or computes and stores it.
// MAIN DESCRIPTION:
//   - disabled or key.Stochastic() → compute, nothing stored.
//   - hit → stored matrix; compute is not called.
//   - miss → compute, persist, return the computed matrix. A store that
//     rejects the key with ErrKeyTooLong leaves the result uncached.
//
// Errors:
//   - ErrInvalidKey for names the backend cannot key; compute and store errors.
func (c *Cache) GetOrCompute(ctx context.Context, dataset string, key Key, compute ComputeFunc) (*matrix.Dense, error) {
	if !c.Enabled() || key.Stochastic() {
		return compute(ctx)
	}
	name := key.Name()
	if err := ValidateKey(dataset, name); err != nil {
		return nil, err
	}

	m, err := c.store.Load(ctx, dataset, name)
	switch {
	case err == nil:
		c.log.Debug("cache hit", zap.String(logger.FieldDataset, dataset), zap.String(logger.FieldCacheKey, name))
		return m, nil
	case !errors.Is(err, ErrNotFound):
		return nil, errors.Wrapf(err, "cache load %s", name)
	}

	c.log.Debug("cache miss", zap.String(logger.FieldDataset, dataset), zap.String(logger.FieldCacheKey, name))
	if m, err = compute(ctx); err != nil {
		return nil, err
	}
	err = c.store.Save(ctx, dataset, name, m)
	switch {
	case errors.Is(err, ErrKeyTooLong):
		c.log.Warn("cache skipped", zap.String(logger.FieldDataset, dataset),
			zap.String(logger.FieldCacheKey, name), zap.Error(err))
	case err != nil:
		return nil, errors.Wrapf(err, "cache store %s", name)
	}

	return m, nil
}

// Cleanup removes every entry of a dataset and reports how many were removed.
// A disabled cache is a no-op. Not safe to run while computations of the
// same dataset are in flight.
func (c *Cache) Cleanup(ctx context.Context, dataset string) (int, error) {
	if c == nil || c.store == nil {
		return 0, nil
	}
	if err := validateDataset(dataset); err != nil {
		return 0, err
	}
	n, err := c.store.Cleanup(ctx, dataset)
	if err != nil {
		return 0, errors.Wrapf(err, "cache cleanup %s", dataset)
	}
	c.log.Info("cache cleaned", zap.String(logger.FieldDataset, dataset), zap.Int(logger.FieldRemoved, n))

	return n, nil
}

// Close closes the backend, if any.
func (c *Cache) Close() error {
	if c == nil || c.store == nil {
		return nil
	}

	return c.store.Close()
}
