// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvltrace/matrix"
)

// keyPrefix namespaces similarity entries inside the database.
const keyPrefix = "sim/"

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the database directory. Required unless InMemory.
	Path string
	// InMemory keeps everything in RAM (tests, throwaway runs).
	InMemory bool
	// Logger receives Badger's internal messages; nil silences them.
	Logger *zap.Logger
}

// BadgerStore keeps entries under "sim/<dataset>/<name>".
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Infof(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }

// OpenBadgerStore opens (or creates) a Badger database.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("cache: badger path is required for a persistent store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, errors.Wrapf(err, "cache: create %s", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{s: cfg.Logger.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "cache: open badger")
	}

	return &BadgerStore{db: db}, nil
}

func datasetPrefix(dataset string) []byte { return []byte(keyPrefix + dataset + "/") }

func entryKeyBytes(dataset, name string) []byte {
	return append(datasetPrefix(dataset), name...)
}

// Load reads an entry; badger.ErrKeyNotFound becomes ErrNotFound.
func (s *BadgerStore) Load(_ context.Context, dataset, name string) (*matrix.Dense, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKeyBytes(dataset, name))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cache: badger get %s/%s", dataset, name)
	}
	var m matrix.Dense
	if err = m.UnmarshalBinary(blob); err != nil {
		return nil, errors.Wrapf(err, "cache: decode %s/%s", dataset, name)
	}

	return &m, nil
}

// Save writes an entry in one transaction.
func (s *BadgerStore) Save(_ context.Context, dataset, name string, m *matrix.Dense) error {
	if err := ValidateKey(dataset, name); err != nil {
		return err
	}
	blob, err := m.MarshalBinary()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKeyBytes(dataset, name), blob)
	})
}

// List scans the dataset prefix without fetching values.
func (s *BadgerStore) List(_ context.Context, dataset string) ([]string, error) {
	prefix := datasetPrefix(dataset)
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cache: badger list %s", dataset)
	}
	sort.Strings(names)

	return names, nil
}

// Cleanup counts the dataset's keys, then drops the whole prefix.
func (s *BadgerStore) Cleanup(ctx context.Context, dataset string) (int, error) {
	names, err := s.List(ctx, dataset)
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, nil
	}
	if err = s.db.DropPrefix(datasetPrefix(dataset)); err != nil {
		return 0, errors.Wrapf(err, "cache: badger drop %s", dataset)
	}

	return len(names), nil
}

// Close closes the database.
func (s *BadgerStore) Close() error { return s.db.Close() }
