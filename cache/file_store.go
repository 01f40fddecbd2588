// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// blobExt is the file extension of a stored matrix.
const blobExt = ".mat"

// maxFileName is the common NAME_MAX of Linux and macOS file systems.
const maxFileName = 255

type entryKey struct {
	dataset string
	name    string
}

// FileStore keeps one blob per entry in a directory.
// The index maps (dataset, name) to a file path and is rebuilt by Reload.
//
// Blobs are named <dataset>_<technique name>.mat, so deeply nested techniques
// can exceed the file name limit. Save reports those as ErrKeyTooLong and
// Cache then returns the computed matrix uncached; the Badger backend has no
// such limit.
type FileStore struct {
	dir string

	mu    sync.RWMutex
	index map[entryKey]string
}

var _ Store = (*FileStore)(nil)

// OpenFileStore creates dir if needed and indexes the blobs already in it.
func OpenFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("cache: file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "cache: create %s", dir)
	}
	s := &FileStore{dir: dir}
	if err := s.Reload(); err != nil {
		return nil, err
	}

	return s, nil
}

// Dir is the blob directory.
func (s *FileStore) Dir() string { return s.dir }

// Reload rebuilds the index from the directory listing.
// Hidden files, subdirectories and files without the blob extension are
// ignored. The dataset is the part before the first '_'.
func (s *FileStore) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.Wrapf(err, "cache: list %s", s.dir)
	}
	index := make(map[entryKey]string, len(entries))
	for _, e := range entries {
		fname := e.Name()
		if e.IsDir() || strings.HasPrefix(fname, ".") || !strings.HasSuffix(fname, blobExt) {
			continue
		}
		dataset, name, ok := strings.Cut(strings.TrimSuffix(fname, blobExt), "_")
		if !ok || dataset == "" || name == "" {
			continue
		}
		index[entryKey{dataset: dataset, name: name}] = filepath.Join(s.dir, fname)
	}

	s.mu.Lock()
	s.index = index
	s.mu.Unlock()

	return nil
}

// Load reads and decodes a blob.
func (s *FileStore) Load(_ context.Context, dataset, name string) (*matrix.Dense, error) {
	s.mu.RLock()
	path, ok := s.index[entryKey{dataset: dataset, name: name}]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cache: read %s", path)
	}
	var m matrix.Dense
	if err = m.UnmarshalBinary(data); err != nil {
		return nil, errors.Wrapf(err, "cache: decode %s", path)
	}

	return &m, nil
}

// Save writes a blob through a temporary file and renames it into place.
func (s *FileStore) Save(_ context.Context, dataset, name string, m *matrix.Dense) error {
	if err := ValidateKey(dataset, name); err != nil {
		return err
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	file := dataset + "_" + name + blobExt
	if len(file) > maxFileName {
		return errors.Wrapf(ErrKeyTooLong, "%d bytes", len(file))
	}
	path := filepath.Join(s.dir, file)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "cache: temp file")
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "cache: write %s", path)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "cache: close %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrapf(err, "cache: rename into %s", path)
	}

	s.mu.Lock()
	s.index[entryKey{dataset: dataset, name: name}] = path
	s.mu.Unlock()

	return nil
}

// List returns the indexed names of a dataset.
func (s *FileStore) List(_ context.Context, dataset string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for k := range s.index {
		if k.dataset == dataset {
			names = append(names, k.name)
		}
	}
	sort.Strings(names)

	return names, nil
}

// Cleanup deletes the dataset's blobs and index rows.
func (s *FileStore) Cleanup(_ context.Context, dataset string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, path := range s.index {
		if k.dataset != dataset {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, errors.Wrapf(err, "cache: remove %s", path)
		}
		delete(s.index, k)
		removed++
	}

	return removed, nil
}

// Close is a no-op; blobs are written synchronously.
func (s *FileStore) Close() error { return nil }
