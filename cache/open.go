// SPDX-License-Identifier: MIT

package cache

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Backend names accepted by OpenStore.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// ErrUnknownBackend is returned by OpenStore for names other than BackendFile and BackendBadger.
var ErrUnknownBackend = errors.New("cache: unknown backend")

// OpenStore opens the named backend rooted at dir. The Badger database lives
// in dir/badger so both backends can share one cache directory.
func OpenStore(backend, dir string, log *zap.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return OpenFileStore(dir)
	case BackendBadger:
		return OpenBadgerStore(BadgerConfig{Path: filepath.Join(dir, "badger"), Logger: log})
	}

	return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
}
