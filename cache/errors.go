// SPDX-License-Identifier: MIT

package cache

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidKey indicates an empty dataset or technique name, or a dataset
	// name containing '_' or '/' (both are key separators).
	ErrInvalidKey = errors.New("cache: invalid key")

	// ErrKeyTooLong is returned by FileStore.Save when the blob file name
	// would exceed maxFileName bytes. Cache treats it as "not cacheable".
	ErrKeyTooLong = errors.New("cache: key too long for a file name")

	// ErrNotFound is the miss signal returned by Store.Load.
	ErrNotFound = errors.New("cache: entry not found")
)
