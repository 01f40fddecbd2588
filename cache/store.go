// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// Store persists matrices by (dataset, name).
type Store interface {
	// Load returns the stored matrix or ErrNotFound.
	Load(ctx context.Context, dataset, name string) (*matrix.Dense, error)
	// Save stores m, replacing any previous entry.
	Save(ctx context.Context, dataset, name string, m *matrix.Dense) error
	// List returns the stored technique names of a dataset, sorted.
	List(ctx context.Context, dataset string) ([]string, error)
	// Cleanup removes every entry of a dataset and reports how many were removed.
	Cleanup(ctx context.Context, dataset string) (int, error)
	// Close releases the backend.
	Close() error
}

// ValidateKey checks the (dataset, name) pair against the key separators.
func ValidateKey(dataset, name string) error {
	if err := validateDataset(dataset); err != nil {
		return err
	}
	if name == "" || strings.ContainsRune(name, '/') {
		return errors.Wrapf(ErrInvalidKey, "technique name %q", name)
	}

	return nil
}

func validateDataset(dataset string) error {
	if dataset == "" || strings.ContainsAny(dataset, "_/") {
		return errors.Wrapf(ErrInvalidKey, "dataset name %q", dataset)
	}

	return nil
}
