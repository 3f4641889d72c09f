// ABOUTME: Data migration between key-value backends
// ABOUTME: Copies the dataset and auxiliary keys from a source store to a destination store

package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/harper/autoseguro/internal/kvstore"
)

// MigrateSummary holds counts of migrated records.
type MigrateSummary struct {
	Clients  int
	Vehicles int
	Policies int
	Claims   int
	Keys     int
}

// MigrateData copies the dataset from src to dst, followed by any extra keys
// (backup timestamp, session flag) that exist in src. Keys missing from src
// are skipped. The destination dataset is overwritten.
func MigrateData(src, dst kvstore.Store, extraKeys ...string) (*MigrateSummary, error) {
	ds, err := NewStore(src, nil).Load()
	if err != nil {
		return nil, fmt.Errorf("load source dataset: %w", err)
	}

	if err := NewStore(dst, nil).Save(ds); err != nil {
		return nil, fmt.Errorf("save destination dataset: %w", err)
	}

	summary := &MigrateSummary{
		Clients:  len(ds.Clients),
		Vehicles: len(ds.Vehicles),
		Policies: len(ds.Policies),
		Claims:   len(ds.Claims),
		Keys:     1,
	}

	for _, key := range extraKeys {
		value, err := src.Get(key)
		if errors.Is(err, kvstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if err := dst.Set(key, value); err != nil {
			return nil, fmt.Errorf("write %s: %w", key, err)
		}
		summary.Keys++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
