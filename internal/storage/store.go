// ABOUTME: Record store holding the complete insurance dataset as one JSON blob
// ABOUTME: Serializes read-modify-write cycles and re-reads persisted state before every merge

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/logging"
	"github.com/harper/autoseguro/internal/models"
	"go.uber.org/zap"
)

// DatasetKey is the substrate key holding the JSON-encoded dataset.
const DatasetKey = "insuranceData"

// Store is the record store. Every mutation rewrites the whole dataset.
//
// The mutex only orders writers inside this process. Two processes sharing
// the same substrate are last-write-wins: one side's change can be lost.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger
	mu     sync.Mutex
}

var _ Repository = (*Store)(nil)

// NewStore creates a record store on top of a key-value substrate.
func NewStore(kv kvstore.Store, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logging.OrNop(logger).Named("storage")}
}

// KV exposes the underlying substrate for components sharing it.
func (s *Store) KV() kvstore.Store {
	return s.kv
}

// Load returns the persisted dataset, or the seed dataset when nothing has
// been saved yet.
func (s *Store) Load() (*models.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save persists the complete dataset, overwriting any prior state.
func (s *Store) Save(ds *models.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ds)
}

// Replace overwrites the whole dataset. Used by restore.
func (s *Store) Replace(ds *models.Dataset) error {
	return s.Save(ds)
}

// Reset restores the seed dataset.
func (s *Store) Reset() error {
	return s.Save(models.Seed())
}

// Update re-reads the persisted dataset, applies fn and saves the result.
// Nothing is written when fn returns an error.
func (s *Store) Update(fn func(ds *models.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.save(ds)
}

func (s *Store) load() (*models.Dataset, error) {
	raw, err := s.kv.Get(DatasetKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		s.logger.Debug("no persisted dataset, using seed")
		return models.Seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read dataset: %w", ErrStorage, err)
	}

	var ds models.Dataset
	if err := json.Unmarshal([]byte(raw), &ds); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %w", ErrStorage, err)
	}
	ds.Normalize()
	return &ds, nil
}

func (s *Store) save(ds *models.Dataset) error {
	ds.Normalize()
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("%w: encode dataset: %w", ErrStorage, err)
	}
	if err := s.kv.Set(DatasetKey, string(data)); err != nil {
		return fmt.Errorf("%w: write dataset: %w", ErrStorage, err)
	}
	s.logger.Debug("dataset saved",
		zap.Int("clients", len(ds.Clients)),
		zap.Int("vehicles", len(ds.Vehicles)),
		zap.Int("policies", len(ds.Policies)),
		zap.Int("claims", len(ds.Claims)),
	)
	return nil
}
