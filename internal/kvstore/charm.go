// ABOUTME: Charm KV Store implementation opening the local database per operation
// ABOUTME: Short-lived connections per operation; syncs to a Charm server after writes

package kvstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// CharmDBName is the name of the Charm KV database for autoseguro data.
	CharmDBName = "autoseguro"

	// DefaultCharmHost is the default Charm server to use.
	DefaultCharmHost = "charm.2389.dev"
)

// CharmStore implements Store on top of Charm KV.
// It does NOT hold a persistent connection: each operation opens the
// database, performs the operation, and closes it.
type CharmStore struct {
	dbName   string
	autoSync bool
}

var _ Store = (*CharmStore)(nil)

// CharmConfig holds client configuration options.
type CharmConfig struct {
	// Host is the Charm server to use (default: charm.2389.dev).
	Host string
	// AutoSync enables automatic sync after writes.
	AutoSync bool
	// DBName overrides the KV database name (tests).
	DBName string
}

// DefaultCharmConfig returns the default configuration, honouring CHARM_HOST.
func DefaultCharmConfig() *CharmConfig {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = DefaultCharmHost
	}
	return &CharmConfig{
		Host:     host,
		AutoSync: true,
		DBName:   CharmDBName,
	}
}

// NewCharmStore creates a Charm-backed store.
func NewCharmStore(cfg *CharmConfig) (*CharmStore, error) {
	if cfg == nil {
		cfg = DefaultCharmConfig()
	}
	if cfg.Host != "" {
		// Set CHARM_HOST before any KV operations
		if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
			return nil, err
		}
	}
	name := cfg.DBName
	if name == "" {
		name = CharmDBName
	}
	return &CharmStore{dbName: name, autoSync: cfg.AutoSync}, nil
}

// open connects to the local charm database, falling back to read-only
// access when another process holds the lock.
func (c *CharmStore) open() (*kv.KV, error) {
	db, err := kv.OpenWithDefaultsFallback(c.dbName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv %s: %w", c.dbName, err)
	}
	return db, nil
}

// Get retrieves a value by key.
func (c *CharmStore) Get(key string) (string, error) {
	db, err := c.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	val, err := db.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return string(val), nil
}

// Set stores a value with the given key.
func (c *CharmStore) Set(key, value string) error {
	return c.do(func(k *kv.KV) error {
		return k.Set([]byte(key), []byte(value))
	})
}

// Delete removes a key.
func (c *CharmStore) Delete(key string) error {
	return c.do(func(k *kv.KV) error {
		return k.Delete([]byte(key))
	})
}

// Sync triggers a manual sync with the charm server.
func (c *CharmStore) Sync() error {
	db, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.Sync()
}

// Close is a no-op: connections are closed after each operation.
func (c *CharmStore) Close() error {
	return nil
}

func (c *CharmStore) do(fn func(k *kv.KV) error) error {
	db, err := c.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if db.IsReadOnly() {
		return ErrReadOnly
	}
	if err := fn(db); err != nil {
		return err
	}
	if c.autoSync {
		return db.Sync()
	}
	return nil
}
