// ABOUTME: Key-value persistence substrate shared by every storage backend
// ABOUTME: Defines the Store interface, backend names, and common errors

package kvstore

import "errors"

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// ErrReadOnly is returned by writes when another process holds the store lock.
var ErrReadOnly = errors.New("store is read-only")

// Backend names accepted by the config file and the migrate command.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Backends lists the persistent backends selectable by users.
var Backends = []string{BackendSQLite, BackendBadger, BackendCharm}

// Store is a string key-value store with no transactions. Every value is
// replaced wholesale by Set.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
