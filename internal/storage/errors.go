// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across record operations

package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrStorage marks failures of the persistence substrate (unavailable,
// quota exceeded, corrupt blob).
var ErrStorage = errors.New("storage unavailable")
