// ABOUTME: Tracks the instant of the last successful backup or restore
// ABOUTME: Computes whole days elapsed for advisory "backup is stale" warnings

package staleness

import (
	"errors"
	"fmt"
	"time"

	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/storage"
)

// Key is the substrate key holding the last backup instant (RFC 3339).
const Key = "lastBackupDate"

// NeverBackedUp is the DaysSince sentinel for "no backup recorded".
const NeverBackedUp = -1

// DefaultThresholdDays is the age at which a backup is considered stale.
const DefaultThresholdDays = 7

// Status describes the last backup.
type Status struct {
	LastBackup *time.Time `json:"last_backup,omitempty"`
	// DaysSince is NeverBackedUp when LastBackup is nil. Callers must branch
	// on that before formatting it as a day count.
	DaysSince int `json:"days_since"`
}

// HasBackup reports whether a backup was ever recorded.
func (s Status) HasBackup() bool {
	return s.LastBackup != nil
}

// IsStale reports whether the last backup is at least threshold days old.
// A missing backup is not reported as stale; check HasBackup for that.
func (s Status) IsStale(threshold int) bool {
	return s.DaysSince != NeverBackedUp && s.DaysSince >= threshold
}

// Tracker reads and writes the last backup instant.
type Tracker struct {
	kv  kvstore.Store
	now func() time.Time
}

// NewTracker creates a tracker using the wall clock.
func NewTracker(kv kvstore.Store) *Tracker {
	return &Tracker{kv: kv, now: time.Now}
}

// WithClock returns a copy of the tracker reading time from now.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	return &Tracker{kv: t.kv, now: now}
}

// RecordBackup stores at as the latest backup instant. Only one instant is
// ever retained.
func (t *Tracker) RecordBackup(at time.Time) error {
	if err := t.kv.Set(Key, at.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("%w: record backup time: %w", storage.ErrStorage, err)
	}
	return nil
}

// Status returns the last backup instant and its age in whole days.
func (t *Tracker) Status() (Status, error) {
	raw, err := t.kv.Get(Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Status{DaysSince: NeverBackedUp}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("%w: read backup time: %w", storage.ErrStorage, err)
	}

	last, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return Status{}, fmt.Errorf("%w: parse backup time %q: %w", storage.ErrStorage, raw, err)
	}

	return Status{
		LastBackup: &last,
		DaysSince:  DaysBetween(last, t.now()),
	}, nil
}

// DaysBetween counts whole 24-hour periods from then to now, truncated.
// Instants in the future count as zero days.
func DaysBetween(then, now time.Time) int {
	d := now.Sub(then)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
