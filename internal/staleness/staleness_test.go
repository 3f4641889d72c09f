// ABOUTME: Tests for the backup staleness tracker
// ABOUTME: Covers the sentinel, day arithmetic, idempotence, and thresholds

package staleness

import (
	"errors"
	"testing"
	"time"

	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStatus_NeverBackedUp(t *testing.T) {
	tr := NewTracker(kvstore.NewMemoryStore())

	st, err := tr.Status()
	require.NoError(t, err)
	assert.Nil(t, st.LastBackup)
	assert.Equal(t, NeverBackedUp, st.DaysSince)
	assert.False(t, st.HasBackup())
	assert.False(t, st.IsStale(DefaultThresholdDays))
}

func TestRecordBackup_StoresRFC3339(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	tr := NewTracker(kv)
	at := time.Date(2026, 10, 12, 9, 30, 0, 123000000, time.FixedZone("BRT", -3*3600))

	require.NoError(t, tr.RecordBackup(at))

	raw, err := kv.Get(Key)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-12T12:30:00.123Z", raw)
}

func TestStatus_DaysSince(t *testing.T) {
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same instant", base, 0},
		{"23 hours later", base.Add(23 * time.Hour), 0},
		{"exactly one day", base.Add(24 * time.Hour), 1},
		{"six days and change", base.Add(6*24*time.Hour + 23*time.Hour), 6},
		{"seven days", base.Add(7 * 24 * time.Hour), 7},
		{"clock behind", base.Add(-time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemoryStore()
			tr := NewTracker(kv).WithClock(fixedClock(tt.now))
			require.NoError(t, tr.RecordBackup(base))

			st, err := tr.Status()
			require.NoError(t, err)
			require.NotNil(t, st.LastBackup)
			assert.True(t, st.LastBackup.Equal(base))
			assert.Equal(t, tt.want, st.DaysSince)
		})
	}
}

func TestStatus_Idempotent(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	tr := NewTracker(kvstore.NewMemoryStore()).WithClock(fixedClock(now))
	require.NoError(t, tr.RecordBackup(now.Add(-50*time.Hour)))

	first, err := tr.Status()
	require.NoError(t, err)
	second, err := tr.Status()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.DaysSince)
}

func TestRecordBackup_Overwrites(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	tr := NewTracker(kvstore.NewMemoryStore()).WithClock(fixedClock(now))

	require.NoError(t, tr.RecordBackup(now.Add(-30*24*time.Hour)))
	require.NoError(t, tr.RecordBackup(now.Add(-time.Hour)))

	st, err := tr.Status()
	require.NoError(t, err)
	assert.Equal(t, 0, st.DaysSince)
}

func TestStatus_AcceptsBrowserISOString(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(Key, "2026-10-10T08:00:00.000Z"))
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	st, err := NewTracker(kv).WithClock(fixedClock(now)).Status()
	require.NoError(t, err)
	assert.Equal(t, 9, st.DaysSince)
	assert.True(t, st.IsStale(DefaultThresholdDays))
}

func TestStatus_CorruptValue(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(Key, "yesterday"))

	_, err := NewTracker(kv).Status()
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrStorage))
}

func TestIsStale(t *testing.T) {
	assert.False(t, Status{DaysSince: 6}.IsStale(7))
	assert.True(t, Status{DaysSince: 7}.IsStale(7))
	assert.False(t, Status{DaysSince: NeverBackedUp}.IsStale(0))
}
