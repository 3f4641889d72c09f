// ABOUTME: Tests for the backup engine against an in-memory substrate
// ABOUTME: Verifies atomic replace, backup timestamps, and failure isolation

package backup

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/autoseguro/internal/kvstore"
	"github.com/harper/autoseguro/internal/models"
	"github.com/harper/autoseguro/internal/staleness"
	"github.com/harper/autoseguro/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	kv     *kvstore.MemoryStore
	store  *storage.Store
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := kvstore.NewMemoryStore()
	store := storage.NewStore(kv, zaptest.NewLogger(t))
	engine := NewEngine(store, staleness.NewTracker(kv),
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(zaptest.NewLogger(t)),
	)
	return &fixture{kv: kv, store: store, engine: engine}
}

func (f *fixture) storedBlob(t *testing.T) string {
	t.Helper()
	raw, err := f.kv.Get(storage.DatasetKey)
	require.NoError(t, err)
	return raw
}

func TestEngine_ExportThenImportRestoresDataset(t *testing.T) {
	f := newFixture(t)
	want := datasetOfSize(4)
	require.NoError(t, f.store.Save(want))

	art, err := f.engine.Export()
	require.NoError(t, err)
	assert.Equal(t, 4, art.Clients)
	assert.Equal(t, 4, art.Vehicles)
	assert.Equal(t, 4, art.Policies)
	assert.Equal(t, 4, art.Claims)

	require.NoError(t, f.store.Save(datasetOfSize(1)))
	require.NoError(t, f.engine.Import(context.Background(), bytes.NewReader(art.Data)))

	got, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEngine_ExportRecordsTimestamp(t *testing.T) {
	f := newFixture(t)

	st, err := f.engine.Status()
	require.NoError(t, err)
	assert.False(t, st.HasBackup())
	assert.Equal(t, staleness.NeverBackedUp, st.DaysSince)

	art, err := f.engine.Export()
	require.NoError(t, err)
	assert.Equal(t, "autoseguro_backup_2024-06-10.xlsx", art.Name)
	assert.Equal(t, fixedNow, art.CreatedAt)

	st, err = f.engine.Status()
	require.NoError(t, err)
	require.True(t, st.HasBackup())
	assert.True(t, st.LastBackup.Equal(fixedNow))
	assert.Equal(t, 0, st.DaysSince)
}

func TestEngine_ExportSeedWhenNothingStored(t *testing.T) {
	f := newFixture(t)

	art, err := f.engine.Export()
	require.NoError(t, err)

	ds, err := Decode(art.Data)
	require.NoError(t, err)
	assert.Equal(t, models.Seed(), ds)
}

func TestEngine_ExportFailureLeavesNoTimestamp(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.kv.Set(storage.DatasetKey, "{not json"))

	_, err := f.engine.Export()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExportFailed))

	_, err = f.kv.Get(staleness.Key)
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

func TestEngine_ExportUnencodableValueLeavesNoTimestamp(t *testing.T) {
	f := newFixture(t)
	ds := models.Seed()
	ds.Claims[0].Description = strings.Repeat("a", 40000)
	require.NoError(t, f.store.Save(ds))

	art, err := f.engine.Export()
	require.Error(t, err)
	assert.Nil(t, art)
	assert.True(t, errors.Is(err, ErrExportFailed))

	_, err = f.kv.Get(staleness.Key)
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

func TestEngine_ImportReplacesWithSmallerDataset(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(datasetOfSize(10)))

	data, err := Encode(datasetOfSize(2))
	require.NoError(t, err)
	require.NoError(t, f.engine.Import(context.Background(), bytes.NewReader(data)))

	got, err := f.store.Load()
	require.NoError(t, err)
	assert.Len(t, got.Clients, 2)
	assert.Len(t, got.Vehicles, 2)
	assert.Len(t, got.Policies, 2)
	assert.Len(t, got.Claims, 2)
}

func TestEngine_ImportRecordsTimestamp(t *testing.T) {
	f := newFixture(t)
	data, err := Encode(models.Seed())
	require.NoError(t, err)

	require.NoError(t, f.engine.Import(context.Background(), bytes.NewReader(data)))

	raw, err := f.kv.Get(staleness.Key)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Format(time.RFC3339Nano), raw)
}

func TestEngine_ImportMissingSheetLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(datasetOfSize(3)))
	before := f.storedBlob(t)

	data := buildWorkbook(t, []string{SheetClients, SheetVehicles, SheetPolicies}, validContent())
	err := f.engine.Import(context.Background(), bytes.NewReader(data))

	var missing *MissingSheetError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, SheetClaims, missing.Sheet)
	assert.Equal(t, before, f.storedBlob(t))

	_, err = f.kv.Get(staleness.Key)
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

func TestEngine_ImportMalformedLeavesStoreUntouched(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Save(datasetOfSize(3)))
	before := f.storedBlob(t)

	err := f.engine.Import(context.Background(), strings.NewReader("id,name\n1,Ana\n"))
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.True(t, IsDecodeError(err))
	assert.Equal(t, before, f.storedBlob(t))
}

func TestEngine_ImportRejectionLoggedBelowWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	kv := kvstore.NewMemoryStore()
	engine := NewEngine(storage.NewStore(kv, nil), staleness.NewTracker(kv), WithLogger(zap.New(core)))

	err := engine.Import(context.Background(), strings.NewReader("garbage"))
	require.Error(t, err)

	rejected := logs.FilterMessage("import rejected").All()
	require.Len(t, rejected, 1)
	assert.Less(t, rejected[0].Level, zapcore.WarnLevel)
}

func TestEngine_ImportStorageFailure(t *testing.T) {
	f := newFixture(t)
	data, err := Encode(models.Seed())
	require.NoError(t, err)

	f.kv.FailSet = errors.New("disk full")
	err = f.engine.Import(context.Background(), bytes.NewReader(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImportFailed))
	assert.True(t, errors.Is(err, storage.ErrStorage))
	assert.False(t, IsDecodeError(err))
}

func TestEngine_ImportCancelledContext(t *testing.T) {
	f := newFixture(t)
	data, err := Encode(models.Seed())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = f.engine.Import(ctx, bytes.NewReader(data))
	assert.True(t, errors.Is(err, context.Canceled))
	_, err = f.kv.Get(storage.DatasetKey)
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

func TestEngine_ImportStrict(t *testing.T) {
	f := newFixture(t)
	ds := models.Seed()
	ds.Claims[0].Status = "Aberto"
	data, err := Encode(ds)
	require.NoError(t, err)

	err = f.engine.Import(context.Background(), bytes.NewReader(data), WithStrictValidation())
	assert.True(t, errors.Is(err, ErrInvalidStructure))

	require.NoError(t, f.engine.Import(context.Background(), bytes.NewReader(data)))
	got, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.ClaimStatus("Aberto"), got.Claims[0].Status)
}

func TestEngine_ImportFile(t *testing.T) {
	f := newFixture(t)
	art, err := f.engine.Export()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), art.Name)
	require.NoError(t, os.WriteFile(path, art.Data, 0600))
	require.NoError(t, f.engine.ImportFile(context.Background(), path))

	err = f.engine.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.True(t, errors.Is(err, ErrImportFailed))
}

func TestEngine_StatusUsesEngineClock(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, staleness.NewTracker(f.kv).RecordBackup(fixedNow.Add(-8*24*time.Hour-time.Hour)))

	st, err := f.engine.Status()
	require.NoError(t, err)
	assert.Equal(t, 8, st.DaysSince)
	assert.True(t, st.IsStale(staleness.DefaultThresholdDays))
}
