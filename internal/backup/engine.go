// ABOUTME: Backup engine tying the workbook codec to the record store and staleness tracker
// ABOUTME: Export records the backup instant; import replaces the dataset atomically

package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harper/autoseguro/internal/logging"
	"github.com/harper/autoseguro/internal/staleness"
	"github.com/harper/autoseguro/internal/storage"
	"go.uber.org/zap"
)

// Artifact is a produced backup file.
type Artifact struct {
	Name      string
	Data      []byte
	CreatedAt time.Time

	// Record counts of the encoded dataset.
	Clients  int
	Vehicles int
	Policies int
	Claims   int
}

// Engine runs backup and restore against a record store.
type Engine struct {
	store   storage.DatasetRepository
	tracker *staleness.Tracker
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNop(l).Named("backup") }
}

// NewEngine creates an engine.
func NewEngine(store storage.DatasetRepository, tracker *staleness.Tracker, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		tracker: tracker,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Status returns the staleness of the last backup.
func (e *Engine) Status() (staleness.Status, error) {
	return e.tracker.WithClock(e.now).Status()
}

// Export encodes the current dataset and records the export instant as the
// last backup time. The instant is recorded before the caller saves the
// file, so a failed save still counts as a backup.
func (e *Engine) Export() (*Artifact, error) {
	ds, err := e.store.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	data, err := Encode(ds)
	if err != nil {
		e.logger.Warn("encode failed", zap.Error(err))
		return nil, err
	}

	now := e.now()
	if err := e.tracker.RecordBackup(now); err != nil {
		return nil, err
	}

	e.logger.Info("backup exported",
		zap.Int("bytes", len(data)),
		zap.Int("clients", len(ds.Clients)),
		zap.Int("vehicles", len(ds.Vehicles)),
		zap.Int("policies", len(ds.Policies)),
		zap.Int("claims", len(ds.Claims)),
	)

	return &Artifact{
		Name:      FileName(now),
		Data:      data,
		CreatedAt: now,
		Clients:   len(ds.Clients),
		Vehicles:  len(ds.Vehicles),
		Policies:  len(ds.Policies),
		Claims:    len(ds.Claims),
	}, nil
}

// Import reads a workbook from r, validates it and replaces the whole
// dataset. The stored dataset is untouched unless validation succeeds.
// On success the import instant becomes the last backup time.
func (e *Engine) Import(ctx context.Context, r io.Reader, opts ...DecodeOption) error {
	data, err := io.ReadAll(&ctxReader{ctx: ctx, r: r})
	if err != nil {
		return fmt.Errorf("%w: read file: %w", ErrImportFailed, err)
	}

	ds, err := Decode(data, opts...)
	if err != nil {
		e.logger.Info("import rejected", zap.Error(err))
		return err
	}

	if err := e.store.Replace(ds); err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	if err := e.tracker.RecordBackup(e.now()); err != nil {
		return fmt.Errorf("%w: dataset replaced but %w", ErrImportFailed, err)
	}

	e.logger.Info("backup imported",
		zap.Int("clients", len(ds.Clients)),
		zap.Int("vehicles", len(ds.Vehicles)),
		zap.Int("policies", len(ds.Policies)),
		zap.Int("claims", len(ds.Claims)),
	)
	return nil
}

// ImportFile imports the workbook at path.
func (e *Engine) ImportFile(ctx context.Context, path string, opts ...DecodeOption) error {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the operator
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}
	defer func() { _ = f.Close() }()
	return e.Import(ctx, f, opts...)
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
