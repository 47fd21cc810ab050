// Package daemon coordinates the background services and enforces
// single-instance execution.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"framekey/internal/config"
	"framekey/internal/deps"
	"framekey/internal/engine"
	"framekey/internal/logging"
	"framekey/internal/notify"
	"framekey/internal/records"
	"framekey/internal/selection"
)

// Daemon owns the submission processor and the selection trigger, and
// holds the instance lock while running.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *records.Store
	proc     *engine.Processor
	sel      selection.Source
	notifier notify.Service

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	RecordCount  int
	RecordFile   string
	LockFilePath string
	Dependencies []deps.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *records.Store, proc *engine.Processor, sel selection.Source, notifier notify.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || proc == nil || sel == nil || notifier == nil {
		return nil, errors.New("daemon requires config, store, processor, selection source, and notifier")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "framekeyd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		proc:     proc,
		sel:      sel,
		notifier: notifier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and launches the processor.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another framekey daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.proc.Start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("start processor: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("framekey daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.proc.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("framekey daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Trigger resolves the host selection and enqueues it. A missing or
// ambiguous selection notifies the user and reports
// selection.ErrNoSelection.
func (d *Daemon) Trigger(ctx context.Context) (string, error) {
	path, err := d.sel.SelectedFile(ctx)
	if err == nil {
		var info os.FileInfo
		if info, err = os.Stat(path); err != nil || !info.Mode().IsRegular() {
			err = selection.ErrNoSelection
		}
	}
	if err != nil {
		if errors.Is(err, selection.ErrNoSelection) {
			if nerr := d.notifier.NotifyNoSelection(ctx); nerr != nil {
				d.logger.Warn("send notification", logging.Error(nerr))
			}
		}
		return "", err
	}

	if err := d.proc.Enqueue(path); err != nil {
		return "", fmt.Errorf("enqueue submission: %w", err)
	}
	d.logger.Info("submission queued", logging.String("path", path))
	return path, nil
}

// Submit runs one submission synchronously through the serialized
// processor.
func (d *Daemon) Submit(ctx context.Context, path string) (engine.Outcome, error) {
	return d.proc.Do(ctx, path)
}

// Records returns the persisted records in stored order.
func (d *Daemon) Records() ([]records.Record, error) {
	return d.store.Load()
}

// LogPath returns the daemon log file location.
func (d *Daemon) LogPath() string {
	if d.cfg.Paths.LogDir == "" {
		return ""
	}
	return filepath.Join(d.cfg.Paths.LogDir, "framekey.log")
}

// TestNotification pushes a test message through the notifier.
func (d *Daemon) TestNotification(ctx context.Context) error {
	return d.notifier.TestNotification(ctx)
}

// Status reports runtime information for the status surfaces.
func (d *Daemon) Status(ctx context.Context) Status {
	status := Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		RecordFile:   d.store.Path(),
		LockFilePath: d.lockPath,
		Dependencies: deps.CheckBinaries(deps.Default(d.cfg.FFmpegBinary())),
	}
	if count, err := d.store.Count(); err == nil {
		status.RecordCount = count
	} else {
		d.logger.Warn("count records", logging.Error(err))
	}
	return status
}
