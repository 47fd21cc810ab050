// Package daemonrun wires the daemon runtime together: logger, record
// store, fingerprint extractor, selection source, processor, and IPC
// server. Both framekeyd and the CLI run command use it.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"framekey/internal/config"
	"framekey/internal/daemon"
	"framekey/internal/engine"
	"framekey/internal/fingerprint"
	"framekey/internal/ipc"
	"framekey/internal/logging"
	"framekey/internal/notify"
	"framekey/internal/records"
	"framekey/internal/selection"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// LogLevel overrides the configured level when non-empty.
	LogLevel string
}

// SocketPath returns the IPC socket location for the given config.
func SocketPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "framekeyd.sock")
}

// Run starts the framekey daemon runtime loop and blocks until the
// process receives SIGINT/SIGTERM or a client requests stop.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := filepath.Join(cfg.Paths.LogDir, "framekeyd.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store := records.NewStore(cfg.Paths.RecordFile)
	extractor := fingerprint.NewExtractor(fingerprint.Options{
		Grid:          cfg.Fingerprint.Grid,
		VideoWidth:    cfg.Fingerprint.VideoWidth,
		VideoHeight:   cfg.Fingerprint.VideoHeight,
		FFmpegBinary:  cfg.FFmpegBinary(),
		DecodeTimeout: time.Duration(cfg.Fingerprint.DecodeTimeout) * time.Second,
	})
	notifier := notify.NewService(cfg)

	eng, err := engine.New(store, extractor, notifier, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	proc, err := engine.NewProcessor(eng, logger)
	if err != nil {
		return fmt.Errorf("create processor: %w", err)
	}

	d, err := daemon.New(cfg, store, proc, selection.New(cfg), notifier, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, SocketPath(cfg), d, cancel, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	logger.Info("framekey daemon ready",
		logging.String("record_file", cfg.Paths.RecordFile),
		logging.String("socket", SocketPath(cfg)),
		logging.Int("grid", cfg.Fingerprint.Grid))

	<-signalCtx.Done()
	logger.Info("framekey daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
