package engine

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"framekey/internal/dedupe"
	"framekey/internal/fingerprint"
	"framekey/internal/logging"
	"framekey/internal/notify"
	"framekey/internal/records"
	"framekey/internal/videoname"
)

// Status classifies how a submission was resolved.
type Status int

const (
	// Accepted means the video passed every gate and was recorded.
	Accepted Status = iota
	// Rejected means one of the duplicate checks hit; Outcome.Reason
	// names which.
	Rejected
	// FingerprintFailed means the first frame could not be decoded.
	// Nothing was recorded.
	FingerprintFailed
)

// String returns the label surfaced over IPC and in the CLI.
func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case FingerprintFailed:
		return "fingerprint failed"
	default:
		return "unknown"
	}
}

// Outcome reports how a submission was resolved.
type Outcome struct {
	Status Status
	// Reason is set when Status is Rejected.
	Reason dedupe.MatchKind
	// Match is the stored record that triggered a rejection.
	Match records.Record
}

// Fingerprinter abstracts first-frame signature extraction so tests
// can exercise the pipeline without video files.
type Fingerprinter interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Engine ties the parser, matcher, fingerprinter, and record store
// together. It is the only component that performs I/O.
type Engine struct {
	store    *records.Store
	printer  Fingerprinter
	notifier notify.Service
	logger   *slog.Logger
}

// New constructs an engine with initialized dependencies.
func New(store *records.Store, printer Fingerprinter, notifier notify.Service, logger *slog.Logger) (*Engine, error) {
	if store == nil || printer == nil || notifier == nil {
		return nil, errors.New("engine requires store, fingerprinter, and notifier")
	}
	return &Engine{
		store:    store,
		printer:  printer,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "engine"),
	}, nil
}

// Submit gates the video at path through the duplicate checks and
// appends it on success. The store lock is held across the whole
// load-then-append sequence so two writers cannot both pass the checks
// against a stale snapshot. Store failures abort this submission only.
func (e *Engine) Submit(ctx context.Context, path string) (Outcome, error) {
	filename := filepath.Base(path)
	log := e.logger.With(
		logging.String("submission", uuid.NewString()),
		logging.String("file", filename),
	)

	release, err := e.store.Lock()
	if err != nil {
		e.notifyError(ctx, err, filename)
		return Outcome{}, err
	}
	defer release()

	recs, err := e.store.Load()
	if err != nil {
		log.Error("load record store", logging.Error(err))
		e.notifyError(ctx, err, filename)
		return Outcome{}, err
	}
	log.Debug("records loaded", logging.Int("count", len(recs)))

	parsed := videoname.Parse(filename)
	if m := dedupe.CheckDuplicate(filename, parsed, recs); m.Kind != dedupe.NoMatch {
		return e.reject(ctx, log, filename, m), nil
	}

	key, err := e.printer.Extract(ctx, path)
	if err != nil {
		if errors.Is(err, fingerprint.ErrFrameRead) {
			log.Warn("first frame unreadable", logging.Error(err))
			e.notify(ctx, log, e.notifier.NotifyFingerprintFailed(ctx, filename))
			return Outcome{Status: FingerprintFailed}, nil
		}
		e.notifyError(ctx, err, filename)
		return Outcome{}, err
	}

	if rec, ok := dedupe.CheckFingerprint(key, recs); ok {
		return e.reject(ctx, log, filename, dedupe.Match{Kind: dedupe.SameColors, Record: rec}), nil
	}

	if err := e.store.Append(records.Record{Filename: filename, Fingerprint: key}); err != nil {
		log.Error("append record", logging.Error(err))
		e.notifyError(ctx, err, filename)
		return Outcome{}, err
	}

	log.Info("video recorded", logging.Int("records", len(recs)+1))
	e.notify(ctx, log, e.notifier.NotifyAccepted(ctx, filename))
	return Outcome{Status: Accepted}, nil
}

func (e *Engine) reject(ctx context.Context, log *slog.Logger, filename string, m dedupe.Match) Outcome {
	log.Info("duplicate rejected",
		logging.String("reason", m.Kind.String()),
		logging.String("matched", m.Record.Filename),
	)
	e.notify(ctx, log, e.notifier.NotifyDuplicate(ctx, filename, m.Kind.String(), m.Record.Filename))
	return Outcome{Status: Rejected, Reason: m.Kind, Match: m.Record}
}

// notify logs and drops notifier failures; outcomes never depend on
// the notification transport.
func (e *Engine) notify(_ context.Context, log *slog.Logger, err error) {
	if err != nil {
		log.Warn("send notification", logging.Error(err))
	}
}

func (e *Engine) notifyError(ctx context.Context, cause error, filename string) {
	if err := e.notifier.NotifyError(ctx, cause, filename); err != nil {
		e.logger.Warn("send notification", logging.Error(err))
	}
}
