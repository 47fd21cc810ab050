package engine_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"framekey/internal/dedupe"
	"framekey/internal/engine"
	"framekey/internal/fingerprint"
	"framekey/internal/logging"
	"framekey/internal/records"
)

// stubFingerprinter maps paths (by base name) to canned signatures or
// errors.
type stubFingerprinter struct {
	keys map[string]string
	errs map[string]error
}

func (s *stubFingerprinter) Extract(_ context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	if key, ok := s.keys[name]; ok {
		return key, nil
	}
	return "", fmt.Errorf("%w: no stub for %s", fingerprint.ErrFrameRead, name)
}

// recordingNotifier captures the notification calls the engine makes.
type recordingNotifier struct {
	mu       sync.Mutex
	accepted []string
	dupes    []string
	failed   []string
	errors   []string
}

func (n *recordingNotifier) NotifyAccepted(_ context.Context, filename string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accepted = append(n.accepted, filename)
	return nil
}

func (n *recordingNotifier) NotifyDuplicate(_ context.Context, filename, reason, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dupes = append(n.dupes, filename+": "+reason)
	return nil
}

func (n *recordingNotifier) NotifyFingerprintFailed(_ context.Context, filename string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, filename)
	return nil
}

func (n *recordingNotifier) NotifyNoSelection(context.Context) error { return nil }

func (n *recordingNotifier) NotifyError(_ context.Context, err error, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, err.Error())
	return nil
}

func (n *recordingNotifier) TestNotification(context.Context) error { return nil }

type harness struct {
	engine   *engine.Engine
	store    *records.Store
	notifier *recordingNotifier
	printer  *stubFingerprinter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := records.NewStore(filepath.Join(t.TempDir(), "processed_videos.txt"))
	notifier := &recordingNotifier{}
	printer := &stubFingerprinter{keys: map[string]string{}, errs: map[string]error{}}
	eng, err := engine.New(store, printer, notifier, logging.NewNop())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return &harness{engine: eng, store: store, notifier: notifier, printer: printer}
}

func (h *harness) mustLoad(t *testing.T) []records.Record {
	t.Helper()
	recs, err := h.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return recs
}

func TestSubmitAcceptsNewVideoIntoEmptyStore(t *testing.T) {
	h := newHarness(t)
	const name = "2025-05-07_08-22-55 1132 (ChanX) My Show.mp4"
	h.printer.keys[name] = "#102030,#405060"

	out, err := h.engine.Submit(context.Background(), "/videos/"+name)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != engine.Accepted {
		t.Fatalf("status = %v, want Accepted", out.Status)
	}

	recs := h.mustLoad(t)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	want := records.Record{Filename: name, Fingerprint: "#102030,#405060"}
	if recs[0] != want {
		t.Fatalf("stored record = %+v, want %+v", recs[0], want)
	}
	if len(h.notifier.accepted) != 1 {
		t.Fatalf("expected one accepted notification, got %v", h.notifier.accepted)
	}
}

func TestSubmitRejectsSameTitleFromUnparsedCandidate(t *testing.T) {
	h := newHarness(t)
	stored := records.Record{
		Filename:    "2025-05-07_08-22-55 1132 (ChanX) My Show.mp4",
		Fingerprint: "#000000",
	}
	if err := h.store.Append(stored); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	out, err := h.engine.Submit(context.Background(), "/videos/my show.mp4")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != engine.Rejected {
		t.Fatalf("status = %v, want Rejected", out.Status)
	}
	if out.Reason != dedupe.SameTitle {
		t.Fatalf("reason = %v, want SameTitle", out.Reason)
	}
	if out.Match != stored {
		t.Fatalf("matched record = %+v", out.Match)
	}
	if len(h.mustLoad(t)) != 1 {
		t.Fatal("store must be unchanged after rejection")
	}
}

func TestSubmitFingerprintFailureLeavesStoreUntouched(t *testing.T) {
	h := newHarness(t)
	h.printer.errs["broken.mp4"] = fmt.Errorf("%w: decoder produced no frame", fingerprint.ErrFrameRead)

	out, err := h.engine.Submit(context.Background(), "/videos/broken.mp4")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != engine.FingerprintFailed {
		t.Fatalf("status = %v, want FingerprintFailed", out.Status)
	}
	if len(h.mustLoad(t)) != 0 {
		t.Fatal("store must stay empty after a failed fingerprint")
	}
	if len(h.notifier.failed) != 1 {
		t.Fatalf("expected fingerprint-failed notification, got %v", h.notifier.failed)
	}
}

func TestSubmitRejectsDuplicateColorsAfterFilenameChecksPass(t *testing.T) {
	h := newHarness(t)
	// Two stored records share a signature; the check on the candidate
	// must still hit even though every filename check passes.
	shared := "#AAAAAA,#BBBBBB"
	for _, rec := range []records.Record{
		{Filename: "2025-01-01_00-00-00 1 First.mp4", Fingerprint: shared},
		{Filename: "2025-02-02_00-00-00 2 Second.mp4", Fingerprint: shared},
	} {
		if err := h.store.Append(rec); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	const name = "2025-03-03_00-00-00 3 Third.mp4"
	h.printer.keys[name] = shared

	out, err := h.engine.Submit(context.Background(), "/videos/"+name)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != engine.Rejected {
		t.Fatalf("status = %v, want Rejected", out.Status)
	}
	if out.Reason != dedupe.SameColors {
		t.Fatalf("reason = %v, want SameColors", out.Reason)
	}
	if out.Match.Filename != "2025-01-01_00-00-00 1 First.mp4" {
		t.Fatalf("expected first stored record to match, got %q", out.Match.Filename)
	}
	if len(h.mustLoad(t)) != 2 {
		t.Fatal("store must be unchanged after fingerprint rejection")
	}
}

func TestSubmitRejectsExactFilenameBeforeFingerprinting(t *testing.T) {
	h := newHarness(t)
	const name = "2025-05-07_08-22-55 1132 My Show.mp4"
	if err := h.store.Append(records.Record{Filename: name, Fingerprint: "#000000"}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	// No stub signature registered: reaching the fingerprinter would
	// error, proving the filename gate short-circuits first.
	out, err := h.engine.Submit(context.Background(), "/videos/"+name)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Status != engine.Rejected || out.Reason != dedupe.ExactFilename {
		t.Fatalf("outcome = %+v, want ExactFilename rejection", out)
	}
}

func TestSubmitSecondIdenticalSubmissionRejected(t *testing.T) {
	h := newHarness(t)
	const name = "2025-05-07_08-22-55 1132 (ChanX) My Show.mp4"
	h.printer.keys[name] = "#123456"

	if out, err := h.engine.Submit(context.Background(), "/videos/"+name); err != nil || out.Status != engine.Accepted {
		t.Fatalf("first submission: %+v, %v", out, err)
	}
	out, err := h.engine.Submit(context.Background(), "/videos/"+name)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if out.Status != engine.Rejected || out.Reason != dedupe.ExactFilename {
		t.Fatalf("second submission outcome = %+v", out)
	}
	if len(h.mustLoad(t)) != 1 {
		t.Fatal("duplicate submission must not append")
	}
}
