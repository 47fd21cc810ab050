package records_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"framekey/internal/records"
)

func newStore(t *testing.T) *records.Store {
	t.Helper()
	return records.NewStore(filepath.Join(t.TempDir(), "processed_videos.txt"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := newStore(t)
	recs, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty store, got %d records", len(recs))
	}
}

func TestAppendThenLoadRoundTrips(t *testing.T) {
	store := newStore(t)

	first := records.Record{Filename: "a.mp4", Fingerprint: "#000000,#FFFFFF"}
	second := records.Record{Filename: "2025-05-07_08-22-55 1132 (ChanX) My Show.mp4", Fingerprint: "#102030"}
	for _, rec := range []records.Record{first, second} {
		if err := store.Append(rec); err != nil {
			t.Fatalf("Append(%v): %v", rec, err)
		}
	}

	recs, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0] != first {
		t.Fatalf("first record = %+v, want %+v", recs[0], first)
	}
	if recs[len(recs)-1] != second {
		t.Fatalf("last record = %+v, want %+v", recs[1], second)
	}
}

func TestLoadPreservesOrderAndDuplicates(t *testing.T) {
	// Storage does not enforce uniqueness; that is the matcher's job.
	store := newStore(t)
	rec := records.Record{Filename: "a.mp4", Fingerprint: "#111111"}
	for i := 0; i < 3; i++ {
		if err := store.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	recs, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
}

func TestLoadSplitsOnFirstSeparatorOnly(t *testing.T) {
	store := newStore(t)
	if err := store.Append(records.Record{Filename: "a.mp4", Fingerprint: "#AA|#BB"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	recs, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if recs[0].Fingerprint != "#AA|#BB" {
		t.Fatalf("fingerprint = %q, want %q", recs[0].Fingerprint, "#AA|#BB")
	}
}

func TestLoadRejectsCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.txt")
	content := "good.mp4|#000000\nno separator here\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}

	_, err := records.NewStore(path).Load()
	if !errors.Is(err, records.ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.txt")
	content := "a.mp4|#000000\n\n\nb.mp4|#FFFFFF\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}

	recs, err := records.NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
}

func TestLockReleases(t *testing.T) {
	store := newStore(t)
	release, err := store.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	release()

	// A second acquisition must succeed after release.
	release, err = store.Lock()
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	release()
}

func TestRecordString(t *testing.T) {
	rec := records.Record{Filename: "a.mp4", Fingerprint: "#000000"}
	if got := rec.String(); got != "a.mp4|#000000" {
		t.Fatalf("String() = %q", got)
	}
}
