package selection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func TestDropSourceEmptyDirectory(t *testing.T) {
	src := &dropSource{dir: t.TempDir()}
	if _, err := src.SelectedFile(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestDropSourceMissingDirectory(t *testing.T) {
	src := &dropSource{dir: filepath.Join(t.TempDir(), "absent")}
	if _, err := src.SelectedFile(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestDropSourcePicksNewestVideo(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "old.mp4", 2*time.Hour)
	want := writeAged(t, dir, "new.mkv", time.Minute)
	writeAged(t, dir, "older.avi", 3*time.Hour)

	src := &dropSource{dir: dir}
	got, err := src.SelectedFile(context.Background())
	if err != nil {
		t.Fatalf("SelectedFile: %v", err)
	}
	if got != want {
		t.Fatalf("selected %q, want %q", got, want)
	}
}

func TestDropSourceIgnoresNonVideosAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, "notes.txt", time.Minute)
	writeAged(t, dir, ".hidden.mp4", time.Minute)
	if err := os.Mkdir(filepath.Join(dir, "sub.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	src := &dropSource{dir: dir}
	if _, err := src.SelectedFile(context.Background()); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestDropSourceHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &dropSource{dir: t.TempDir()}
	if _, err := src.SelectedFile(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
