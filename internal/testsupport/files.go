package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteVideoStub creates a small regular file with the given name in a
// fresh temp directory and returns its full path. The content is not a
// real video; tests that need decoding stub the fingerprinter instead.
func WriteVideoStub(t testing.TB, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("stub video"), 0o644); err != nil {
		t.Fatalf("write video stub: %v", err)
	}
	return path
}

// WriteRecordLine appends one raw line to the record file at path,
// creating it if needed.
func WriteRecordLine(t testing.TB, path, line string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir record dir: %v", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open record file: %v", err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		t.Fatalf("write record line: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close record file: %v", err)
	}
}
