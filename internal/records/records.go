// Package records persists the append-only log of accepted videos.
package records

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrCorruptRecord reports a persisted line that violates the
// "filename|fingerprint" format.
var ErrCorruptRecord = errors.New("corrupt record line")

// Record pairs a recorded filename with its first-frame signature.
type Record struct {
	Filename    string
	Fingerprint string
}

// String renders the persisted line form.
func (r Record) String() string {
	return r.Filename + "|" + r.Fingerprint
}

// Store reads and appends the record log: plain UTF-8 text, one record
// per line, filename and fingerprint joined by a single "|". Records
// are never updated or deleted. An advisory file lock lets concurrent
// writers serialize whole load-then-append sequences.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore binds a store to the log at path. The file need not exist
// yet; the lock file lives next to it.
func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Path returns the backing log file path.
func (s *Store) Path() string {
	return s.path
}

// Lock acquires the cross-process lock guarding load/append sequences.
// The caller must invoke the returned release function.
func (s *Store) Lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("create record directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock record store: %w", err)
	}
	return func() { _ = s.lock.Unlock() }, nil
}

// Load parses every persisted record in order. A missing file is an
// empty store. A line without the field separator aborts the load with
// ErrCorruptRecord; repairing the log is left to the operator.
func (s *Store) Load() ([]Record, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer file.Close()

	var out []Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, key, ok := strings.Cut(line, "|")
		if !ok {
			return nil, fmt.Errorf("%w: %s line %d", ErrCorruptRecord, filepath.Base(s.path), lineNo)
		}
		out = append(out, Record{Filename: name, Fingerprint: key})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read record store: %w", err)
	}
	return out, nil
}

// Count returns the number of persisted records.
func (s *Store) Count() (int, error) {
	recs, err := s.Load()
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// Append writes one record to the end of the log, creating the file
// and its directory on first use.
func (s *Store) Append(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%s|%s\n", rec.Filename, rec.Fingerprint); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return file.Close()
}
