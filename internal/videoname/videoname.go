// Package videoname extracts the structured fields capture tools embed
// in recording filenames.
package videoname

import (
	"path/filepath"
	"regexp"
	"strings"
)

// namePattern matches names like "2025-05-07_08-22-55 1132 (ChanX) My Show".
// The parenthesized group is a discard token, usually a channel name.
var namePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2})\s+(\d+)\s*(?:\([^)]*\))?\s*(.*)$`)

// ParsedName holds the fields recovered from a recording filename.
// Timestamp and Code are empty when the name does not follow the
// capture pattern; Title always carries a value and falls back to the
// whole base name.
type ParsedName struct {
	Timestamp string
	Code      string
	Title     string
}

// Parse splits filename into its capture fields. Parsing is total and
// deterministic: any string yields a ParsedName. The extension is
// stripped before matching, whatever its case.
func Parse(filename string) ParsedName {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	m := namePattern.FindStringSubmatch(base)
	if m == nil {
		return ParsedName{Title: base}
	}
	return ParsedName{
		Timestamp: m[1],
		Code:      m[2],
		Title:     strings.TrimSpace(m[3]),
	}
}
