// Package dedupe implements the ordered duplicate checks run against
// the record log.
package dedupe

import (
	"golang.org/x/text/cases"

	"framekey/internal/records"
	"framekey/internal/videoname"
)

// MatchKind identifies which check flagged a candidate.
type MatchKind int

const (
	NoMatch MatchKind = iota
	ExactFilename
	SameTimestamp
	SameCode
	SameTitle
	SameColors
)

// String returns the stable label used in logs, notifications, and IPC.
func (k MatchKind) String() string {
	switch k {
	case NoMatch:
		return "none"
	case ExactFilename:
		return "duplicate filename"
	case SameTimestamp:
		return "duplicate date-time"
	case SameCode:
		return "duplicate code"
	case SameTitle:
		return "duplicate title"
	case SameColors:
		return "duplicate colors"
	default:
		return "unknown"
	}
}

// Match pairs the triggering check with the stored record that hit.
type Match struct {
	Kind   MatchKind
	Record records.Record
}

// CheckDuplicate evaluates the filename-based checks in order and
// returns the first hit. The order is fixed: exact filename, then
// timestamp, code, and title collisions; cheaper and more specific
// checks run first. Stored filenames are re-parsed on every call so
// the comparison always reflects the current parser.
func CheckDuplicate(filename string, parsed videoname.ParsedName, recs []records.Record) Match {
	for _, rec := range recs {
		if rec.Filename == filename {
			return Match{Kind: ExactFilename, Record: rec}
		}
	}

	if parsed.Timestamp != "" {
		for _, rec := range recs {
			if videoname.Parse(rec.Filename).Timestamp == parsed.Timestamp {
				return Match{Kind: SameTimestamp, Record: rec}
			}
		}
	}

	if parsed.Code != "" {
		for _, rec := range recs {
			// Codes compare as strings; "007" and "7" are distinct.
			if videoname.Parse(rec.Filename).Code == parsed.Code {
				return Match{Kind: SameCode, Record: rec}
			}
		}
	}

	if parsed.Title != "" {
		want := foldTitle(parsed.Title)
		for _, rec := range recs {
			title := videoname.Parse(rec.Filename).Title
			if title != "" && foldTitle(title) == want {
				return Match{Kind: SameTitle, Record: rec}
			}
		}
	}

	return Match{Kind: NoMatch}
}

// CheckFingerprint returns the first stored record whose signature
// string is exactly equal. No similarity metric applies: a single
// differing grid cell is a different signature.
func CheckFingerprint(fingerprint string, recs []records.Record) (records.Record, bool) {
	for _, rec := range recs {
		if rec.Fingerprint == fingerprint {
			return rec, true
		}
	}
	return records.Record{}, false
}

// foldTitle case-folds a title for comparison. Casers are stateful, so
// each call gets its own.
func foldTitle(title string) string {
	return cases.Fold().String(title)
}
