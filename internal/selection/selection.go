// Package selection resolves the video file the user currently has
// selected in the host file browser.
//
// On darwin the Finder selection is queried through osascript. On
// every other platform a drop-directory scan substitutes: the newest
// video file placed in the configured directory counts as the current
// selection. Both yield ErrNoSelection when nothing usable is
// selected, which callers surface as a notification rather than a
// failure.
package selection

import (
	"context"
	"errors"
	"runtime"

	"framekey/internal/config"
)

// ErrNoSelection reports that zero files, multiple files, or something
// other than a regular video file is selected.
var ErrNoSelection = errors.New("no single video file selected")

// videoExtensions lists the file types a selection may resolve to.
var videoExtensions = map[string]struct{}{
	".mkv": {},
	".mp4": {},
	".avi": {},
	".mov": {},
}

// Source yields the host's current single-file selection.
type Source interface {
	SelectedFile(ctx context.Context) (string, error)
}

// New picks the platform implementation.
func New(cfg *config.Config) Source {
	if runtime.GOOS == "darwin" {
		return &finderSource{}
	}
	return &dropSource{dir: cfg.Paths.DropDir}
}
