package selection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dropSource treats the newest video file in a drop directory as the
// current selection. Hidden files and non-video extensions are
// ignored.
type dropSource struct {
	dir string
}

func (s *dropSource) SelectedFile(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("scan drop directory: %w", err)
	}

	var newest string
	var newestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := videoExtensions[ext]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(s.dir, entry.Name())
			newestTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", ErrNoSelection
	}
	return newest, nil
}
