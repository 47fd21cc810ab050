package selection

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// finderScript asks Finder for its selection and emits a POSIX path
// only when exactly one item is selected.
const finderScript = `tell application "Finder"
  set sel to selection as alias list
  if (count sel) is 1 then
    POSIX path of (item 1 of sel)
  end if
end tell`

// finderSource queries the Finder selection via osascript.
type finderSource struct{}

func (finderSource) SelectedFile(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", finderScript)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("query finder selection: %w", err)
	}
	path := strings.TrimSpace(string(output))
	if path == "" {
		return "", ErrNoSelection
	}
	return path, nil
}
