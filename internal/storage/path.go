package storage

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName is the preferences file written under the state directory.
const FileName = "preferences.yaml"

// DefaultPath returns $XDG_STATE_HOME/quill/preferences.yaml, falling back to
// ~/.local/state/quill/preferences.yaml.
func DefaultPath() (string, error) {
	base := strings.TrimSpace(os.Getenv("XDG_STATE_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "quill", FileName), nil
}
