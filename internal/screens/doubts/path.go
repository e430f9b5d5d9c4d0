package doubts

import (
	"os"
	"path/filepath"
	"strings"
)

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
