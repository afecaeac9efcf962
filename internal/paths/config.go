// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

// ProjectConfigFile is the per-project config location, relative to the
// working directory.
const ProjectConfigFile = ".overtype/config.yaml"

// UserConfigDir returns the user-level config directory
// (~/.config/overtype). The empty string means no home directory could be
// resolved.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "overtype")
}

// FindConfigFile resolves the config file to load.
//
// Resolution order:
//   - explicit, when non-empty (a --config flag)
//   - .overtype/config.yaml in the current directory
//   - ~/.config/overtype/config.yaml
//
// The returned path may not exist when nothing was found; ok reports whether
// an existing file was located.
func FindConfigFile(explicit string) (path string, ok bool) {
	if explicit != "" {
		return explicit, fileExists(explicit)
	}
	if fileExists(ProjectConfigFile) {
		return ProjectConfigFile, true
	}
	if dir := UserConfigDir(); dir != "" {
		candidate := filepath.Join(dir, "config.yaml")
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return ProjectConfigFile, false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
