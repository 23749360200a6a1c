package context

import (
	"os"
	"path/filepath"
)

// DataDirName is the directory that holds preferences and the optional
// gridlex.yaml config file.
const DataDirName = ".gridlex"

// FindDataDir returns the nearest .gridlex directory at or above the
// working directory, or "" when there is none.
func FindDataDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findDataDirFrom(dir)
}

func findDataDirFrom(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DataDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// HomeDataDir returns ~/.gridlex, or "" when the home directory is unknown.
func HomeDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, DataDirName)
}
