// Package store resolves filesystem locations for autodes data.
package store

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the directory holding autodes data.
// AUTODES_HOME overrides the location; otherwise ~/.autodes is used,
// falling back to ./.autodes if the home dir is unavailable.
func DefaultDataDir() string {
	if custom := os.Getenv("AUTODES_HOME"); custom != "" {
		return custom
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		// Fallback to current working directory
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".autodes")
	}
	return filepath.Join(home, ".autodes")
}

// DefaultDBPath returns the full path to the metrics database file.
// Example: ~/.autodes/autodes.db
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "autodes.db")
}
