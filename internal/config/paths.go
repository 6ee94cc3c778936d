package config

import (
	"os"
	"path/filepath"

	"github.com/extforge/cli/internal/fsutil"
)

// ConfigFilePath returns the settings file for root. An explicit path wins;
// EXTFORGE_CONFIG is consulted next; otherwise <root>/extforge.yaml.
func ConfigFilePath(root, explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path == "" {
		return filepath.Join(root, FileName), nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(root, expanded)
	}
	return expanded, nil
}

// ConfigFileExists checks if the settings file exists.
func ConfigFileExists(path string) (bool, error) {
	return fsutil.Exists(path)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
