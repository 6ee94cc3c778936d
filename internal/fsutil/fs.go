package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// WriteStatus reports what WriteFileIfDifferent did.
type WriteStatus string

const (
	// StatusCreated means the file did not exist and was written.
	StatusCreated WriteStatus = "created"

	// StatusUpdated means the file existed with different content and was overwritten.
	StatusUpdated WriteStatus = "updated"

	// StatusUnchanged means the file already held identical content; nothing was written.
	StatusUnchanged WriteStatus = "unchanged"
)

// Exists reports whether path exists. Errors other than "not exist" are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureDir creates dir and any missing parents. It is a no-op when dir exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// WriteFileIfDifferent writes data to path only when the current content differs.
// Skipping identical writes keeps modification times stable for downstream
// incremental builds.
func WriteFileIfDifferent(path string, data []byte) (WriteStatus, error) {
	existing, err := os.ReadFile(path)
	existed := err == nil
	switch {
	case existed:
		if bytes.Equal(existing, data) {
			return StatusUnchanged, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	if existed {
		return StatusUpdated, nil
	}
	return StatusCreated, nil
}

// ListFiles returns every regular file below root as normalized paths relative
// to root, sorted. A missing root yields an empty list.
func ListFiles(ctx context.Context, root string) ([]string, error) {
	ok, err := Exists(root)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}
	if !ok {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := RelativePath(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
