// Package fsutil provides the filesystem primitives used by the type
// generator: path normalization, existence checks, recursive listing and
// content-gated writes.
package fsutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizePath converts a platform path into its forward-slash form.
// Backslashes are always converted, regardless of the host OS, so that
// generated artifacts are identical across platforms.
func NormalizePath(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// RelativePath returns target relative to base in normalized form.
func RelativePath(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", fmt.Errorf("relative path from %s to %s: %w", base, target, err)
	}
	return NormalizePath(rel), nil
}

// Resolve joins p onto root unless p is already absolute.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, filepath.FromSlash(p))
}
