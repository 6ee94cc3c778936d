package typegen

import (
	"context"
	"fmt"
	"sort"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/entrypoint"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/templates"
)

// PathsEntry declares every bundled entrypoint and public asset as a valid
// runtime path.
func PathsEntry(ctx context.Context, s *config.Settings, entrypoints []entrypoint.Entrypoint) (File, error) {
	paths := make([]string, 0, len(entrypoints))
	for _, ep := range entrypoints {
		p, err := entrypoint.BundlePath(ep, s.OutDir, ep.BundleExt())
		if err != nil {
			return File{}, fmt.Errorf("bundle path for %s: %w", ep.Name, err)
		}
		paths = append(paths, p)
	}

	public, err := fsutil.ListFiles(ctx, s.PublicDir)
	if err != nil {
		return File{}, fmt.Errorf("listing public files: %w", err)
	}
	paths = append(paths, public...)

	text, err := RenderPaths(paths)
	if err != nil {
		return File{}, err
	}
	return File{Path: PathsPath, Text: text, TSReference: true}, nil
}

// RenderPaths renders the path union for paths. Paths are normalized,
// deduplicated, and sorted; an empty set renders as never.
func RenderPaths(paths []string) (string, error) {
	seen := make(map[string]bool, len(paths))
	union := make([]string, 0, len(paths))
	for _, p := range paths {
		p = fsutil.NormalizePath(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		union = append(union, p)
	}
	sort.Strings(union)

	return templates.Render(templates.Paths, struct{ Paths []string }{union})
}
