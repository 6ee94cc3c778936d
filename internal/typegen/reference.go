package typegen

import (
	"path/filepath"
	"strings"

	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/templates"
)

// ReferenceEntry renders the root declaration file referencing every module
// and every file marked for cross-referencing, in entry order. genDir makes
// absolute file paths relative.
func ReferenceEntry(entries []Entry, genDir string) (File, error) {
	refs := make([]string, 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case ModuleRef:
			refs = append(refs, e.Module)
		case File:
			if !e.TSReference {
				continue
			}
			rel := e.Path
			if filepath.IsAbs(rel) {
				var err error
				if rel, err = fsutil.RelativePath(genDir, rel); err != nil {
					return File{}, err
				}
			}
			refs = append(refs, relativeSpecifier(fsutil.NormalizePath(rel)))
		}
	}

	text, err := templates.Render(templates.References, struct{ References []string }{refs})
	if err != nil {
		return File{}, err
	}
	return File{Path: ReferencesPath, Text: text}, nil
}

// relativeSpecifier prefixes rel with "./" unless it already starts with a
// relative segment. Dot-leading names like ".cache/x.d.ts" still need it, or
// the reference resolves as a package.
func relativeSpecifier(rel string) string {
	if strings.HasPrefix(rel, "./") || strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}
