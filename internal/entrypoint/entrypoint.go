// Package entrypoint discovers extension entrypoints and computes their
// bundled output paths.
package entrypoint

import (
	"path/filepath"

	"github.com/extforge/cli/internal/fsutil"
)

// Type classifies an entrypoint.
type Type string

// Entrypoint types.
const (
	TypePopup              Type = "popup"
	TypeOptions            Type = "options"
	TypeSandbox            Type = "sandbox"
	TypeBookmarks          Type = "bookmarks"
	TypeHistory            Type = "history"
	TypeNewtab             Type = "newtab"
	TypeSidepanel          Type = "sidepanel"
	TypeDevtools           Type = "devtools"
	TypeUnlistedPage       Type = "unlisted-page"
	TypeBackground         Type = "background"
	TypeContentScript      Type = "content-script"
	TypeContentScriptStyle Type = "content-script-style"
	TypeUnlistedScript     Type = "unlisted-script"
	TypeUnlistedStyle      Type = "unlisted-style"
)

// htmlTypes are the page-like entrypoint types bundled to .html files.
var htmlTypes = map[Type]bool{
	TypePopup:        true,
	TypeOptions:      true,
	TypeSandbox:      true,
	TypeBookmarks:    true,
	TypeHistory:      true,
	TypeNewtab:       true,
	TypeSidepanel:    true,
	TypeDevtools:     true,
	TypeUnlistedPage: true,
}

// Entrypoint is one bundled input of the extension.
type Entrypoint struct {
	// Name is the bundle name, e.g. "popup" or "overlay" for overlay.content.ts.
	Name string `json:"name" yaml:"name"`

	// Type classifies the entrypoint.
	Type Type `json:"type" yaml:"type"`

	// InputPath is the absolute source file.
	InputPath string `json:"inputPath" yaml:"inputPath"`

	// OutputDir is the absolute directory the bundle is written to.
	OutputDir string `json:"outputDir" yaml:"outputDir"`
}

// IsHTML reports whether e is bundled to an HTML page.
func (e Entrypoint) IsHTML() bool {
	return htmlTypes[e.Type]
}

// BundleExt returns the output extension used for public paths.
func (e Entrypoint) BundleExt() string {
	if e.IsHTML() {
		return ".html"
	}
	return ".js"
}

// BundlePath returns e's output file relative to outDir in normalized form,
// e.g. "content-scripts/overlay.js".
func BundlePath(e Entrypoint, outDir, ext string) (string, error) {
	return fsutil.RelativePath(outDir, filepath.Join(e.OutputDir, e.Name+ext))
}

// outputDirFor returns where entrypoints of type t are bundled.
func outputDirFor(t Type, outDir string) string {
	switch t {
	case TypeContentScript, TypeContentScriptStyle:
		return filepath.Join(outDir, "content-scripts")
	case TypeUnlistedStyle:
		return filepath.Join(outDir, "assets")
	default:
		return outDir
	}
}
