package entrypoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/output"
)

// rule maps a path pattern, relative to the entrypoints directory, to a type.
// Rules are evaluated in order; the first match wins.
type rule struct {
	pattern *regexp.Regexp
	typ     Type
}

const (
	scriptExt = `\.[mc]?[jt]sx?$`
	styleExt  = `\.(css|scss|sass|less|styl|stylus)$`
)

// pageRule matches "<name>.html" and "<name>/index.html".
func pageRule(name string, t Type) rule {
	return rule{regexp.MustCompile(`^` + name + `(\.html|/index\.html)$`), t}
}

// suffixedPageRule also matches "<x>.<name>.html" and "<x>.<name>/index.html".
func suffixedPageRule(name string, t Type) rule {
	return rule{regexp.MustCompile(`^(.+\.)?` + name + `(\.html|/index\.html)$`), t}
}

var rules = []rule{
	suffixedPageRule("sandbox", TypeSandbox),
	pageRule("bookmarks", TypeBookmarks),
	pageRule("history", TypeHistory),
	pageRule("newtab", TypeNewtab),
	suffixedPageRule("sidepanel", TypeSidepanel),
	pageRule("devtools", TypeDevtools),
	pageRule("popup", TypePopup),
	pageRule("options", TypeOptions),
	{regexp.MustCompile(`^background(/index)?` + scriptExt), TypeBackground},
	{regexp.MustCompile(`^(.+\.)?content(/index)?` + scriptExt), TypeContentScript},
	{regexp.MustCompile(`^(.+\.)?content(/index)?` + styleExt), TypeContentScriptStyle},
	{regexp.MustCompile(`^[^/]+(\.html|/index\.html)$`), TypeUnlistedPage},
	{regexp.MustCompile(`^[^/]+(/index)?` + scriptExt), TypeUnlistedScript},
	{regexp.MustCompile(`^[^/]+(/index)?` + styleExt), TypeUnlistedStyle},
}

// typeSuffixes are stripped from the file name to form the entrypoint name.
var typeSuffixes = []string{".content", ".sandbox", ".sidepanel"}

// Classify returns the type for a path relative to the entrypoints
// directory. The second return is false when the path is not an entrypoint.
func Classify(rel string) (Type, bool) {
	rel = fsutil.NormalizePath(rel)
	if strings.HasSuffix(rel, ".d.ts") {
		return "", false
	}
	for _, r := range rules {
		if r.pattern.MatchString(rel) {
			return r.typ, true
		}
	}
	return "", false
}

// Name derives the entrypoint name from a relative path:
// "popup/index.html" -> "popup", "overlay.content.ts" -> "overlay".
func Name(rel string) string {
	rel = fsutil.NormalizePath(rel)

	var base string
	if dir, file, ok := strings.Cut(rel, "/"); ok && strings.HasPrefix(file, "index.") {
		base = dir
	} else {
		base = strings.TrimSuffix(rel, filepath.Ext(rel))
	}

	for _, suffix := range typeSuffixes {
		if trimmed := strings.TrimSuffix(base, suffix); trimmed != base && trimmed != "" {
			return trimmed
		}
	}
	return base
}

// Discover finds entrypoints directly inside dir: single files, or
// directories containing an index file. outDir is the per-target build
// output directory. A missing dir yields no entrypoints.
func Discover(ctx context.Context, dir, outDir string) ([]Entrypoint, error) {
	items, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		output.Debug("entrypoints directory not found", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading entrypoints directory: %w", err)
	}

	var entrypoints []Entrypoint
	seen := make(map[string]string)

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := candidate(dir, item)
		if err != nil {
			return nil, err
		}
		if rel == "" {
			continue
		}

		typ, ok := Classify(rel)
		if !ok {
			output.Debug("skipping non-entrypoint file", "path", rel)
			continue
		}

		name := Name(rel)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("multiple entrypoints named %q: %s and %s", name, prev, rel)
		}
		seen[name] = rel

		entrypoints = append(entrypoints, Entrypoint{
			Name:      name,
			Type:      typ,
			InputPath: filepath.Join(dir, filepath.FromSlash(rel)),
			OutputDir: outputDirFor(typ, outDir),
		})
	}

	sort.Slice(entrypoints, func(i, j int) bool {
		return entrypoints[i].Name < entrypoints[j].Name
	})
	return entrypoints, nil
}

// candidate returns the relative path to classify for a directory item, or
// "" when the item cannot be an entrypoint.
func candidate(dir string, item os.DirEntry) (string, error) {
	if !item.IsDir() {
		return item.Name(), nil
	}

	children, err := os.ReadDir(filepath.Join(dir, item.Name()))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", item.Name(), err)
	}
	for _, child := range children {
		if !child.IsDir() && strings.HasPrefix(child.Name(), "index.") {
			return item.Name() + "/" + child.Name(), nil
		}
	}
	return "", nil
}
