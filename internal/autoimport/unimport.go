package autoimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/output"
)

// Options configures an Unimport scanner.
type Options struct {
	// Dirs are scanned for exports, relative to the directory given to ScanDir.
	Dirs []string

	// Presets and Imports are registered before any directory is scanned.
	Presets []config.ImportPreset
	Imports []config.ImportSpec

	// DeclarationDir is where the rendered declarations are written; local
	// sources are made relative to it.
	DeclarationDir string

	// Cache is optional.
	Cache *Cache
}

// Unimport is the default Scanner. It scans top-level scripts and
// "<dir>/index.*" modules of each configured directory.
type Unimport struct {
	opts    Options
	imports []Import
}

var _ Scanner = (*Unimport)(nil)

// NewUnimport creates a scanner seeded with the built-in presets, the
// configured presets, and the configured imports.
func NewUnimport(opts Options) *Unimport {
	u := &Unimport{opts: opts}
	u.imports = append(u.imports, specImports(opts.Imports)...)
	u.imports = append(u.imports, presetImports(BuiltinPresets)...)
	u.imports = append(u.imports, presetImports(opts.Presets)...)
	return u
}

// ScanDir indexes the exports of every configured directory under dir.
// Missing directories are skipped.
func (u *Unimport) ScanDir(ctx context.Context, dir string) error {
	for _, d := range u.opts.Dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := u.scanImportDir(ctx, fsutil.Resolve(dir, d)); err != nil {
			return err
		}
	}
	return nil
}

func (u *Unimport) scanImportDir(ctx context.Context, dir string) error {
	items, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		output.Debug("import directory not found", "dir", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading import directory %s: %w", dir, err)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, item.Name())
		if item.IsDir() {
			index, err := findIndex(path)
			if err != nil {
				return err
			}
			if index == "" {
				continue
			}
			path = index
		} else if !isScript(item.Name()) {
			continue
		}

		found, err := u.scanFile(path)
		if err != nil {
			return err
		}
		u.imports = append(u.imports, found...)
	}
	return nil
}

func (u *Unimport) scanFile(path string) ([]Import, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if cached, ok := u.opts.Cache.Get(path, info); ok {
		return cached, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	found := scanExports(path, src)
	u.opts.Cache.Add(path, info, found)

	output.Debug("scanned exports", "file", path, "count", len(found))
	return found, nil
}

func findIndex(dir string) (string, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, c := range children {
		if !c.IsDir() && strings.HasPrefix(c.Name(), "index.") && isScript(c.Name()) {
			return filepath.Join(dir, c.Name()), nil
		}
	}
	return "", nil
}

// Imports returns the registered imports sorted by exposed name. When two
// imports expose the same name, the first registered wins.
func (u *Unimport) Imports() []Import {
	seen := make(map[string]Import, len(u.imports))
	result := make([]Import, 0, len(u.imports))
	for _, imp := range u.imports {
		name := imp.Exposed()
		if prev, dup := seen[name]; dup {
			if prev != imp {
				output.Warn("duplicate auto-import ignored", "name", name, "from", imp.From, "kept", prev.From)
			}
			continue
		}
		seen[name] = imp
		result = append(result, imp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Exposed() < result[j].Exposed()
	})
	return result
}

// TypeDeclarations renders an ambient module declaring every import as a
// global constant.
func (u *Unimport) TypeDeclarations() (string, error) {
	var sb strings.Builder
	sb.WriteString("export {}\n")
	sb.WriteString("declare global {\n")
	for _, imp := range u.Imports() {
		from, err := u.specifier(imp.From)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "  const %s: typeof import('%s')['%s']\n", imp.Exposed(), from, imp.Name)
	}
	sb.WriteString("}")
	return sb.String(), nil
}

// specifier turns an absolute source file into a path relative to the
// declaration directory, without extension. Module specifiers are returned
// unchanged.
func (u *Unimport) specifier(from string) (string, error) {
	if !filepath.IsAbs(from) {
		return from, nil
	}

	rel, err := fsutil.RelativePath(u.opts.DeclarationDir, from)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel, nil
}
