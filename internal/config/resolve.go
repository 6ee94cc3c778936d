package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Default directory names, relative to the project root or source dir.
const (
	defaultPublicDir      = "public"
	defaultEntrypointsDir = "entrypoints"
	defaultOutBaseDir     = ".output"

	// GenDirName is the directory generated artifacts are written to.
	GenDirName = ".extforge"

	// DefaultESLintrcPath is the linter globals file, relative to GenDir.
	DefaultESLintrcPath = "eslintrc-auto-import.json"
)

// modeSuffixes are appended to the per-target output directory name.
var modeSuffixes = map[string]string{
	"production":  "",
	"development": "-dev",
}

// Resolve turns a parsed settings file into absolute, defaulted Settings.
func Resolve(root string, f *File) (*Settings, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	browser := orDefault(f.Browser, "chrome")
	mode := orDefault(f.Mode, "production")
	mv := f.ManifestVersion
	if mv == 0 {
		mv = defaultManifestVersion(browser)
	}

	srcDir := resolveDir(root, f.SrcDir, ".")
	outBaseDir := resolveDir(root, f.OutDir, defaultOutBaseDir)

	s := &Settings{
		Root:            root,
		SrcDir:          srcDir,
		PublicDir:       resolveDir(srcDir, f.PublicDir, defaultPublicDir),
		EntrypointsDir:  resolveDir(srcDir, f.EntrypointsDir, defaultEntrypointsDir),
		OutBaseDir:      outBaseDir,
		OutDir:          filepath.Join(outBaseDir, fmt.Sprintf("%s-mv%d%s", browser, mv, modeSuffixes[mode])),
		GenDir:          filepath.Join(root, GenDirName),
		Browser:         browser,
		ManifestVersion: mv,
		Mode:            mode,
		Command:         orDefault(f.Command, CommandBuild),
		Modules:         f.Modules,
		Alias:           resolveAliases(root, srcDir, f.Alias),
		Imports:         f.Imports,
		Manifest:        f.Manifest,
		Env:             f.Env,
		Extra:           f.Types.Extra,
	}

	if len(s.Imports.Dirs) == 0 {
		s.Imports.Dirs = DefaultImportDirs()
	}
	if s.Imports.ESLintrc.FilePath == "" {
		s.Imports.ESLintrc.FilePath = DefaultESLintrcPath
	}
	if s.Imports.ESLintrc.GlobalsPropValue == nil {
		s.Imports.ESLintrc.GlobalsPropValue = true
	}

	return s, nil
}

// defaultManifestVersion returns 2 for browsers without full MV3 support.
func defaultManifestVersion(browser string) int {
	switch strings.ToLower(browser) {
	case "firefox", "safari":
		return 2
	default:
		return 3
	}
}

// resolveAliases merges the built-in aliases with user aliases and returns
// them sorted by name so generated output is stable.
func resolveAliases(root, srcDir string, user map[string]string) []Alias {
	merged := map[string]string{
		"~":  srcDir,
		"@":  srcDir,
		"~~": root,
		"@@": root,
	}
	for name, target := range user {
		merged[name] = resolveDir(root, target, ".")
	}

	aliases := make([]Alias, 0, len(merged))
	for name, target := range merged {
		aliases = append(aliases, Alias{Name: name, Path: target})
	}
	sort.Slice(aliases, func(i, j int) bool {
		return aliases[i].Name < aliases[j].Name
	})
	return aliases
}

func resolveDir(base, dir, def string) string {
	if dir == "" {
		dir = def
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
