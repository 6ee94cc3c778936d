package typegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extforge/cli/internal/config"
	oerrors "github.com/extforge/cli/internal/errors"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/i18n"
	"github.com/extforge/cli/internal/templates"
)

func entryPaths(entries []Entry) []string {
	var paths []string
	for _, f := range Files(entries) {
		paths = append(paths, f.Path)
	}
	return paths
}

func TestGenerate_Example(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = false
	writeFile(t, filepath.Join(s.PublicDir, "icon.png"), "png")

	result, err := NewGenerator(s, Options{}).Generate(context.Background(), exampleEntrypoints(s))
	require.NoError(t, err)

	require.Len(t, result.Entries, 5)
	assert.Equal(t, ModuleRef{Module: BuilderEnvModule}, result.Entries[0])
	assert.Equal(t, []string{PathsPath, GlobalsPath, TSConfigPath, ReferencesPath}, entryPaths(result.Entries))

	paths := readFile(t, filepath.Join(s.GenDir, PathsPath))
	assert.ElementsMatch(t, []string{`"/popup.html"`, `"/background.js"`, `"/icon.png"`}, unionRows(paths))

	refs := readFile(t, filepath.Join(s.GenDir, ReferencesPath))
	want := templates.Header + "\n" +
		`/// <reference types="extforge/vite-builder-env" />` + "\n" +
		`/// <reference types="./types/paths.d.ts" />` + "\n" +
		`/// <reference types="./types/globals.d.ts" />` + "\n"
	assert.Equal(t, want, refs)

	assert.NoFileExists(t, filepath.Join(s.GenDir, I18nPath))
	assert.NoFileExists(t, filepath.Join(s.GenDir, ImportsPath))

	require.Len(t, result.Files, 4)
	for _, f := range result.Files {
		assert.Equal(t, fsutil.StatusCreated, f.Status, f.Path)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	s := newSettings(t, &config.File{Manifest: config.Manifest{DefaultLocale: "en"}})
	s.Imports.Enabled = true
	s.Imports.ESLintrc.Enabled = true
	writeFile(t, filepath.Join(s.PublicDir, "icon.png"), "png")
	writeFile(t, i18n.BundlePath(s.PublicDir, "en"), `{"hello": {"message": "Hello"}}`)
	writeFile(t, filepath.Join(s.SrcDir, "utils", "math.ts"), "export function add() {}\n")

	g := NewGenerator(s, Options{})
	first, err := g.Generate(context.Background(), exampleEntrypoints(s))
	require.NoError(t, err)

	contents := make(map[string]string)
	mtimes := make(map[string]time.Time)
	for _, f := range first.Files {
		contents[f.Path] = readFile(t, f.Path)
		info, err := os.Stat(f.Path)
		require.NoError(t, err)
		mtimes[f.Path] = info.ModTime()
	}

	second, err := g.Generate(context.Background(), exampleEntrypoints(s))
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	for _, f := range second.Files {
		assert.Equal(t, fsutil.StatusUnchanged, f.Status, f.Path)
		assert.Equal(t, contents[f.Path], readFile(t, f.Path))

		info, err := os.Stat(f.Path)
		require.NoError(t, err)
		assert.Equal(t, mtimes[f.Path], info.ModTime(), f.Path)
	}
}

func TestGenerate_ImportsEnabled(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = true
	s.Imports.ESLintrc.Enabled = true
	writeFile(t, filepath.Join(s.SrcDir, "utils", "math.ts"), "export function add() {}\n")

	result, err := NewGenerator(s, Options{}).Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		ImportsPath,
		config.DefaultESLintrcPath,
		PathsPath,
		GlobalsPath,
		TSConfigPath,
		ReferencesPath,
	}, entryPaths(result.Entries))

	imports := readFile(t, filepath.Join(s.GenDir, ImportsPath))
	assert.Contains(t, imports, "  const add: typeof import('../../utils/math')['add']\n")

	lint := readFile(t, filepath.Join(s.GenDir, config.DefaultESLintrcPath))
	assert.Contains(t, lint, `"add": true`)

	refs := readFile(t, filepath.Join(s.GenDir, ReferencesPath))
	assert.Contains(t, refs, `/// <reference types="./types/imports.d.ts" />`)
	assert.NotContains(t, refs, config.DefaultESLintrcPath)

	paths := readFile(t, filepath.Join(s.GenDir, PathsPath))
	assert.Equal(t, []string{"never"}, unionRows(paths))
}

func TestGenerate_ImportsDisabled(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = false
	s.Imports.ESLintrc.Enabled = true

	result, err := NewGenerator(s, Options{DryRun: true}).Generate(context.Background(), nil)
	require.NoError(t, err)

	paths := entryPaths(result.Entries)
	assert.NotContains(t, paths, ImportsPath)
	assert.NotContains(t, paths, config.DefaultESLintrcPath)

	refs := Files(result.Entries)[len(Files(result.Entries))-1]
	assert.NotContains(t, refs.Text, ImportsPath)
}

func TestGenerate_NodeModules(t *testing.T) {
	s := newSettings(t, &config.File{Modules: []config.Module{
		{ID: "extforge-module-i18n", Type: config.ModuleTypeNode, ConfigKey: "i18n"},
		{ID: "extforge-module-plain", Type: config.ModuleTypeNode},
		{ID: "./modules/local", Type: config.ModuleTypeLocal, ConfigKey: "local"},
	}})
	s.Imports.Enabled = false

	result, err := NewGenerator(s, Options{DryRun: true}).Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ModuleRef{Module: BuilderEnvModule}, result.Entries[0])
	assert.Equal(t, ModuleRef{Module: "extforge-module-i18n"}, result.Entries[1])
	_, isFile := result.Entries[2].(File)
	assert.True(t, isFile)
}

func TestGenerate_Hook(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = false

	var seen []Entry
	hook := HookFunc(func(_ context.Context, _ *config.Settings, prior []Entry) ([]Entry, error) {
		seen = prior
		return []Entry{
			ModuleRef{Module: "@types/chrome"},
			File{Path: "types/custom.d.ts", Text: "declare const X: 1\n", TSReference: true},
			File{Path: "notes.txt", Text: "n"},
		}, nil
	})

	result, err := NewGenerator(s, Options{Hook: hook}).Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, seen, 4)
	assert.FileExists(t, filepath.Join(s.GenDir, "types", "custom.d.ts"))
	assert.FileExists(t, filepath.Join(s.GenDir, "notes.txt"))

	refs := readFile(t, filepath.Join(s.GenDir, ReferencesPath))
	assert.Contains(t, refs, `/// <reference types="@types/chrome" />`)
	assert.Contains(t, refs, `/// <reference types="./types/custom.d.ts" />`)
	assert.NotContains(t, refs, "notes.txt")

	last := result.Entries[len(result.Entries)-1].(File)
	assert.Equal(t, ReferencesPath, last.Path)
}

func TestGenerate_HookError(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = false
	hookErr := errors.New("plugin failed")

	_, err := NewGenerator(s, Options{
		Hook: HookFunc(func(context.Context, *config.Settings, []Entry) ([]Entry, error) {
			return nil, hookErr
		}),
	}).Generate(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, hookErr)
	assert.NoFileExists(t, filepath.Join(s.GenDir, ReferencesPath))
}

func TestGenerate_DuplicatePath(t *testing.T) {
	for _, dryRun := range []bool{false, true} {
		s := newSettings(t, nil)
		s.Imports.Enabled = false

		_, err := NewGenerator(s, Options{
			DryRun: dryRun,
			Hook: HookFunc(func(context.Context, *config.Settings, []Entry) ([]Entry, error) {
				return []Entry{File{Path: "./" + PathsPath, Text: "shadow", TSReference: true}}, nil
			}),
		}).Generate(context.Background(), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrValidation)
		assert.Contains(t, err.Error(), "same file")
		assert.NoFileExists(t, filepath.Join(s.GenDir, PathsPath))
		assert.NoFileExists(t, filepath.Join(s.GenDir, ReferencesPath))
	}
}

func TestGenerate_I18nWithoutDefaultLocale(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = false
	writeFile(t, filepath.Join(s.PublicDir, "_locales", "messages.json"), `{"a": {"message": "A"}}`)

	result, err := NewGenerator(s, Options{}).Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.Contains(t, entryPaths(result.Entries), I18nPath)
	assert.NotContains(t, readFile(t, filepath.Join(s.GenDir, I18nPath)), "getMessage(")
	assert.Contains(t, readFile(t, filepath.Join(s.GenDir, ReferencesPath)), `"./types/i18n.d.ts"`)
}

func TestGenerate_MalformedBundle(t *testing.T) {
	s := newSettings(t, &config.File{Manifest: config.Manifest{DefaultLocale: "en"}})
	s.Imports.Enabled = false
	writeFile(t, i18n.BundlePath(s.PublicDir, "en"), `not json`)

	_, err := NewGenerator(s, Options{}).Generate(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrParse)
}

func TestGenerate_DryRun(t *testing.T) {
	s := newSettings(t, nil)
	s.Imports.Enabled = false

	result, err := NewGenerator(s, Options{DryRun: true}).Generate(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Entries)
	assert.Empty(t, result.Files)
	assert.NoDirExists(t, s.GenDir)
}

func TestHooks_Chain(t *testing.T) {
	first := HookFunc(func(context.Context, *config.Settings, []Entry) ([]Entry, error) {
		return []Entry{ModuleRef{Module: "a"}}, nil
	})
	var seen []Entry
	second := HookFunc(func(_ context.Context, _ *config.Settings, prior []Entry) ([]Entry, error) {
		seen = prior
		return []Entry{ModuleRef{Module: "b"}}, nil
	})

	prior := []Entry{ModuleRef{Module: BuilderEnvModule}}
	added, err := Hooks{first, second}.Entries(context.Background(), nil, prior)
	require.NoError(t, err)

	assert.Equal(t, []Entry{ModuleRef{Module: "a"}, ModuleRef{Module: "b"}}, added)
	assert.Equal(t, []Entry{ModuleRef{Module: BuilderEnvModule}, ModuleRef{Module: "a"}}, seen)
	assert.Len(t, prior, 1)
}

func TestExtraEntriesHook(t *testing.T) {
	s := newSettings(t, nil)
	writeFile(t, filepath.Join(s.Root, "shims", "env.d.ts"), "declare const ENV: string\n")
	s.Extra = []config.ExtraEntry{
		{Module: "@types/chrome"},
		{Path: "types/inline.d.ts", Text: "export {}\n", TSReference: true},
		{Path: "types/env.d.ts", File: "shims/env.d.ts", TSReference: true},
	}

	added, err := ExtraEntriesHook.Entries(context.Background(), s, nil)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		ModuleRef{Module: "@types/chrome"},
		File{Path: "types/inline.d.ts", Text: "export {}\n", TSReference: true},
		File{Path: "types/env.d.ts", Text: "declare const ENV: string\n", TSReference: true},
	}, added)
}

func TestExtraEntriesHook_MissingFile(t *testing.T) {
	s := newSettings(t, nil)
	s.Extra = []config.ExtraEntry{{Path: "types/env.d.ts", File: "missing.d.ts"}}

	_, err := ExtraEntriesHook.Entries(context.Background(), s, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	files := []ResolvedFile{
		{Path: filepath.Join(dir, "a", "one.d.ts"), Text: "1"},
		{Path: filepath.Join(dir, "b", "c", "two.d.ts"), Text: "2"},
	}
	writeFile(t, files[1].Path, "old")

	results, err := (&Writer{Limit: 1}).Write(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, []WriteResult{
		{Path: files[0].Path, Status: fsutil.StatusCreated},
		{Path: files[1].Path, Status: fsutil.StatusUpdated},
	}, results)
	assert.Equal(t, "2", readFile(t, files[1].Path))
}

func TestWriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "x.d.ts")
	_, err := (&Writer{}).Write(ctx, []ResolvedFile{{Path: path, Text: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestSummarize(t *testing.T) {
	got := Summarize([]Entry{
		ModuleRef{Module: BuilderEnvModule},
		File{Path: PathsPath, Text: "abc", TSReference: true},
	})
	assert.Equal(t, Summaries{
		{Module: BuilderEnvModule},
		{Path: PathsPath, TSReference: true, Bytes: 3},
	}, got)

	assert.Equal(t, [][]string{
		{"module", BuilderEnvModule, "yes", "-"},
		{"file", PathsPath, "yes", "3"},
	}, got.TableRows())
}
