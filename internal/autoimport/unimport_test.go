package autoimport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extforge/cli/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func exposedNames(imports []Import) []string {
	names := make([]string, 0, len(imports))
	for _, imp := range imports {
		names = append(names, imp.Exposed())
	}
	return names
}

func TestUnimport_ScanDir(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "utils", "math.ts"), "export function add() {}\n")
	writeFile(t, filepath.Join(src, "utils", "types.d.ts"), "export const ignored: number\n")
	writeFile(t, filepath.Join(src, "utils", "readme.md"), "export const nope = 1\n")
	writeFile(t, filepath.Join(src, "hooks", "useTheme", "index.ts"), "export default {}\n")
	writeFile(t, filepath.Join(src, "hooks", "useTheme", "inner.ts"), "export const inner = 1\n")

	u := NewUnimport(Options{Dirs: []string{"utils", "hooks", "missing"}})
	require.NoError(t, u.ScanDir(context.Background(), src))

	names := exposedNames(u.Imports())
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "useTheme")
	assert.Contains(t, names, "browser")
	assert.NotContains(t, names, "ignored")
	assert.NotContains(t, names, "nope")
	assert.NotContains(t, names, "inner")
	assert.IsIncreasing(t, names)
}

func TestUnimport_ConfiguredImports(t *testing.T) {
	u := NewUnimport(Options{
		Presets: []config.ImportPreset{{From: "vue", Imports: []string{"ref", "computed"}}},
		Imports: []config.ImportSpec{{Name: "default", As: "dayjs", From: "dayjs"}},
	})

	imports := u.Imports()
	assert.Contains(t, imports, Import{Name: "ref", From: "vue"})
	assert.Contains(t, imports, Import{Name: "default", As: "dayjs", From: "dayjs"})
}

func TestUnimport_DuplicateKeepsFirst(t *testing.T) {
	u := NewUnimport(Options{
		Imports: []config.ImportSpec{{Name: "browser", From: "webextension-polyfill"}},
	})

	var found []Import
	for _, imp := range u.Imports() {
		if imp.Exposed() == "browser" {
			found = append(found, imp)
		}
	}
	require.Len(t, found, 1)
	assert.Equal(t, "webextension-polyfill", found[0].From)
}

func TestUnimport_TypeDeclarations(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "utils", "math.ts"), "export function add() {}\n")

	u := NewUnimport(Options{
		Dirs:           []string{"utils"},
		DeclarationDir: filepath.Join(root, ".extforge", "types"),
	})
	require.NoError(t, u.ScanDir(context.Background(), src))

	got, err := u.TypeDeclarations()
	require.NoError(t, err)

	assert.Contains(t, got, "export {}\ndeclare global {\n")
	assert.Contains(t, got, "  const add: typeof import('../../src/utils/math')['add']\n")
	assert.Contains(t, got, "  const browser: typeof import('extforge/browser')['browser']\n")
	assert.Equal(t, "}", got[len(got)-1:])
}

func TestUnimport_Cache(t *testing.T) {
	src := t.TempDir()
	path := filepath.Join(src, "utils", "math.ts")
	writeFile(t, path, "export function add() {}\n")

	cache, err := NewCache(8)
	require.NoError(t, err)

	first := NewUnimport(Options{Dirs: []string{"utils"}, Cache: cache})
	require.NoError(t, first.ScanDir(context.Background(), src))
	assert.Equal(t, 1, cache.Len())

	second := NewUnimport(Options{Dirs: []string{"utils"}, Cache: cache})
	require.NoError(t, second.ScanDir(context.Background(), src))
	assert.Equal(t, 1, cache.Len())
	assert.Contains(t, exposedNames(second.Imports()), "add")
}

func TestUnimport_ScanDirCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := NewUnimport(Options{Dirs: []string{"utils"}})
	assert.ErrorIs(t, u.ScanDir(ctx, t.TempDir()), context.Canceled)
}

func TestSpecifier(t *testing.T) {
	u := NewUnimport(Options{DeclarationDir: "/p/.extforge/types"})

	got, err := u.specifier("/p/.extforge/types/local.ts")
	require.NoError(t, err)
	assert.Equal(t, "./local", got)

	got, err = u.specifier("vue")
	require.NoError(t, err)
	assert.Equal(t, "vue", got)
}
