package typegen

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extforge/cli/internal/autoimport"
	"github.com/extforge/cli/internal/config"
	oerrors "github.com/extforge/cli/internal/errors"
	"github.com/extforge/cli/internal/globals"
	"github.com/extforge/cli/internal/i18n"
	"github.com/extforge/cli/internal/templates"
)

// unionRows returns the rows of the PublicPath union.
func unionRows(text string) []string {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "    | ") {
			rows = append(rows, strings.TrimPrefix(line, "    | "))
		}
	}
	return rows
}

func TestRenderPaths(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "sorted",
			paths: []string{"popup.html", "background.js", "icon.png"},
			want:  []string{`"/background.js"`, `"/icon.png"`, `"/popup.html"`},
		},
		{
			name:  "empty renders never",
			paths: nil,
			want:  []string{"never"},
		},
		{
			name:  "normalized and deduplicated",
			paths: []string{`icons\16.png`, "icons/16.png", "a.js"},
			want:  []string{`"/a.js"`, `"/icons/16.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderPaths(tt.paths)
			require.NoError(t, err)
			assert.Equal(t, tt.want, unionRows(got))
		})
	}
}

func TestRenderPaths_Template(t *testing.T) {
	got, err := RenderPaths([]string{"popup.html"})
	require.NoError(t, err)

	want := templates.Header + `
import "extforge/browser";

declare module "extforge/browser" {
  export type PublicPath =
    | "/popup.html"
  type HtmlPublicPath = Extract<PublicPath, ` + "`${string}.html`" + `>
  export interface ExtRuntime {
    getURL(path: PublicPath): string;
    getURL(path: ` + "`${HtmlPublicPath}${string}`" + `): string;
  }
}
`
	assert.Equal(t, want, got)
}

func TestPathsEntry(t *testing.T) {
	s := newSettings(t, nil)
	writeFile(t, filepath.Join(s.PublicDir, "icon.png"), "png")
	writeFile(t, filepath.Join(s.PublicDir, "_locales", "en", "messages.json"), "{}")

	f, err := PathsEntry(context.Background(), s, exampleEntrypoints(s))
	require.NoError(t, err)

	assert.Equal(t, PathsPath, f.Path)
	assert.True(t, f.TSReference)
	assert.Equal(t, []string{
		`"/_locales/en/messages.json"`,
		`"/background.js"`,
		`"/icon.png"`,
		`"/popup.html"`,
	}, unionRows(f.Text))
}

func TestRenderI18n(t *testing.T) {
	messages := []i18n.Message{
		{Name: "greeting", Message: "Hello", Description: "Shown on start"},
		{Name: "farewell", Message: "Bye"},
		{Name: "greeting", Message: "Hello again"},
	}

	got, err := RenderI18n(messages)
	require.NoError(t, err)

	assert.Equal(t, len(messages), strings.Count(got, "getMessage("))
	assert.Contains(t, got, "     * Shown on start\n     *\n     * \"Hello\"\n")
	assert.Contains(t, got, "     * No message description.\n     *\n     * \"Bye\"\n")
	assert.Contains(t, got, `      messageName: "farewell",`)
	assert.Contains(t, got, "  export interface ExtI18n {\n")
	assert.Contains(t, got, "    escapeLt?: boolean\n")
	assert.Less(t, strings.Index(got, `"greeting"`), strings.Index(got, `"farewell"`))
}

func TestRenderI18n_Empty(t *testing.T) {
	got, err := RenderI18n([]i18n.Message{})
	require.NoError(t, err)
	assert.Zero(t, strings.Count(got, "getMessage("))
	assert.Contains(t, got, "  export interface ExtI18n {\n  }\n}\n")
}

func TestI18nEntry(t *testing.T) {
	t.Run("no default locale renders zero overloads", func(t *testing.T) {
		s := newSettings(t, nil)

		exists, err := I18nBundleExists(s)
		require.NoError(t, err)
		assert.False(t, exists)

		f, err := I18nEntry(s)
		require.NoError(t, err)
		assert.Equal(t, I18nPath, f.Path)
		assert.Zero(t, strings.Count(f.Text, "getMessage("))
	})

	t.Run("no default locale checks the locales root", func(t *testing.T) {
		s := newSettings(t, nil)
		writeFile(t, filepath.Join(s.PublicDir, "_locales", "messages.json"), `{"a": {"message": "A"}}`)

		exists, err := I18nBundleExists(s)
		require.NoError(t, err)
		assert.True(t, exists)

		f, err := I18nEntry(s)
		require.NoError(t, err)
		assert.Zero(t, strings.Count(f.Text, "getMessage("))
	})

	t.Run("reads default locale bundle", func(t *testing.T) {
		s := newSettings(t, &config.File{Manifest: config.Manifest{DefaultLocale: "en"}})
		writeFile(t, i18n.BundlePath(s.PublicDir, "en"),
			`{"b": {"message": "B"}, "a": {"message": "A", "description": "first"}}`)

		exists, err := I18nBundleExists(s)
		require.NoError(t, err)
		assert.True(t, exists)

		f, err := I18nEntry(s)
		require.NoError(t, err)
		assert.True(t, f.TSReference)
		assert.Equal(t, 2, strings.Count(f.Text, "getMessage("))
		assert.Less(t, strings.Index(f.Text, `"b"`), strings.Index(f.Text, `"a"`))
	})

	t.Run("malformed bundle is a parse error", func(t *testing.T) {
		s := newSettings(t, &config.File{Manifest: config.Manifest{DefaultLocale: "en"}})
		writeFile(t, i18n.BundlePath(s.PublicDir, "en"), `{"a": `)

		_, err := I18nEntry(s)
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrParse)
	})
}

func TestImportsLintEntry(t *testing.T) {
	imports := []autoimport.Import{
		{Name: "foo"},
		{Name: "bar", As: "b"},
		{Name: ""},
	}

	f, err := ImportsLintEntry(imports, config.ESLintrc{})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultESLintrcPath, f.Path)
	assert.False(t, f.TSReference)
	assert.Equal(t, "{\n  \"globals\": {\n    \"b\": true,\n    \"foo\": true\n  }\n}\n", f.Text)
}

func TestImportsLintEntry_Options(t *testing.T) {
	f, err := ImportsLintEntry(
		[]autoimport.Import{{Name: "ref"}},
		config.ESLintrc{FilePath: "/abs/.eslintrc-globals.json", GlobalsPropValue: "readonly"},
	)
	require.NoError(t, err)

	assert.Equal(t, "/abs/.eslintrc-globals.json", f.Path)
	assert.Contains(t, f.Text, `"ref": "readonly"`)
}

type fakeScanner struct {
	scanErr error
	imports []autoimport.Import
	decls   string
	scanned []string
}

func (f *fakeScanner) ScanDir(_ context.Context, dir string) error {
	f.scanned = append(f.scanned, dir)
	return f.scanErr
}

func (f *fakeScanner) Imports() []autoimport.Import { return f.imports }

func (f *fakeScanner) TypeDeclarations() (string, error) { return f.decls, nil }

func TestImportsEntry(t *testing.T) {
	scanner := &fakeScanner{decls: "export {}\ndeclare global {\n}"}

	f, err := ImportsEntry(context.Background(), scanner, "/src")
	require.NoError(t, err)

	assert.Equal(t, []string{"/src"}, scanner.scanned)
	assert.Equal(t, ImportsPath, f.Path)
	assert.True(t, f.TSReference)
	assert.Equal(t, templates.Header+"\nexport {}\ndeclare global {\n}\n", f.Text)
}

func TestImportsEntry_ScanError(t *testing.T) {
	scanErr := errors.New("permission denied")

	_, err := ImportsEntry(context.Background(), &fakeScanner{scanErr: scanErr}, "/src")
	require.Error(t, err)
	assert.ErrorIs(t, err, scanErr)
}

func TestRenderGlobals(t *testing.T) {
	got, err := RenderGlobals([]globals.Var{
		{Name: "BROWSER", Type: "string"},
		{Name: "__ENTRYPOINT__", Type: "string"},
	})
	require.NoError(t, err)

	want := templates.Header + `
interface ImportMetaEnv {
  readonly BROWSER: string;
  readonly __ENTRYPOINT__: string;
}
interface ImportMeta {
  readonly env: ImportMetaEnv
}
`
	assert.Equal(t, want, got)
}

func TestGlobalsEntry(t *testing.T) {
	s := newSettings(t, nil)
	writeFile(t, filepath.Join(s.Root, ".env"), "VITE_API=https://example.com\nSECRET=x\n")

	f, err := GlobalsEntry(s)
	require.NoError(t, err)

	assert.Equal(t, GlobalsPath, f.Path)
	assert.True(t, f.TSReference)
	assert.Contains(t, f.Text, "  readonly MANIFEST_VERSION: 2 | 3;\n")
	assert.Contains(t, f.Text, "  readonly COMMAND: \"build\" | \"serve\";\n")
	assert.Contains(t, f.Text, "  readonly VITE_API: string;\n")
	assert.NotContains(t, f.Text, "SECRET")
	assert.Less(t, strings.Index(f.Text, "VITE_API"), strings.Index(f.Text, "__ENTRYPOINT__"))
}

func TestTSConfigEntry(t *testing.T) {
	s := newSettings(t, &config.File{SrcDir: "src"})

	f, err := TSConfigEntry(s)
	require.NoError(t, err)

	want := `{
  "compilerOptions": {
    "target": "ESNext",
    "module": "ESNext",
    "moduleResolution": "Bundler",
    "noEmit": true,
    "esModuleInterop": true,
    "forceConsistentCasingInFileNames": true,
    "resolveJsonModule": true,
    "strict": true,
    "skipLibCheck": true,
    "paths": {
      "@": ["../src"],
      "@/*": ["../src/*"],
      "@@": [".."],
      "@@/*": ["../*"],
      "~": ["../src"],
      "~/*": ["../src/*"],
      "~~": [".."],
      "~~/*": ["../*"]
    }
  },
  "include": [
    "../**/*",
    "./extforge.d.ts"
  ],
  "exclude": ["../.output"]
}
`
	assert.Equal(t, TSConfigPath, f.Path)
	assert.False(t, f.TSReference)
	assert.Equal(t, want, f.Text)
}

func TestReferenceEntry(t *testing.T) {
	entries := []Entry{
		ModuleRef{Module: BuilderEnvModule},
		File{Path: ImportsPath, TSReference: true},
		File{Path: config.DefaultESLintrcPath},
		ModuleRef{Module: "extforge-module-i18n"},
		File{Path: PathsPath, TSReference: true},
		File{Path: `types\custom.d.ts`, TSReference: true},
	}

	f, err := ReferenceEntry(entries, "/p/.extforge")
	require.NoError(t, err)

	want := templates.Header + "\n" +
		`/// <reference types="extforge/vite-builder-env" />` + "\n" +
		`/// <reference types="./types/imports.d.ts" />` + "\n" +
		`/// <reference types="extforge-module-i18n" />` + "\n" +
		`/// <reference types="./types/paths.d.ts" />` + "\n" +
		`/// <reference types="./types/custom.d.ts" />` + "\n"
	assert.Equal(t, ReferencesPath, f.Path)
	assert.False(t, f.TSReference)
	assert.Equal(t, want, f.Text)
}

func TestReferenceEntry_AbsolutePath(t *testing.T) {
	f, err := ReferenceEntry([]Entry{
		File{Path: "/p/.extforge/types/extra.d.ts", TSReference: true},
		File{Path: "/p/other/shim.d.ts", TSReference: true},
	}, "/p/.extforge")
	require.NoError(t, err)

	assert.Contains(t, f.Text, `/// <reference types="./types/extra.d.ts" />`)
	assert.Contains(t, f.Text, `/// <reference types="../other/shim.d.ts" />`)
}

func TestReferenceEntry_DotLeadingPath(t *testing.T) {
	f, err := ReferenceEntry([]Entry{
		File{Path: ".cache/x.d.ts", TSReference: true},
		File{Path: "..shim.d.ts", TSReference: true},
		File{Path: "./types/own.d.ts", TSReference: true},
	}, "/gen")
	require.NoError(t, err)

	assert.Contains(t, f.Text, `/// <reference types="./.cache/x.d.ts" />`)
	assert.Contains(t, f.Text, `/// <reference types="./..shim.d.ts" />`)
	assert.Contains(t, f.Text, `/// <reference types="./types/own.d.ts" />`)
	assert.NotContains(t, f.Text, `"././`)
}
