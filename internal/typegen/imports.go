package typegen

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/extforge/cli/internal/autoimport"
	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/templates"
)

// ImportsEntry scans dir for auto-imports and renders their declarations.
// The scanner retains its state for ImportsLintEntry.
func ImportsEntry(ctx context.Context, scanner autoimport.Scanner, dir string) (File, error) {
	if err := scanner.ScanDir(ctx, dir); err != nil {
		return File{}, fmt.Errorf("scanning auto-imports: %w", err)
	}

	decls, err := scanner.TypeDeclarations()
	if err != nil {
		return File{}, fmt.Errorf("rendering auto-import declarations: %w", err)
	}

	text, err := templates.Render(templates.Imports, struct{ Declarations string }{decls})
	if err != nil {
		return File{}, err
	}
	return File{Path: ImportsPath, Text: text, TSReference: true}, nil
}

// ImportsLintEntry renders the linter globals file for imports. Keys are the
// exposed names, sorted.
func ImportsLintEntry(imports []autoimport.Import, eslintrc config.ESLintrc) (File, error) {
	names := make([]string, 0, len(imports))
	for _, imp := range imports {
		if name := imp.Exposed(); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	value := eslintrc.GlobalsPropValue
	if value == nil {
		value = true
	}

	globals := make(map[string]any, len(names))
	for _, name := range names {
		globals[name] = value
	}

	// encoding/json sorts map keys, which keeps the output deterministic.
	data, err := json.MarshalIndent(map[string]any{"globals": globals}, "", "  ")
	if err != nil {
		return File{}, fmt.Errorf("encoding linter globals: %w", err)
	}

	path := eslintrc.FilePath
	if path == "" {
		path = config.DefaultESLintrcPath
	}
	return File{Path: path, Text: string(data) + "\n"}, nil
}
