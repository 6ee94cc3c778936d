package autoimport

import "github.com/extforge/cli/internal/config"

// BuiltinPresets are always available to extension code.
var BuiltinPresets = []config.ImportPreset{
	{
		From: "extforge/sandbox",
		Imports: []string{
			"defineBackground",
			"defineContentScript",
			"defineUnlistedScript",
		},
	},
	{
		From:    "extforge/browser",
		Imports: []string{"browser"},
	},
	{
		From:    "extforge/storage",
		Imports: []string{"storage"},
	},
}

// presetImports flattens presets into imports.
func presetImports(presets []config.ImportPreset) []Import {
	var imports []Import
	for _, p := range presets {
		for _, name := range p.Imports {
			imports = append(imports, Import{Name: name, From: p.From})
		}
	}
	return imports
}

// specImports converts user-declared imports.
func specImports(specs []config.ImportSpec) []Import {
	imports := make([]Import, 0, len(specs))
	for _, s := range specs {
		imports = append(imports, Import{Name: s.Name, As: s.As, From: s.From})
	}
	return imports
}
