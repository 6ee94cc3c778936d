package typegen

import (
	"fmt"

	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/globals"
	"github.com/extforge/cli/internal/templates"
)

// GlobalsEntry declares the build-wide import.meta.env fields.
func GlobalsEntry(s *config.Settings) (File, error) {
	env, err := globals.LoadEnv(s)
	if err != nil {
		return File{}, fmt.Errorf("loading env files: %w", err)
	}

	vars := globals.FromSettings(s, env)
	vars = append(vars, globals.ForEntrypoint("")...)

	text, err := RenderGlobals(vars)
	if err != nil {
		return File{}, err
	}
	return File{Path: GlobalsPath, Text: text, TSReference: true}, nil
}

// RenderGlobals renders one readonly field per var.
func RenderGlobals(vars []globals.Var) (string, error) {
	return templates.Render(templates.Globals, struct{ Globals []globals.Var }{vars})
}
