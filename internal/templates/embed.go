// Package templates provides the embedded declaration templates and their
// renderer.
package templates

import (
	"embed"
	"text/template"
)

//go:embed declarations/*.tmpl
var declarationFS embed.FS

// Header is the first line of every generated declaration file.
const Header = "// Generated by extforge"

// Name identifies a declaration template.
type Name string

const (
	// Paths augments the runtime path-lookup type with public paths.
	Paths Name = "paths.d.ts"

	// I18n augments the message-lookup function with one overload per message.
	I18n Name = "i18n.d.ts"

	// Globals declares the build-time import.meta.env fields.
	Globals Name = "globals.d.ts"

	// Imports wraps the auto-import declarations.
	Imports Name = "imports.d.ts"

	// References is the root cross-reference file.
	References Name = "references.d.ts"

	// TSConfig is the generated project type configuration.
	TSConfig Name = "tsconfig.json"
)

// validTemplates returns all template names.
func validTemplates() []Name {
	return []Name{Paths, I18n, Globals, Imports, References, TSConfig}
}

var declarations = template.Must(template.ParseFS(declarationFS, "declarations/*.tmpl"))
