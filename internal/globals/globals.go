// Package globals derives the build-time environment symbols exposed on
// import.meta.env to extension code.
package globals

import (
	"strconv"

	"github.com/extforge/cli/internal/config"
)

// Var is one environment-style symbol exposed to generated declarations.
type Var struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
}

// FromSettings returns the build-wide globals: the built-in target flags
// followed by dotenv variables.
func FromSettings(s *config.Settings, env []Var) []Var {
	vars := []Var{
		{Name: "MANIFEST_VERSION", Value: strconv.Itoa(s.ManifestVersion), Type: "2 | 3"},
		{Name: "BROWSER", Value: s.Browser, Type: "string"},
		{Name: "CHROME", Value: strconv.FormatBool(s.Browser == "chrome"), Type: "boolean"},
		{Name: "FIREFOX", Value: strconv.FormatBool(s.Browser == "firefox"), Type: "boolean"},
		{Name: "SAFARI", Value: strconv.FormatBool(s.Browser == "safari"), Type: "boolean"},
		{Name: "EDGE", Value: strconv.FormatBool(s.Browser == "edge"), Type: "boolean"},
		{Name: "OPERA", Value: strconv.FormatBool(s.Browser == "opera"), Type: "boolean"},
		{Name: "COMMAND", Value: s.Command, Type: `"build" | "serve"`},
	}
	return append(vars, env...)
}

// ForEntrypoint returns the globals scoped to a single entrypoint. The type
// generator passes an empty name since declarations are build-wide.
func ForEntrypoint(name string) []Var {
	return []Var{
		{Name: surroundInUnderscore("ENTRYPOINT"), Value: name, Type: "string"},
	}
}

func surroundInUnderscore(name string) string {
	return "__" + name + "__"
}
