// Package autoimport indexes the symbols a project exposes as implicit
// globals and renders their ambient type declarations.
package autoimport

import "context"

// Import is one auto-imported symbol.
type Import struct {
	// Name is the exported name in the source module, "default" for
	// default exports.
	Name string `json:"name" yaml:"name"`

	// As is the global name when it differs from Name.
	As string `json:"as,omitempty" yaml:"as,omitempty"`

	// From is a module specifier or an absolute source file path.
	From string `json:"from" yaml:"from"`
}

// Exposed returns the name the symbol is visible under.
func (i Import) Exposed() string {
	if i.As != "" {
		return i.As
	}
	return i.Name
}

// Scanner indexes importable symbols and renders their declarations.
type Scanner interface {
	// ScanDir indexes the configured import directories under dir.
	ScanDir(ctx context.Context, dir string) error

	// Imports returns every known import, sorted by exposed name.
	Imports() []Import

	// TypeDeclarations renders the global declarations for Imports.
	TypeDeclarations() (string, error)
}
