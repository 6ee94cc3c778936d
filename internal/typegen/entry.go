// Package typegen assembles the generated type declaration artifacts of an
// extension project and persists them idempotently.
//
// Entries are produced by a fixed pipeline of stages. Each stage sees a
// frozen view of the entries produced before it and returns new entries to
// append. The final cross-reference entry is derived from the shape of every
// prior entry.
package typegen

import "strconv"

// Generated file paths, relative to the generated directory.
const (
	ImportsPath    = "types/imports.d.ts"
	PathsPath      = "types/paths.d.ts"
	I18nPath       = "types/i18n.d.ts"
	GlobalsPath    = "types/globals.d.ts"
	TSConfigPath   = "tsconfig.json"
	ReferencesPath = "extforge.d.ts"
)

// BuilderEnvModule is always referenced first.
const BuilderEnvModule = "extforge/vite-builder-env"

// Entry is one unit of generated output: a ModuleRef or a File.
type Entry interface {
	isEntry()
}

// ModuleRef references an external module's types without generating content.
type ModuleRef struct {
	Module string `json:"module" yaml:"module"`
}

// File is a generated file.
type File struct {
	// Path is relative to the generated directory, or absolute when supplied
	// as such by configuration.
	Path string `json:"path" yaml:"path"`

	Text string `json:"text" yaml:"text"`

	// TSReference marks the file for inclusion in the cross-reference file.
	TSReference bool `json:"tsReference" yaml:"tsReference"`
}

func (ModuleRef) isEntry() {}
func (File) isEntry()      {}

// ResolvedFile is a File whose path has been made absolute.
type ResolvedFile struct {
	Path string
	Text string
}

// EntrySummary is the serializable view of an entry used for dry-run output.
type EntrySummary struct {
	Module      string `json:"module,omitempty" yaml:"module,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	TSReference bool   `json:"tsReference,omitempty" yaml:"tsReference,omitempty"`
	Bytes       int    `json:"bytes,omitempty" yaml:"bytes,omitempty"`
}

// Summaries is the dry-run view of an entry sequence.
type Summaries []EntrySummary

// TableHeaders implements output.Tabular.
func (s Summaries) TableHeaders() []string {
	return []string{"KIND", "TARGET", "REFERENCED", "BYTES"}
}

// TableRows implements output.Tabular.
func (s Summaries) TableRows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, e := range s {
		if e.Module != "" {
			rows = append(rows, []string{"module", e.Module, "yes", "-"})
			continue
		}
		referenced := "no"
		if e.TSReference {
			referenced = "yes"
		}
		rows = append(rows, []string{"file", e.Path, referenced, strconv.Itoa(e.Bytes)})
	}
	return rows
}

// Summarize returns the dry-run view of entries.
func Summarize(entries []Entry) Summaries {
	summaries := make(Summaries, 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case ModuleRef:
			summaries = append(summaries, EntrySummary{Module: e.Module})
		case File:
			summaries = append(summaries, EntrySummary{
				Path:        e.Path,
				TSReference: e.TSReference,
				Bytes:       len(e.Text),
			})
		}
	}
	return summaries
}

// Files returns the file entries in order.
func Files(entries []Entry) []File {
	var files []File
	for _, e := range entries {
		if f, ok := e.(File); ok {
			files = append(files, f)
		}
	}
	return files
}
