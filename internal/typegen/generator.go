package typegen

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/extforge/cli/internal/autoimport"
	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/entrypoint"
	oerrors "github.com/extforge/cli/internal/errors"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/output"
)

// Stage produces entries from a frozen view of the entries before it.
type Stage struct {
	Name string
	Run  func(ctx context.Context, prior []Entry) ([]Entry, error)
}

// ScannerFactory creates a fresh auto-import scanner for a run.
type ScannerFactory func(s *config.Settings) autoimport.Scanner

// Options configures a Generator.
type Options struct {
	// DryRun produces entries without touching the generated directory.
	DryRun bool

	// Hook contributes additional entries. Optional.
	Hook Hook

	// NewScanner overrides the default auto-import scanner.
	NewScanner ScannerFactory

	// Cache is shared by default scanners across runs. Optional.
	Cache *autoimport.Cache

	// WriteLimit caps concurrent writes. Zero means no limit.
	WriteLimit int
}

// Result is the outcome of a generation run.
type Result struct {
	// Entries is the final entry sequence, cross-reference entry last.
	Entries []Entry

	// Files holds one write result per file entry. Empty on dry runs.
	Files []WriteResult
}

// Generator produces and persists the declaration artifacts of a project.
type Generator struct {
	settings *config.Settings
	opts     Options
}

// NewGenerator creates a generator for settings.
func NewGenerator(settings *config.Settings, opts Options) *Generator {
	if opts.NewScanner == nil {
		opts.NewScanner = defaultScanner(opts.Cache)
	}
	return &Generator{settings: settings, opts: opts}
}

func defaultScanner(cache *autoimport.Cache) ScannerFactory {
	return func(s *config.Settings) autoimport.Scanner {
		return autoimport.NewUnimport(autoimport.Options{
			Dirs:           s.Imports.Dirs,
			Presets:        s.Imports.Presets,
			Imports:        s.Imports.Imports,
			DeclarationDir: filepath.Join(s.GenDir, filepath.Dir(ImportsPath)),
			Cache:          cache,
		})
	}
}

// Generate produces every entry for entrypoints and writes the files under
// the generated directory. Any failure aborts the run.
func (g *Generator) Generate(ctx context.Context, entrypoints []entrypoint.Entrypoint) (*Result, error) {
	s := g.settings

	if !g.opts.DryRun {
		if err := fsutil.EnsureDir(s.GenDir); err != nil {
			return nil, err
		}
	}

	var entries []Entry
	for _, stage := range g.stages(entrypoints) {
		added, err := stage.Run(ctx, slices.Clip(entries))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name, err)
		}
		output.Debug("stage complete", "stage", stage.Name, "entries", len(added))
		entries = append(entries, added...)
	}

	resolved, err := g.resolve(entries)
	if err != nil {
		return nil, err
	}

	result := &Result{Entries: entries}
	if g.opts.DryRun {
		return result, nil
	}

	w := &Writer{Limit: g.opts.WriteLimit}
	files, err := w.Write(ctx, resolved)
	if err != nil {
		return nil, err
	}
	result.Files = files
	return result, nil
}

// stages returns the fixed pipeline. The imports stages share one scanner.
func (g *Generator) stages(entrypoints []entrypoint.Entrypoint) []Stage {
	s := g.settings
	var scanner autoimport.Scanner

	stages := []Stage{
		{Name: "builder env", Run: func(context.Context, []Entry) ([]Entry, error) {
			return []Entry{ModuleRef{Module: BuilderEnvModule}}, nil
		}},
		{Name: "modules", Run: func(context.Context, []Entry) ([]Entry, error) {
			var refs []Entry
			for _, m := range s.Modules {
				if m.Type == config.ModuleTypeNode && m.ConfigKey != "" {
					refs = append(refs, ModuleRef{Module: m.ID})
				}
			}
			return refs, nil
		}},
	}

	if s.Imports.Enabled {
		stages = append(stages, Stage{Name: "imports", Run: func(ctx context.Context, _ []Entry) ([]Entry, error) {
			scanner = g.opts.NewScanner(s)
			f, err := ImportsEntry(ctx, scanner, s.SrcDir)
			if err != nil {
				return nil, err
			}
			return []Entry{f}, nil
		}})

		if s.Imports.ESLintrc.Enabled {
			stages = append(stages, Stage{Name: "imports lint", Run: func(context.Context, []Entry) ([]Entry, error) {
				f, err := ImportsLintEntry(scanner.Imports(), s.Imports.ESLintrc)
				if err != nil {
					return nil, err
				}
				return []Entry{f}, nil
			}})
		}
	}

	stages = append(stages,
		Stage{Name: "paths", Run: func(ctx context.Context, _ []Entry) ([]Entry, error) {
			f, err := PathsEntry(ctx, s, entrypoints)
			if err != nil {
				return nil, err
			}
			return []Entry{f}, nil
		}},
		Stage{Name: "i18n", Run: func(context.Context, []Entry) ([]Entry, error) {
			exists, err := I18nBundleExists(s)
			if err != nil || !exists {
				return nil, err
			}
			f, err := I18nEntry(s)
			if err != nil {
				return nil, err
			}
			return []Entry{f}, nil
		}},
		Stage{Name: "globals", Run: func(context.Context, []Entry) ([]Entry, error) {
			f, err := GlobalsEntry(s)
			if err != nil {
				return nil, err
			}
			return []Entry{f}, nil
		}},
		Stage{Name: "tsconfig", Run: func(context.Context, []Entry) ([]Entry, error) {
			f, err := TSConfigEntry(s)
			if err != nil {
				return nil, err
			}
			return []Entry{f}, nil
		}},
	)

	if g.opts.Hook != nil {
		stages = append(stages, Stage{Name: "hook", Run: func(ctx context.Context, prior []Entry) ([]Entry, error) {
			return g.opts.Hook.Entries(ctx, s, prior)
		}})
	}

	return append(stages, Stage{Name: "references", Run: func(_ context.Context, prior []Entry) ([]Entry, error) {
		f, err := ReferenceEntry(prior, s.GenDir)
		if err != nil {
			return nil, err
		}
		return []Entry{f}, nil
	}})
}

// resolve makes every file entry's path absolute under the generated
// directory. Two entries resolving to the same file are rejected.
func (g *Generator) resolve(entries []Entry) ([]ResolvedFile, error) {
	files := Files(entries)
	resolved := make([]ResolvedFile, 0, len(files))
	seen := make(map[string]string, len(files))
	for _, f := range files {
		path := fsutil.Resolve(g.settings.GenDir, f.Path)
		if first, ok := seen[path]; ok {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("entries %q and %q resolve to the same file", first, f.Path),
				path,
				"",
				"Give hook and types.extra entries paths distinct from the built-in declaration files.",
			)
		}
		seen[path] = f.Path
		resolved = append(resolved, ResolvedFile{Path: path, Text: f.Text})
	}
	return resolved, nil
}
