package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/extforge/cli/internal/autoimport"
	"github.com/extforge/cli/internal/cmdtypes"
	"github.com/extforge/cli/internal/config"
	"github.com/extforge/cli/internal/entrypoint"
	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/output"
	"github.com/extforge/cli/internal/typegen"
)

type prepareOptions struct {
	root    string
	mode    string
	browser string
	mv      int
	output  string
	dryRun  bool
}

// NewPrepareCmd creates the prepare command.
func NewPrepareCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &prepareOptions{}

	cmd := &cobra.Command{
		Use:   "prepare [root]",
		Short: "Generate type declarations",
		Long: `Generate the type declaration files of an extension project.

Files are written under <root>/.extforge. Files whose content is unchanged are
not rewritten, so running prepare repeatedly does not touch modification times.

Arguments:
  root    Project directory (default: current directory)

Examples:
  # Generate types for the project in the current directory
  extforge prepare

  # Generate types for a Firefox MV2 development build
  extforge prepare ./my-extension --browser firefox --mv 2 --mode development

  # Show the entries that would be generated
  extforge prepare --dry-run -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts.root = "."
			if len(args) > 0 {
				opts.root = args[0]
			}
			return runPrepare(c.Context(), c.OutOrStdout(), cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"Print the generated entries without writing files")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml",
		"Dry-run output format: "+strings.Join(output.ValidFormats(), ", "))
	cmd.Flags().StringVar(&opts.mode, "mode", "",
		"Build mode (env: EXTFORGE_MODE)")
	cmd.Flags().StringVarP(&opts.browser, "browser", "b", "",
		"Target browser (env: EXTFORGE_BROWSER)")
	cmd.Flags().IntVar(&opts.mv, "mv", 0,
		"Target manifest version, 2 or 3 (env: EXTFORGE_MANIFEST_VERSION)")

	return cmd
}

func runPrepare(ctx context.Context, w io.Writer, cfg *cmdtypes.GlobalConfig, opts *prepareOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	format, ok := output.ParseFormat(opts.output)
	if !ok {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err: fmt.Errorf("invalid output format %q (valid: %s)",
				opts.output, strings.Join(output.ValidFormats(), ", ")),
		}
	}

	loader, err := config.NewLoader()
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}
	settings, err := loader.Load(config.LoadOptions{
		Root:            opts.root,
		ConfigFile:      cfg.ConfigFile,
		Browser:         opts.browser,
		Mode:            opts.mode,
		ManifestVersion: opts.mv,
	})
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}

	projLog := output.ScopeLogger(filepath.Base(settings.Root))

	entrypoints, err := entrypoint.Discover(ctx, settings.EntrypointsDir, settings.OutDir)
	if err != nil {
		projLog.Error("discovering entrypoints", "error", err)
		return cmdtypes.ExitErrorFrom(err, true)
	}
	projLog.Debug("discovered entrypoints", "count", len(entrypoints), "dir", settings.EntrypointsDir)

	cache, err := autoimport.NewCache(autoimport.DefaultCacheSize)
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}

	gen := typegen.NewGenerator(settings, typegen.Options{
		DryRun: opts.dryRun,
		Hook:   typegen.Hooks{typegen.ExtraEntriesHook},
		Cache:  cache,
	})

	var result *typegen.Result
	err = output.RunWithSpinner(ctx, func() error {
		r, genErr := gen.Generate(ctx, entrypoints)
		if genErr != nil {
			return genErr
		}
		result = r
		return nil
	}, output.WithTitle("Generating types..."))
	if err != nil {
		projLog.Error("generating types", "error", err)
		return cmdtypes.ExitErrorFrom(err, true)
	}
	projLog.Debug("auto-import cache", "files", cache.Len())

	if opts.dryRun {
		if err := output.Encode(w, format, typegen.Summarize(result.Entries)); err != nil {
			return cmdtypes.ExitErrorFrom(err, false)
		}
		return nil
	}

	printWriteResults(w, cfg, settings, result.Files)
	return nil
}

// printWriteResults prints one status line per generated file, the file tree
// in verbose mode, and a summary.
func printWriteResults(w io.Writer, cfg *cmdtypes.GlobalConfig, settings *config.Settings, files []typegen.WriteResult) {
	tree := make([]output.FileStatus, 0, len(files))
	written := 0

	for _, f := range files {
		display := f.Path
		if rel, err := fsutil.RelativePath(settings.Root, f.Path); err == nil {
			display = rel
		}
		fmt.Fprintln(w, output.FormatFileLine(display, string(f.Status)))

		if rel, err := fsutil.RelativePath(settings.GenDir, f.Path); err == nil && !strings.HasPrefix(rel, "..") {
			tree = append(tree, output.FileStatus{Path: rel, Status: string(f.Status)})
		}
		if f.Status != fsutil.StatusUnchanged {
			written++
		}
	}

	if cfg.Verbose {
		if t := output.RenderFileTree(config.GenDirName, tree); t != "" {
			fmt.Fprintln(w, t)
		}
	}

	fmt.Fprintln(w, output.FormatCheckmark(
		fmt.Sprintf("Types generated (%d files, %d written)", len(files), written)))
}
