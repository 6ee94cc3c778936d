package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/extforge/cli/internal/cmdtypes"
	"github.com/extforge/cli/internal/config"
	oerrors "github.com/extforge/cli/internal/errors"
	"github.com/extforge/cli/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [root]",
		Short: "Create a default settings file",
		Long: `Create extforge.yaml with the default settings.

The settings include:
  - Source, public, entrypoints, and output directories
  - Target browser and manifest version
  - Auto-import directories

Examples:
  # Create extforge.yaml in the current directory
  extforge config init

  # Overwrite an existing settings file
  extforge config init ./my-extension --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigInit(c.OutOrStdout(), cfg, projectRoot(args), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing settings file")

	return cmd
}

func runConfigInit(w io.Writer, cfg *cmdtypes.GlobalConfig, root string, force bool) error {
	path, err := config.ConfigFilePath(root, cfg.ConfigFile)
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}
	if exists && !force {
		return cmdtypes.ExitErrorFrom(&oerrors.DetailError{
			Type:     "validation failed",
			Message:  "settings file already exists",
			Location: path,
			Hint:     "Use --force to overwrite the existing settings file.",
			Cause:    oerrors.ErrValidation,
		}, false)
	}

	data, err := yaml.Marshal(config.DefaultFile())
	if err != nil {
		return cmdtypes.ExitErrorFrom(fmt.Errorf("encoding settings: %w", err), false)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cmdtypes.ExitErrorFrom(fmt.Errorf("writing settings file: %w", err), false)
	}

	output.Debug("wrote settings file", "path", path)
	fmt.Fprintln(w, output.FormatCheckmark("Settings initialized: "+output.StyleNoun.Render(path)))
	return nil
}
