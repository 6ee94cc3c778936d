package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/extforge/cli/internal/cmdtypes"
	"github.com/extforge/cli/internal/config"
	oerrors "github.com/extforge/cli/internal/errors"
	"github.com/extforge/cli/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet [root]",
		Short: "Validate the settings file",
		Long: `Validate extforge.yaml against the settings schema.

Checks performed:
  1. Settings file exists at the resolved path
  2. Settings file is valid YAML
  3. Every key is known and every value has the expected type

The settings path is resolved using precedence:
  --config flag > EXTFORGE_CONFIG env > <root>/extforge.yaml

Examples:
  # Validate the settings of the current project
  extforge config vet

  # Validate a specific settings file
  extforge config vet --config ./configs/extforge.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runConfigVet(c.OutOrStdout(), cfg, projectRoot(args))
		},
	}
}

func runConfigVet(w io.Writer, cfg *cmdtypes.GlobalConfig, root string) error {
	path, err := config.ConfigFilePath(root, cfg.ConfigFile)
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}

	output.Debug("validating settings", "path", path)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}
	if !exists {
		return cmdtypes.ExitErrorFrom(oerrors.NewNotFoundError(
			"settings file not found",
			path,
			"Run 'extforge config init' to create a default settings file.",
		), false)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return cmdtypes.ExitErrorFrom(err, false)
	}

	if err := validator.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				output.Error("invalid setting", "field", ve.Field, "error", ve.Message)
			}
			return cmdtypes.ExitErrorFrom(fmt.Errorf("%s: %w", path, err), true)
		}
		return cmdtypes.ExitErrorFrom(err, false)
	}

	fmt.Fprintln(w, output.FormatCheckmark("Settings are valid: "+output.StyleNoun.Render(path)))
	return nil
}
