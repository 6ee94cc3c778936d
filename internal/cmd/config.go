package cmd

import (
	"github.com/spf13/cobra"

	"github.com/extforge/cli/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Settings file management",
		Long:  `Create and validate the extforge.yaml settings file of a project.`,
	}

	cmd.AddCommand(NewConfigInitCmd(cfg))
	cmd.AddCommand(NewConfigVetCmd(cfg))

	return cmd
}

// projectRoot returns the root argument or the current directory.
func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
