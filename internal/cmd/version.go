package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extforge/cli/internal/cmdtypes"
	"github.com/extforge/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show extforge CLI version information.

Displays:
  - extforge CLI version, commit, and build date
  - Go version
  - CUE SDK version (used to validate settings files)`,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.GetInfo().String())
			return nil
		},
	}
}
