// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/extforge/cli/internal/cmdtypes"
	"github.com/extforge/cli/internal/output"
)

// NewRootCmd creates the root command for the extforge CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "extforge",
		Short: "Browser extension type generator",
		Long: `extforge generates the TypeScript declaration files of a browser extension
project: auto-imported globals, public asset paths, localized message keys,
build-time environment variables, and the project tsconfig.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			initializeGlobals(c, cfg)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfg.ConfigFile, "config", "c", "", "Path to settings file (env: EXTFORGE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.Timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewPrepareCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging from the global flags.
func initializeGlobals(c *cobra.Command, cfg *cmdtypes.GlobalConfig) {
	logCfg := output.LogConfig{
		Verbose: cfg.Verbose,
	}
	// nil means SetupLogging defaults to true
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(cfg.Timestamps)
	}
	output.SetupLogging(logCfg)

	output.Debug("initializing CLI",
		"command", c.CommandPath(),
		"config", cfg.ConfigFile,
	)
}
