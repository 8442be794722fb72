package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	logLevel   string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "gridpick",
		Short:         "gridpick selects rows from a resource table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a .gridpick.toml (default: ./.gridpick.toml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	pick := newPickCmd(flags)
	cmd.AddCommand(pick)
	cmd.AddCommand(newApplyCmd(flags))
	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newVersionCmd())

	// Bare "gridpick file.yaml" behaves like "gridpick pick file.yaml".
	cmd.Args = pick.Args
	cmd.Flags().AddFlagSet(pick.Flags())
	cmd.RunE = pick.RunE

	return cmd
}
