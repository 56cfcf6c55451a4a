// Package cli implements the atp command line tool. Commands are thin
// adapters over the library packages and carry no pipeline semantics of
// their own.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// RootOptions holds the global flags shared by every subcommand.
type RootOptions struct {
	Verbose    int
	ConfigPath string

	cfg Config
}

// NewRootCommand creates the root of the atp CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "atp",
		Short:        "ATP text transformation pipelines",
		Long:         "Compose, run, convert and store ATP text transformation pipelines.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			verbosity := cfg.Log.Verbosity
			if opts.Verbose > verbosity {
				verbosity = opts.Verbose
			}
			var logFile *string
			if cfg.Log.File != "" {
				logFile = &cfg.Log.File
			}
			commonlog.Configure(verbosity, logFile)
			return nil
		},
	}

	cmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v", "increase log verbosity")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.atp.toml)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewTokensCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}
