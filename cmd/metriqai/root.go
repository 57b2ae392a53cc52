package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metriqai",
		Short: "metriqai - ML benchmark aggregation service",
		Long: `metriqai ingests model and evaluation records from public ML
registries, normalizes noisy model identifiers into canonical families,
and derives summary statistics, metric correlation matrices, and ranked
leaderboards.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", ".metriqai.yaml", "Path to project config file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newFetchCommand())
	cmd.AddCommand(newTopCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
