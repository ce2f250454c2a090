// Package cli provides the command-line interface for LeapGraph.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/leapgraph/internal/cli/commands"
	"github.com/leapstack-labs/leapgraph/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapgraph",
		Short: "LeapGraph - Schema Evolution Analyzer",
		Long: `LeapGraph models GraphQL schemas from introspection, renders them as SDL,
and compares snapshots to classify breaking and non-breaking changes with a
compatibility score.

Snapshots are stored locally so schema evolution can be tracked across
versions and gated in CI.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leapgraph.yaml)")
	rootCmd.PersistentFlags().String("state", "", "Path to snapshot database")
	rootCmd.PersistentFlags().String("severity", "", "Minimum severity to report: minor, major, critical")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: auto, table, markdown, json, yaml")
	rootCmd.PersistentFlags().StringSlice("custom-scalars", nil, "Additional scalar type names")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewFetchCommand(),
		commands.NewSnapshotsCommand(),
		commands.NewRenderCommand(),
		commands.NewDiffCommand(),
		commands.NewEvolutionCommand(),
		commands.NewCheckCommand(),
		commands.NewVersionCommand(Version, BuildDate, GitCommit),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
