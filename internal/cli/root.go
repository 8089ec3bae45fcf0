// Package cli provides the Cobra command structure for stylint.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootFlags struct {
	debug      bool
	logFormat  string
	configPath string
	color      string
}

// NewRootCommand creates the root stylint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "stylint",
		Short: "A fast, self-correcting style checker for Swift",
		Long: `stylint checks Swift sources against a set of style rules.

Rules look at the text of a file, the syntax kind of every token, and the
declaration structure. Many violations can be corrected in place; corrections
are re-checked until the file is stable, and every write is atomic with an
optional backup.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if flags.debug {
				level = "debug"
			}
			logger := logging.NewWithOptions(logging.Options{
				Level:  level,
				Format: flags.logFormat,
				Writer: cmd.ErrOrStderr(),
			})
			logging.SetDefault(logger)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "log format: text, json, logfmt")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(flags.color).ApplyToCommand(rootCmd)

	return rootCmd
}
