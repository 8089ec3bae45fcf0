package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylint/internal/configloader"
	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/lint/rules"
	"github.com/yaklabco/stylint/pkg/metrics"
	"github.com/yaklabco/stylint/pkg/reporter"
	"github.com/yaklabco/stylint/pkg/runner"
	"github.com/yaklabco/stylint/pkg/syntax/swift"
)

type lintFlags struct {
	format          string
	include         []string
	exclude         []string
	enable          []string
	disable         []string
	fixRules        []string
	backupMode      string
	strict          bool
	noContext       bool
	compact         bool
	perFile         bool
	sortBy          string
	includeVendored bool
	followSymlinks  bool
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint Swift files",
		Long:  lintLongDescription + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint Swift files for style issues.

By default, lints every .swift file under the current directory, skipping
.build, Pods, Carthage and other dependency trees. Specify paths to lint
specific files or directories.

Examples:
  stylint lint                    # Lint current directory
  stylint lint Sources/           # Lint one directory
  stylint lint App.swift          # Lint single file
  stylint lint --fix              # Lint and correct what can be corrected
  stylint lint --fix --dry-run    # Show the corrected diff without writing
  stylint lint --format xcode     # Xcode build-phase output
  stylint lint --format sarif     # SARIF for code scanning
  stylint lint --strict           # Treat warnings as errors`

// envHelp lists the STYLINT_* overrides, which sit between config files
// and flags in precedence.
func envHelp() string {
	var b strings.Builder
	b.WriteString("\n\nEnvironment (overrides config files, overridden by flags):\n")
	for _, ev := range configloader.EnvVars() {
		fmt.Fprintf(&b, "  %-26s %s\n", ev.Name, ev.Description)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	// Only explicitly set flags reach the merge so env and files still apply.
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
		}
		cfg.Format = config.OutputFormat(format)
	}
	if cmd.Flags().Changed("backup-mode") {
		cfg.Backups.Mode = flags.backupMode
	}
	cfg.Included = flags.include
	cfg.Excluded = flags.exclude
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	registry := rules.NewRegistry()

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     registry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	engine := lint.NewEngine(swift.New(), registry)
	lintRunner := runner.New(lint.NewPipeline(engine))
	if finalCfg.MetricsFile != "" {
		lintRunner.Metrics = metrics.New()
	}

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir
	runOpts.IncludeVendored = flags.includeVendored
	runOpts.FollowSymlinks = flags.followSymlinks

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, errors.Join(errors.New("lint run failed"), err))
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		PerFile:     flags.perFile,
		SortBy:      flags.sortBy,
		WorkingDir:  workDir,
		Rules:       lint.RuleInfos(registry),
		ToolVersion: info.Version,
	})
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if lintRunner.Metrics != nil {
		if err := lintRunner.Metrics.WriteTextfile(finalCfg.MetricsFile); err != nil {
			logger.Warn("write metrics failed", logging.FieldPath, finalCfg.MetricsFile, logging.FieldError, err)
		}
	}

	if exitCode := ExitCodeFromResult(result, flags.strict); exitCode != ExitSuccess {
		return withExitCode(exitCode, ErrLintIssuesFound)
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically correct violations")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "compute corrections without writing them")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, xcode, table, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lint paths matching these globs")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit correction to specific rule IDs")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.backupMode, "backup-mode", "sidecar", "where backups go: sidecar, directory")
	cmd.Flags().StringVar(&cfg.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().StringVar(&flags.sortBy, "sort-by", "count", "order of summary tables: count, alpha, severity")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also lint Pods, Carthage and .build")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
}
