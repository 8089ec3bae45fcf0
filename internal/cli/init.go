package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/fsutil"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

const defaultConfigName = ".stylint.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new stylint configuration file",
		Long: `Create a new .stylint.yml configuration file in the current directory.

The minimal template lists the common settings as comments. --full writes
every rule with its description, and --pack writes the rule settings of a
named pack (` + strings.Join(rules.PackNames(), ", ") + `).

Examples:
  stylint init                     Create minimal .stylint.yml
  stylint init --full              Document every rule
  stylint init --pack strict       Start from the strict pack
  stylint init --output ci.yml     Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.pack, "pack", "", "Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .stylint.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{ReportTimestamp: false})
	logger.SetLevel(log.InfoLevel)

	if flags.pack != "" && flags.full {
		return withExitCode(ExitInvalidUsage, errors.New("--pack and --full cannot be combined"))
	}

	content, err := initContent(flags)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultConfigName
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withExitCode(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if _, err := fsutil.WriteAtomicIfChanged(cmd.Context(), absPath, content, configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.pack != "" {
		logger.Info("rule settings taken from pack", logging.FieldName, flags.pack)
	}
	logger.Info("run 'stylint rules' to see all available rules")

	return nil
}

func initContent(flags *initFlags) ([]byte, error) {
	if flags.pack == "" {
		opts := config.TemplateOptions{Full: flags.full}
		return config.GenerateTemplate(opts, lint.RuleInfos(rules.NewRegistry())), nil
	}

	pack := rules.PackByName(flags.pack)
	if pack == nil {
		return nil, fmt.Errorf("unknown pack %q; available packs: %s",
			flags.pack, strings.Join(rules.PackNames(), ", "))
	}

	cfg := config.NewConfig()
	pack.Apply(cfg)

	header := config.DefaultTemplateHeader() + "\n# Pack: " + pack.Name + " (" + pack.Description + ")"
	content, err := cfg.ToYAMLWithHeader(header)
	if err != nil {
		return nil, fmt.Errorf("generate config: %w", err)
	}
	return content, nil
}
