package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/lint/rules"
)

type rulesFlags struct {
	format string
	tag    string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	OptIn       bool     `json:"opt_in"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their IDs, descriptions,
default severity, whether they are opt-in, and whether they can correct
their own violations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := filterByTag(lint.RuleInfos(rules.NewRegistry()), flags.tag)

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd, infos)
			case "", "text":
				outputRulesText(cmd, infos)
				return nil
			default:
				return withExitCode(ExitInvalidUsage,
					fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list rules carrying this tag")

	return cmd
}

func filterByTag(infos []config.RuleInfo, tag string) []config.RuleInfo {
	if tag == "" {
		return infos
	}
	return slices.DeleteFunc(infos, func(info config.RuleInfo) bool {
		return !slices.Contains(info.Tags, tag)
	})
}

func outputRulesText(cmd *cobra.Command, infos []config.RuleInfo) {
	logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{ReportTimestamp: false})
	logger.SetLevel(log.InfoLevel)

	if len(infos) == 0 {
		logger.Info("no rules match")
		return
	}

	for _, info := range infos {
		fixable := "-"
		if info.CanFix {
			fixable = "yes"
		}
		id := info.ID
		if info.OptIn {
			id += " (opt-in)"
		}
		logger.Info(id,
			logging.FieldSeverity, info.Severity,
			logging.FieldFixable, fixable,
			"tags", strings.Join(info.Tags, ","),
			logging.FieldDescription, info.Description,
		)
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(cmd *cobra.Command, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			ID:          info.ID,
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			OptIn:       info.OptIn,
			Fixable:     info.CanFix,
			Tags:        info.Tags,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
