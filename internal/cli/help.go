package cli

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/stylint/internal/ui/pretty"
)

// flagLine splits a pflag usage line into indent, flag names with their
// value type, and description.
var flagLine = regexp.MustCompile(`^(\s*)(\S.*?)(\s{2,})(\S.*)$`)

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

// HelpFormatter renders Cobra help and usage with the output styles.
// Color is resolved per call from the command's --color flag and
// output writer.
type HelpFormatter struct {
	defaultColor string
}

// NewHelpFormatter creates a help formatter. colorMode is used when the
// command being rendered has no --color flag.
func NewHelpFormatter(colorMode string) *HelpFormatter {
	return &HelpFormatter{defaultColor: colorMode}
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.render(c, usageTemplate)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.render(c, helpTemplate); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(cmd *cobra.Command, text string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(h.colorMode(cmd), cmd.OutOrStdout()))

	tmpl, err := template.New("help").Funcs(template.FuncMap{
		"heading":    styles.SummaryTitle.Render,
		"command":    styles.Bold.Render,
		"subcommand": styles.FilePath.Render,
		"dim":        styles.Dim.Render,
		"flags":      func(fs *pflag.FlagSet) string { return styleFlagUsages(styles, fs.FlagUsages()) },
		"rpad":       func(s string, n int) string { return fmt.Sprintf("%-*s", n, s) },
		"trimRight":  func(s string) string { return strings.TrimRight(s, " \t\n") },
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(cmd.OutOrStdout(), cmd)
}

func (h *HelpFormatter) colorMode(cmd *cobra.Command) string {
	if flag := cmd.Flags().Lookup("color"); flag != nil {
		return flag.Value.String()
	}
	return h.defaultColor
}

// styleFlagUsages colors flag names and dims their value types, leaving
// descriptions plain.
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		names := strings.Fields(m[2])
		for j, name := range names {
			if strings.HasPrefix(name, "-") {
				trimmed := strings.TrimSuffix(name, ",")
				names[j] = styles.RuleID.Render(trimmed) + name[len(trimmed):]
			} else {
				names[j] = styles.Dim.Render(name)
			}
		}
		lines[i] = m[1] + strings.Join(names, " ") + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}
