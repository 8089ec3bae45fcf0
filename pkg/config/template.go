package config

import (
	"bytes"
	"slices"
	"strings"
	"text/template"
)

// commentWrapWidth bounds rule descriptions in full templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule; otherwise the template is a short commented
	// example.
	Full bool

	// IncludeRules limits a full template to these rule IDs.
	IncludeRules []string
}

// RuleInfo describes a rule for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	OptIn       bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# stylint configuration
# See: https://github.com/yaklabco/stylint`
}

const minimalTemplate = `{{ header }}

# Paths to skip (glob patterns)
# excluded:
#   - "Pods/**"
#   - ".build/**"

# Rules that are off by default
# opt_in_rules:
#   - overridden_super_call

# Rules that are on by default
# disabled_rules:
#   - todo

# Rule-specific configuration
# rules:
#   line_length:
#     severity: error
#     options:
#       warning: 120
`

const fullTemplate = `{{ header }}
#
# This template includes all available rules with their default settings.
# Uncomment and modify settings as needed.

# Default severity for rules without one: warning or error
# severity_default: warning

# Paths to lint (glob patterns); empty means everything
included: []

# Paths to skip (glob patterns)
excluded:
  - "Pods/**"
  - ".build/**"
  - "Carthage/**"

# Inline comment commands, e.g. "// stylint:disable:next colon"
directives:
  prefixes: [stylint, swiftlint]
  allow_bare: true

# Backup configuration for auto-fix
backups:
  enabled: true
  mode: sidecar

# Upper bound on correction passes per file
max_fix_passes: 10

# Rule-specific configuration
rules:
{{- range . }}

  # {{ .ID }}: {{ .Name }}
  # {{ wrap .Description }}
{{- with .Tags }}
  # Tags: {{ join . ", " }}
{{- end }}
{{- if .CanFix }}
  # Auto-fix: yes
{{- end }}
{{- if .OptIn }}
  # Opt-in: enable with opt_in_rules or enabled: true
{{- end }}
  {{ .ID }}:
    enabled: {{ not .OptIn }}
    severity: {{ .Severity }}
    # options:
    #   key: value
{{- end }}
`

var templates = template.Must(template.New("minimal").Funcs(template.FuncMap{
	"header": DefaultTemplateHeader,
	"join":   strings.Join,
	"wrap":   func(s string) string { return wrapComment(s, commentWrapWidth) },
}).Parse(minimalTemplate))

func init() {
	template.Must(templates.New("full").Parse(fullTemplate))
}

// GenerateTemplate renders a configuration file template. rules documents
// each rule in a full template, sorted by ID.
func GenerateTemplate(opts TemplateOptions, rules []RuleInfo) []byte {
	name := "minimal"
	if opts.Full {
		name = "full"
		rules = slices.Clone(rules)
		if len(opts.IncludeRules) > 0 {
			rules = slices.DeleteFunc(rules, func(r RuleInfo) bool {
				return !slices.Contains(opts.IncludeRules, r.ID)
			})
		}
		slices.SortFunc(rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, rules); err != nil {
		panic("config template: " + err.Error())
	}
	return buf.Bytes()
}

// wrapComment wraps text at maxWidth, continuing on indented comment lines.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= maxWidth:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n  # ")
}
