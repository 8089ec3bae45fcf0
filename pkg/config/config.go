// Package config defines core configuration types for stylint.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import "fmt"

// Severity represents the severity level of a violation.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IsValid reports whether s is one of the defined severities.
func (s Severity) IsValid() bool {
	return s == SeverityWarning || s == SeverityError
}

// ParseSeverity converts a string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity %q; must be one of: warning, error", s)
	}
	return sev, nil
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// DirectivesConfig controls inline disable/enable comment parsing.
type DirectivesConfig struct {
	// Prefixes are the accepted command prefixes, as in "stylint:disable".
	Prefixes []string `yaml:"prefixes,omitempty"`

	// AllowBare accepts commands without a prefix, as in "disable colon".
	AllowBare *bool `yaml:"allow_bare,omitempty"`
}

// OutputFormat specifies the output format for violations.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatXcode   OutputFormat = "xcode"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Formats returns every supported output format.
func Formats() []OutputFormat {
	return []OutputFormat{FormatText, FormatXcode, FormatTable, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

// DefaultMaxFixPasses bounds the number of correction passes per file.
const DefaultMaxFixPasses = 10

// Config is the root configuration structure for stylint.
type Config struct {
	// SeverityDefault is the severity for rules that don't specify one.
	// Empty means each rule's own default.
	SeverityDefault string `yaml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// OptInRules enables rules that are off by default.
	OptInRules []string `yaml:"opt_in_rules,omitempty"`

	// DisabledRules disables rules that are on by default.
	DisabledRules []string `yaml:"disabled_rules,omitempty"`

	// Included limits linting to paths matching these globs.
	Included []string `yaml:"included,omitempty"`

	// Excluded contains glob patterns for paths to skip.
	Excluded []string `yaml:"excluded,omitempty"`

	// Directives configures inline comment commands.
	Directives DirectivesConfig `yaml:"directives,omitempty"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups"`

	// MaxFixPasses bounds re-detection after corrections. 0 means the default.
	MaxFixPasses int `yaml:"max_fix_passes,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of violations.
	Fix bool `yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`

	// FixRules limits auto-fixing to specific rule IDs.
	FixRules []string `yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-"`

	// MetricsFile is where run metrics are written in Prometheus text format.
	MetricsFile string `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules: make(map[string]RuleConfig),
		Directives: DirectivesConfig{
			Prefixes: []string{"stylint", "swiftlint"},
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		MaxFixPasses: DefaultMaxFixPasses,
		Format:       FormatText,
		Jobs:         0, // 0 means use GOMAXPROCS
	}
}

// AllowBareDirectives reports whether unprefixed directives are honored.
// Defaults to true.
func (c *Config) AllowBareDirectives() bool {
	if c == nil || c.Directives.AllowBare == nil {
		return true
	}
	return *c.Directives.AllowBare
}

// FixPasses returns the effective pass limit.
func (c *Config) FixPasses() int {
	if c == nil || c.MaxFixPasses <= 0 {
		return DefaultMaxFixPasses
	}
	return c.MaxFixPasses
}
