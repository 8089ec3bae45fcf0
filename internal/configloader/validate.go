package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/fsutil"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/runner"
)

// ValidationError is one configuration problem. Field is a dotted path
// such as "rules.colon.severity"; FilePath is set when the source file is
// known.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult collects errors, which stop loading, and warnings such
// as unknown rule IDs.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Rule IDs are
// checked against registry; a nil registry skips those checks.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.addError("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: warning, error", cfg.SeverityDefault)
	}

	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: %s", cfg.Format, formatNames())
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.MaxFixPasses < 0 {
		result.addError("max_fix_passes", cfg.MaxFixPasses, "max_fix_passes must be >= 0 (0 means %d)", config.DefaultMaxFixPasses)
	}

	if cfg.Backups.Mode != "" && !IsValidBackupMode(cfg.Backups.Mode) {
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, directory, none", cfg.Backups.Mode)
	}

	for i, prefix := range cfg.Directives.Prefixes {
		if prefix == "" || strings.ContainsAny(prefix, ": \t") {
			result.addError(fmt.Sprintf("directives.prefixes[%d]", i), prefix,
				"invalid directive prefix %q; must be a single word without ':'", prefix)
		}
	}

	validateRules(cfg, registry, result)
	validateGlobs("included", cfg.Included, result)
	validateGlobs("excluded", cfg.Excluded, result)

	return result
}

// validateRules checks rule configurations and rule lists.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	ids := make([]string, 0, len(cfg.Rules))
	for id := range cfg.Rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, ruleID := range ids {
		ruleCfg := cfg.Rules[ruleID]
		if registry != nil {
			if _, exists := registry.Get(ruleID); !exists {
				result.addWarning("rules."+ruleID, ruleID, "unknown rule %q; it will be ignored", ruleID)
			}
		}
		if ruleCfg.Severity != nil && !IsValidSeverity(*ruleCfg.Severity) {
			result.addError("rules."+ruleID+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: warning, error", *ruleCfg.Severity)
		}
	}

	if registry == nil {
		return
	}

	lists := []struct {
		field string
		ids   []string
	}{
		{"opt_in_rules", cfg.OptInRules},
		{"disabled_rules", cfg.DisabledRules},
		{"enable", cfg.EnableRules},
		{"disable", cfg.DisableRules},
		{"fix_rules", cfg.FixRules},
	}
	for _, list := range lists {
		for _, id := range list.ids {
			if _, exists := registry.Get(id); !exists {
				result.addWarning(list.field, id, "unknown rule %q; it will be ignored", id)
			}
		}
	}

	for _, id := range cfg.OptInRules {
		if rule, exists := registry.Get(id); exists && !rule.Describe().OptIn {
			result.addWarning("opt_in_rules", id, "rule %q is enabled by default; listing it has no effect", id)
		}
	}
}

// validateGlobs compiles each pattern the way discovery will.
func validateGlobs(field string, patterns []string, result *ValidationResult) {
	for i, pattern := range patterns {
		if _, err := runner.CompileGlobs([]string{pattern}); err != nil {
			result.addError(fmt.Sprintf("%s[%d]", field, i), pattern, "%v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return slices.Contains(config.Formats(), f)
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return slices.Contains(fsutil.BackupModes(), fsutil.BackupMode(mode))
}

func formatNames() string {
	formats := config.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
