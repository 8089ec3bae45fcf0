package lint

import (
	"slices"

	"github.com/yaklabco/stylint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Description is the rule's metadata.
	Description Description

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for violations from this rule.
	Severity config.Severity

	// AutoFix indicates whether corrections from this rule are applied.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ID returns the rule ID.
func (rr ResolvedRule) ID() string {
	return rr.Description.ID
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration, sorted by ID.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := ResolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// ResolveRule resolves the configuration for a single rule. Precedence,
// lowest first: rule defaults, opt_in_rules/disabled_rules, the rules map,
// CLI enable/disable flags.
func ResolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	desc := rule.Describe()
	rr := ResolvedRule{
		Rule:        rule,
		Description: desc,
		Enabled:     !desc.OptIn,
		Severity:    desc.DefaultSeverity,
		AutoFix:     CanCorrect(rule),
	}
	if !rr.Severity.IsValid() {
		rr.Severity = config.SeverityWarning
	}

	if cfg == nil {
		rr.AutoFix = false
		return rr
	}

	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}

	if slices.Contains(cfg.OptInRules, desc.ID) {
		rr.Enabled = true
	}
	if slices.Contains(cfg.DisabledRules, desc.ID) {
		rr.Enabled = false
	}

	if ruleCfg, ok := cfg.Rules[desc.ID]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rr.Severity = sev
			}
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && CanCorrect(rule)
		}
	}

	if slices.Contains(cfg.EnableRules, desc.ID) {
		rr.Enabled = true
	}
	if slices.Contains(cfg.DisableRules, desc.ID) {
		rr.Enabled = false
	}

	// Apply fix-rules filter from CLI.
	if len(cfg.FixRules) > 0 && !slices.Contains(cfg.FixRules, desc.ID) {
		rr.AutoFix = false
	}

	// Disable auto-fix if --fix is not set.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

// RuleInfos converts registry contents into template metadata.
func RuleInfos(registry *Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		desc := rule.Describe()
		infos = append(infos, config.RuleInfo{
			ID:          desc.ID,
			Name:        desc.Name,
			Description: desc.Summary,
			OptIn:       desc.OptIn,
			Severity:    desc.DefaultSeverity,
			Tags:        desc.Tags,
			CanFix:      CanCorrect(rule),
		})
	}
	return infos
}
