package rules

import "github.com/yaklabco/stylint/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .stylint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "default", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig

	// OptInRules lists opt-in rules the pack turns on.
	OptInRules []string
}

// DefaultPack enables every rule that is not opt-in at its default severity.
func DefaultPack() Pack {
	return Pack{
		Name:        "default",
		Description: "Every default rule at its default severity",
		Rules: map[string]config.RuleConfig{
			TrailingWhitespaceID:        enabled("warning"),
			LineLengthID:                enabled("warning"),
			ColonID:                     enabled("warning"),
			VoidReturnID:                enabled("warning"),
			TodoID:                      enabled("warning"),
			FirstWhereID:                enabled("warning"),
			SortedFirstLastID:           enabled("warning"),
			NestingID:                   enabled("warning"),
			SuperfluousDisableCommandID: enabled("warning"),
		},
	}
}

// StrictPack turns on every rule, opt-in included, as errors.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule as an error, opt-in rules included",
		Rules: map[string]config.RuleConfig{
			TrailingWhitespaceID: enabled("error"),
			// line_length keeps its two thresholds; the lower one stays a warning.
			LineLengthID:                enabled("warning"),
			ColonID:                     enabled("error"),
			VoidReturnID:                enabled("error"),
			TodoID:                      enabled("error"),
			FirstWhereID:                enabled("error"),
			SortedFirstLastID:           enabled("error"),
			NestingID:                   enabled("error"),
			OverriddenSuperCallID:       enabled("error"),
			SuperfluousDisableCommandID: enabled("error"),
		},
		OptInRules: []string{OverriddenSuperCallID},
	}
}

// RelaxedPack keeps layout rules as warnings and disables the rest.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: whitespace and layout warnings only",
		Rules: map[string]config.RuleConfig{
			TrailingWhitespaceID:        enabled("warning"),
			LineLengthID:                enabled("warning"),
			ColonID:                     enabled("warning"),
			VoidReturnID:                disabled(),
			TodoID:                      disabled(),
			FirstWhereID:                disabled(),
			SortedFirstLastID:           disabled(),
			NestingID:                   disabled(),
			SuperfluousDisableCommandID: disabled(),
		},
	}
}

// Packs returns all available rule packs.
func Packs() []Pack {
	return []Pack{
		DefaultPack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Apply merges the pack into cfg. Rule settings from the pack replace any
// existing entry for the same rule.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		cfg.Rules[id] = rc
	}
	for _, id := range p.OptInRules {
		if !containsString(cfg.OptInRules, id) {
			cfg.OptInRules = append(cfg.OptInRules, id)
		}
	}
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}

func disabled() config.RuleConfig {
	enabled := false
	return config.RuleConfig{Enabled: &enabled}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
