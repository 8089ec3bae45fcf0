package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
)

type optInRule struct {
	*wordRule
}

func newOptInRule(id string) *optInRule {
	r := newWordRule(id, "x")
	r.BaseRule = r.BaseRule.WithOptIn()
	return &optInRule{wordRule: r}
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestResolveRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rule        lint.Rule
		configure   func(cfg *config.Config)
		wantEnabled bool
		wantSev     config.Severity
		wantAutoFix bool
	}{
		{
			name:        "defaults",
			rule:        newFixRule("colon", "a", "b"),
			configure:   func(*config.Config) {},
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "opt-in rule is disabled by default",
			rule:        newOptInRule("nesting"),
			configure:   func(*config.Config) {},
			wantEnabled: false,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "opt_in_rules enables",
			rule:        newOptInRule("nesting"),
			configure:   func(cfg *config.Config) { cfg.OptInRules = []string{"nesting"} },
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "disabled_rules disables",
			rule:        newWordRule("todo", "x"),
			configure:   func(cfg *config.Config) { cfg.DisabledRules = []string{"todo"} },
			wantEnabled: false,
			wantSev:     config.SeverityWarning,
		},
		{
			name: "rules map overrides lists",
			rule: newWordRule("todo", "x"),
			configure: func(cfg *config.Config) {
				cfg.DisabledRules = []string{"todo"}
				cfg.Rules = map[string]config.RuleConfig{"todo": {Enabled: boolPtr(true), Severity: strPtr("error")}}
			},
			wantEnabled: true,
			wantSev:     config.SeverityError,
		},
		{
			name: "invalid severity is ignored",
			rule: newWordRule("todo", "x"),
			configure: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{"todo": {Severity: strPtr("info")}}
			},
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "severity default applies to all rules",
			rule:        newWordRule("todo", "x"),
			configure:   func(cfg *config.Config) { cfg.SeverityDefault = "error" },
			wantEnabled: true,
			wantSev:     config.SeverityError,
		},
		{
			name: "CLI disable wins over config",
			rule: newWordRule("todo", "x"),
			configure: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{"todo": {Enabled: boolPtr(true)}}
				cfg.DisableRules = []string{"todo"}
			},
			wantEnabled: false,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "fix enables auto-fix for correctors",
			rule:        newFixRule("colon", "a", "b"),
			configure:   func(cfg *config.Config) { cfg.Fix = true },
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
			wantAutoFix: true,
		},
		{
			name: "auto_fix false keeps rule reporting only",
			rule: newFixRule("colon", "a", "b"),
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.Rules = map[string]config.RuleConfig{"colon": {AutoFix: boolPtr(false)}}
			},
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
		{
			name:        "non-correctors never auto-fix",
			rule:        newWordRule("todo", "x"),
			configure:   func(cfg *config.Config) { cfg.Fix = true },
			wantEnabled: true,
			wantSev:     config.SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.configure(cfg)

			rr := lint.ResolveRule(tt.rule, cfg)
			assert.Equal(t, tt.wantEnabled, rr.Enabled, "enabled")
			assert.Equal(t, tt.wantSev, rr.Severity, "severity")
			assert.Equal(t, tt.wantAutoFix, rr.AutoFix, "auto-fix")
		})
	}
}

func TestResolveRule_NilConfig(t *testing.T) {
	t.Parallel()

	rr := lint.ResolveRule(newFixRule("colon", "a", "b"), nil)
	assert.True(t, rr.Enabled)
	assert.False(t, rr.AutoFix)
}

func TestResolveRules_OnlyEnabled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newWordRule("b", "x"), newOptInRule("a"), newWordRule("c", "x"))

	var ids []string
	for _, rr := range lint.ResolveRules(registry, config.NewConfig()) {
		ids = append(ids, rr.ID())
	}
	assert.Equal(t, []string{"b", "c"}, ids)
}
