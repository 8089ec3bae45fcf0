package rules

import (
	"github.com/yaklabco/stylint/pkg/directive"
	"github.com/yaklabco/stylint/pkg/lint"
)

// SuperfluousDisableCommandID is the ID of SuperfluousDisableCommandRule.
const SuperfluousDisableCommandID = "superfluous_disable_command"

// SuperfluousDisableCommandRule reports disable directives that suppressed
// nothing.
type SuperfluousDisableCommandRule struct {
	lint.BaseRule
}

// NewSuperfluousDisableCommandRule creates a new superfluous_disable_command rule.
func NewSuperfluousDisableCommandRule() *SuperfluousDisableCommandRule {
	return &SuperfluousDisableCommandRule{
		BaseRule: lint.NewBaseRule(
			SuperfluousDisableCommandID,
			"Superfluous Disable Command",
			"Disable commands are superfluous when the disabled rule would not have triggered a violation in the disabled region",
			"lint",
		),
	}
}

// Detect does nothing; the work happens in Audit once every other rule has run.
func (r *SuperfluousDisableCommandRule) Detect(*lint.RuleContext) ([]lint.Violation, error) {
	return nil, nil
}

// Audit reports each rule named by an unused directive that actually ran.
// Directives naming "all" are left alone, as are rules that were disabled
// or skipped for this file.
func (r *SuperfluousDisableCommandRule) Audit(
	ctx *lint.RuleContext,
	unused []directive.Directive,
	ran func(string) bool,
) []lint.Violation {
	var vs []lint.Violation
	for _, d := range unused {
		if d.All {
			continue
		}
		for _, id := range d.RuleIDs {
			if id == SuperfluousDisableCommandID || !ran(id) {
				continue
			}
			vs = append(vs, r.Violation(ctx, d.Range.Offset, d.Range.Length,
				"Rule '"+id+"' did not trigger a violation in the disabled region; remove the disable command").Build())
		}
	}
	return vs
}
