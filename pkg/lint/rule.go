// Package lint provides the rule model, engine, and correction pipeline for stylint.
package lint

import (
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/directive"
	"github.com/yaklabco/stylint/pkg/fix"
)

// Description is the static metadata of a rule.
type Description struct {
	// ID is the unique identifier, as used in configuration and directives
	// (e.g., "colon").
	ID string

	// Name is the human-readable name of the rule.
	Name string

	// Summary describes what the rule checks.
	Summary string

	// OptIn rules are disabled unless configuration enables them.
	OptIn bool

	// DefaultSeverity is the severity used when configuration sets none.
	DefaultSeverity config.Severity

	// Tags are categorization tags (e.g., "style", "idiomatic").
	Tags []string

	// RequiresSyntax marks rules that depend on tokens or the structure
	// tree. They are skipped when the classifier fails for a file.
	RequiresSyntax bool
}

// Rule is implemented by every lint rule.
type Rule interface {
	// Describe returns the rule's metadata.
	Describe() Description

	// Detect reports violations for the file in ctx.
	//
	// Rules must:
	//   - Return a violation for each occurrence found.
	//   - Treat unresolvable offsets as "no violation".
	//   - Return error only for internal failures, not violations.
	Detect(ctx *RuleContext) ([]Violation, error)
}

// Corrector is implemented by rules that can fix their own violations.
//
// Correct is only called for violations that survived directive filtering,
// always against the same snapshot they were detected on.
type Corrector interface {
	Rule

	// Correct returns the replacement for v, or false when v cannot be
	// fixed automatically.
	Correct(ctx *RuleContext, v Violation) (fix.Replacement, bool)
}

// DirectiveAuditor is implemented by rules that inspect disable directives
// after every other rule has run on a file.
type DirectiveAuditor interface {
	Rule

	// Audit reports on directives that suppressed nothing. ran reports
	// whether a rule ID was executed for this file.
	Audit(ctx *RuleContext, unused []directive.Directive, ran func(ruleID string) bool) []Violation
}

// CanCorrect reports whether rule implements Corrector.
func CanCorrect(rule Rule) bool {
	_, ok := rule.(Corrector)
	return ok
}
