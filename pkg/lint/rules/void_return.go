package rules

import (
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// VoidReturnID is the ID of VoidReturnRule.
const VoidReturnID = "void_return"

const (
	voidReturnPattern = `->\s*\(\s*\)`
	// A function type returning a function is left to the reader.
	curriedVoidPattern = `->\s*\(\s*\)\s*->`
)

// VoidReturnRule prefers "-> Void" to "-> ()".
type VoidReturnRule struct {
	lint.BaseRule
}

// NewVoidReturnRule creates a new void return rule.
func NewVoidReturnRule() *VoidReturnRule {
	return &VoidReturnRule{
		BaseRule: lint.NewBaseRule(
			VoidReturnID,
			"Void Return",
			"Prefer `-> Void` over `-> ()`",
			"style",
		).WithSyntax(),
	}
}

// Detect reports empty-tuple return types outside comments and strings.
func (r *VoidReturnRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	matches, err := ctx.Matcher.FindExcluding(voidReturnPattern, curriedVoidPattern,
		match.Options{Exclude: syntax.CommentAndStringKinds()})
	if err != nil {
		return nil, err
	}

	vs := make([]lint.Violation, 0, len(matches))
	for _, m := range matches {
		vs = append(vs, r.Violation(ctx, m.Range.Offset, m.Range.Length, "Prefer `-> Void` over `-> ()`").Build())
	}
	return vs, nil
}

// Correct replaces the arrow and empty tuple with "-> Void".
func (r *VoidReturnRule) Correct(_ *lint.RuleContext, v lint.Violation) (fix.Replacement, bool) {
	return fix.NewReplacement(v.Range, "-> Void"), true
}
