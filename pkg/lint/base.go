package lint

import "github.com/yaklabco/stylint/pkg/config"

// BaseRule provides the metadata half of the Rule interface.
// Embed this in rule implementations and add a Detect method.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
// Use NewBaseRule or the With* helpers.
type BaseRule struct {
	desc Description
}

// NewBaseRule creates a BaseRule with the given properties and a warning
// default severity.
func NewBaseRule(id, name, summary string, tags ...string) BaseRule {
	return BaseRule{
		desc: Description{
			ID:              id,
			Name:            name,
			Summary:         summary,
			DefaultSeverity: config.SeverityWarning,
			Tags:            tags,
		},
	}
}

// WithOptIn marks the rule as disabled by default.
func (r BaseRule) WithOptIn() BaseRule {
	r.desc.OptIn = true
	return r
}

// WithSyntax marks the rule as depending on classifier output.
func (r BaseRule) WithSyntax() BaseRule {
	r.desc.RequiresSyntax = true
	return r
}

// WithSeverity overrides the default severity.
func (r BaseRule) WithSeverity(s config.Severity) BaseRule {
	r.desc.DefaultSeverity = s
	return r
}

// Describe returns the rule's metadata.
func (r *BaseRule) Describe() Description {
	return r.desc
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.desc.ID
}

// Violation starts building a violation of this rule at the given range.
func (r *BaseRule) Violation(ctx *RuleContext, offset, length int, reason string) *ViolationBuilder {
	return NewViolation(ctx, r.desc.ID, offset, length, reason)
}
