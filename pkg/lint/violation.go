package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/source"
)

// Violation is one reported instance of a rule firing at a location.
type Violation struct {
	// RuleID is the identifier of the rule that produced this violation.
	RuleID string

	// RuleName is the human-readable name of the rule.
	RuleName string

	// Severity is the resolved severity.
	Severity config.Severity

	// Path is the path of the file containing the violation.
	Path string

	// Range is the byte range the violation covers. It may be empty.
	Range source.ByteRange

	// Location is the 1-based line/column of Range.Offset. Line is 0 when
	// the offset does not resolve.
	Location source.Location

	// Reason is the human-readable description of the issue.
	Reason string

	// Correction is the replacement that fixes this violation, if any.
	// It is filled in by the engine for correctable rules.
	Correction *fix.Replacement
}

// HasCorrection returns true if a correction is attached.
func (v *Violation) HasCorrection() bool {
	return v.Correction != nil
}

// compareViolations orders violations by position, then rule, then reason.
func compareViolations(a, b Violation) int {
	if c := cmp.Compare(a.Range.Offset, b.Range.Offset); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Range.Length, b.Range.Length); c != 0 {
		return c
	}
	if c := cmp.Compare(a.RuleID, b.RuleID); c != 0 {
		return c
	}
	return cmp.Compare(a.Reason, b.Reason)
}

// SortViolations sorts violations by position and removes duplicates:
// two violations of the same rule with the same range and reason are
// reported once.
func SortViolations(vs []Violation) []Violation {
	slices.SortStableFunc(vs, compareViolations)
	return slices.CompactFunc(vs, func(a, b Violation) bool {
		return compareViolations(a, b) == 0
	})
}

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation for ruleID covering
// [offset, offset+length) in the context's file.
func NewViolation(ctx *RuleContext, ruleID string, offset, length int, reason string) *ViolationBuilder {
	b := &ViolationBuilder{
		v: Violation{
			RuleID: ruleID,
			Range:  source.ByteRange{Offset: offset, Length: length},
			Reason: reason,
		},
	}
	if ctx != nil && ctx.File != nil {
		b.v.Path = ctx.File.Path
		b.v.Location = ctx.locate(offset)
		b.v.Severity = ctx.Severity
	}
	return b
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}
