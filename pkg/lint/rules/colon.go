package rules

import (
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// ColonID is the ID of ColonRule.
const ColonID = "colon"

// colonPattern captures the character before a misplaced colon and the start
// of the type after it: `a :T`, `a:T`, `a:  T`.
const colonPattern = `(\w)(?:\s+:\s*|:(?:\s{2,}|))([\[\(]*\S)`

// ColonRule checks spacing around type annotation colons.
type ColonRule struct {
	lint.BaseRule
}

// NewColonRule creates a new colon rule.
func NewColonRule() *ColonRule {
	return &ColonRule{
		BaseRule: lint.NewBaseRule(
			ColonID,
			"Colon Spacing",
			"Colons should be next to the identifier when specifying a type",
			"style",
		).WithSyntax(),
	}
}

// Detect reports annotation colons with space before them or with other
// than one space after them. Only matches spanning exactly an identifier and
// a type identifier count, which leaves ternaries, dictionary literals and
// text in comments or strings alone.
func (r *ColonRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	matches, err := ctx.Matcher.Find(colonPattern, match.Options{
		Include: syntax.NewKindSet(syntax.KindIdentifier, syntax.KindTypeIdentifier),
	})
	if err != nil {
		return nil, err
	}

	vs := make([]lint.Violation, 0, len(matches))
	for _, m := range matches {
		gap, ok := colonGap(m)
		if !ok {
			continue
		}
		vs = append(vs, r.Violation(ctx, gap.Offset, gap.Length,
			"Colons should be next to the identifier when specifying a type and followed by one space").Build())
	}
	return vs, nil
}

// Correct rewrites the gap between identifier and type to ": ".
func (r *ColonRule) Correct(_ *lint.RuleContext, v lint.Violation) (fix.Replacement, bool) {
	return fix.NewReplacement(v.Range, ": "), true
}

// colonGap returns the range between the identifier and the type.
func colonGap(m match.Match) (source.ByteRange, bool) {
	before, ok := m.Group(1)
	if !ok {
		return source.ByteRange{}, false
	}
	after, ok := m.Group(2)
	if !ok {
		return source.ByteRange{}, false
	}
	return source.NewByteRange(before.End(), after.Offset), true
}
