package rules

import (
	"fmt"

	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// TrailingWhitespaceID is the ID of TrailingWhitespaceRule.
const TrailingWhitespaceID = "trailing_whitespace"

// TrailingWhitespaceRule checks for trailing whitespace on lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			TrailingWhitespaceID,
			"Trailing Whitespace",
			"Lines should not have trailing whitespace",
			"style", "whitespace",
		),
	}
}

// Detect reports the trailing whitespace of each line.
//
// Options:
//   - ignores_empty_lines (false): skip lines that are only whitespace
//   - ignores_comments (true): skip whitespace that ends a comment
//
// Whitespace inside a string literal is content, not style, and is never
// reported.
func (r *TrailingWhitespaceRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	ignoresEmpty := ctx.OptionBool("ignores_empty_lines", false)
	ignoresComments := ctx.OptionBool("ignores_comments", true)

	var vs []lint.Violation
	content := ctx.File.Contents

	for _, line := range ctx.File.Index().Lines() {
		if ctx.Cancelled() {
			return vs, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		start := line.NewlineStart
		for start > line.StartOffset && isBlank(content[start-1]) {
			start--
		}
		if start == line.NewlineStart {
			continue
		}
		if ignoresEmpty && start == line.StartOffset {
			continue
		}

		ws := source.NewByteRange(start, line.NewlineStart)
		if skipTrailing(ctx.Tokens, ws, ignoresComments) {
			continue
		}

		vs = append(vs, r.Violation(ctx, ws.Offset, ws.Length, "Lines should not have trailing whitespace").Build())
	}

	return vs, nil
}

// Correct deletes the trailing whitespace.
func (r *TrailingWhitespaceRule) Correct(_ *lint.RuleContext, v lint.Violation) (fix.Replacement, bool) {
	return fix.Deletion(v.Range), true
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\v'
}

// skipTrailing reports whether the whitespace at ws belongs to a string
// literal, or to a comment when comments are ignored.
func skipTrailing(tokens []syntax.Token, ws source.ByteRange, ignoresComments bool) bool {
	for _, tok := range syntax.TokensOverlapping(tokens, ws) {
		if tok.Kind == syntax.KindString {
			return true
		}
		if ignoresComments && tok.Kind.IsComment() {
			return true
		}
	}
	return false
}
