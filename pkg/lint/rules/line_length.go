package rules

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// LineLengthID is the ID of LineLengthRule.
const LineLengthID = "line_length"

// Default thresholds, in characters.
const (
	defaultLineWarning = 120
	defaultLineError   = 200
)

var urlPattern = regexp.MustCompile(`[a-z][a-z0-9+.-]*://\S+`)

// LineLengthRule checks that lines do not exceed a maximum length.
type LineLengthRule struct {
	lint.BaseRule
}

// NewLineLengthRule creates a new line length rule.
func NewLineLengthRule() *LineLengthRule {
	return &LineLengthRule{
		BaseRule: lint.NewBaseRule(
			LineLengthID,
			"Line Length",
			"Lines should not span too many characters",
			"metrics",
		),
	}
}

// Detect reports lines longer than the warning threshold. Lines longer than
// the error threshold are reported as errors.
//
// Options:
//   - warning (120), error (200): thresholds in characters
//   - ignores_comments (false): skip lines made only of comments
//   - ignores_urls (false): do not count URLs towards the length
func (r *LineLengthRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	warning := ctx.OptionInt("warning", defaultLineWarning)
	errorAt := ctx.OptionInt("error", defaultLineError)
	ignoresComments := ctx.OptionBool("ignores_comments", false)
	ignoresURLs := ctx.OptionBool("ignores_urls", false)

	var vs []lint.Violation
	idx := ctx.File.Index()

	for i, line := range idx.Lines() {
		if ctx.Cancelled() {
			return vs, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		text := idx.LineContent(i + 1)
		length := utf8.RuneCount(text)
		if length <= warning {
			continue
		}
		if ignoresURLs {
			length = utf8.RuneCount(urlPattern.ReplaceAll(text, nil))
			if length <= warning {
				continue
			}
		}

		span := source.NewByteRange(line.StartOffset, line.NewlineStart)
		if ignoresComments && onlyComments(ctx.Tokens, span) {
			continue
		}

		threshold, severity := warning, ctx.Severity
		if errorAt > 0 && length > errorAt {
			threshold, severity = errorAt, config.SeverityError
		}
		reason := fmt.Sprintf("Line should be %d characters or less; currently it has %d characters", threshold, length)
		vs = append(vs, r.Violation(ctx, span.Offset, span.Length, reason).WithSeverity(severity).Build())
	}

	return vs, nil
}

// onlyComments reports whether every non-blank byte of span lies in a comment.
func onlyComments(tokens []syntax.Token, span source.ByteRange) bool {
	toks := syntax.TokensOverlapping(tokens, span)
	if len(toks) == 0 {
		return false
	}
	for _, tok := range toks {
		if !tok.Kind.IsComment() {
			return false
		}
	}
	return true
}
