package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// TodoID is the ID of TodoRule.
const TodoID = "todo"

const (
	todoPattern       = `\b(TODO|FIXME)\b:?[ \t]*([^\n*]*)`
	maxTodoMessageLen = 30
)

// TodoRule reports TODO and FIXME markers in comments.
type TodoRule struct {
	lint.BaseRule
}

// NewTodoRule creates a new todo rule.
func NewTodoRule() *TodoRule {
	return &TodoRule{
		BaseRule: lint.NewBaseRule(
			TodoID,
			"Todo",
			"TODOs and FIXMEs should be resolved",
			"lint",
		).WithSyntax(),
	}
}

// Detect reports markers that lie wholly inside one comment or doc comment.
// The same words in code or strings are not reported.
func (r *TodoRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var vs []lint.Violation
	for _, kind := range []syntax.Kind{syntax.KindComment, syntax.KindDocComment} {
		matches, err := ctx.Matcher.Find(todoPattern, match.Options{Include: syntax.NewKindSet(kind)})
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			marker, _ := m.Group(1)
			vs = append(vs, r.Violation(ctx, marker.Offset, marker.Length, todoReason(ctx, m)).Build())
		}
	}
	return vs, nil
}

func todoReason(ctx *lint.RuleContext, m match.Match) string {
	marker, _ := m.Group(1)
	word, _ := ctx.File.Text(marker)
	reason := fmt.Sprintf("%ss should be resolved", word)

	msgRange, ok := m.Group(2)
	if !ok {
		return reason
	}
	msg, _ := ctx.File.Text(msgRange)
	text := strings.TrimSpace(string(msg))
	if text == "" {
		return reason
	}
	if runes := []rune(text); len(runes) > maxTodoMessageLen {
		text = string(runes[:maxTodoMessageLen]) + "..."
	}
	return fmt.Sprintf("%s (%s)", reason, text)
}
