package lint_test

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/yaklabco/stylint/pkg/directive"
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/syntax"
)

var errClassifierBoom = errors.New("boom")

// cleanClassifier classifies nothing and reports no errors.
func cleanClassifier() syntax.Classifier {
	return syntax.ClassifierFunc(func(_ context.Context, _ string, contents []byte) (*syntax.Classification, error) {
		return &syntax.Classification{Tree: syntax.NewBuilder(len(contents)).Build()}, nil
	})
}

// failingClassifier always fails, putting every file in degraded mode.
func failingClassifier() syntax.Classifier {
	return syntax.ClassifierFunc(func(context.Context, string, []byte) (*syntax.Classification, error) {
		return nil, errClassifierBoom
	})
}

// markerClassifier reports syntax errors whenever contents contain marker.
func markerClassifier(marker string) syntax.Classifier {
	return syntax.ClassifierFunc(func(_ context.Context, _ string, contents []byte) (*syntax.Classification, error) {
		return &syntax.Classification{
			Tree:      syntax.NewBuilder(len(contents)).Build(),
			HasErrors: strings.Contains(string(contents), marker),
		}, nil
	})
}

// wordRule flags every literal occurrence of word.
type wordRule struct {
	lint.BaseRule
	word string
	err  error
}

func newWordRule(id, word string) *wordRule {
	return &wordRule{BaseRule: lint.NewBaseRule(id, id, "flags "+word), word: word}
}

func (r *wordRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	if r.err != nil {
		return nil, r.err
	}
	matches, err := ctx.Matcher.Find(regexp.QuoteMeta(r.word), match.Options{})
	if err != nil {
		return nil, err
	}
	vs := make([]lint.Violation, 0, len(matches))
	for _, m := range matches {
		vs = append(vs, r.Violation(ctx, m.Range.Offset, m.Range.Length, "found "+r.word).Build())
	}
	return vs, nil
}

// fixRule replaces every occurrence of word with replacement.
type fixRule struct {
	*wordRule
	replacement string
	shift       int
}

func newFixRule(id, word, replacement string) *fixRule {
	return &fixRule{wordRule: newWordRule(id, word), replacement: replacement}
}

func (r *fixRule) Correct(_ *lint.RuleContext, v lint.Violation) (fix.Replacement, bool) {
	rep := fix.NewReplacement(v.Range, r.replacement)
	rep.StartOffset += r.shift
	rep.EndOffset += r.shift
	return rep, true
}

// syntaxRule needs classifier output and flags nothing.
type syntaxRule struct {
	lint.BaseRule
}

func newSyntaxRule(id string) *syntaxRule {
	return &syntaxRule{BaseRule: lint.NewBaseRule(id, id, "needs tokens").WithSyntax()}
}

func (r *syntaxRule) Detect(*lint.RuleContext) ([]lint.Violation, error) {
	return nil, nil
}

// auditRule reports unused directives naming a rule that ran.
type auditRule struct {
	lint.BaseRule
}

func newAuditRule() *auditRule {
	return &auditRule{BaseRule: lint.NewBaseRule("audit", "Audit", "flags unused directives")}
}

func (r *auditRule) Detect(*lint.RuleContext) ([]lint.Violation, error) {
	return nil, nil
}

func (r *auditRule) Audit(ctx *lint.RuleContext, unused []directive.Directive, ran func(string) bool) []lint.Violation {
	var vs []lint.Violation
	for _, d := range unused {
		for _, id := range d.RuleIDs {
			if ran(id) {
				vs = append(vs, r.Violation(ctx, d.Range.Offset, d.Range.Length, "unused directive for "+id).Build())
			}
		}
	}
	return vs
}

func newEngine(classifier syntax.Classifier, rules ...lint.Rule) *lint.Engine {
	registry := lint.NewRegistry()
	registry.Register(rules...)
	return lint.NewEngine(classifier, registry)
}
