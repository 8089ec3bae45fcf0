package rules

import (
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/structure"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// Rule IDs for the chained call rules.
const (
	FirstWhereID      = "first_where"
	SortedFirstLastID = "sorted_first_last"
)

// callPairRule reports chains such as `xs.filter { ... }.first`, located at
// the start of the first call.
type callPairRule struct {
	lint.BaseRule
	query  structure.CallPairQuery
	reason string
}

func (r *callPairRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	offsets, err := structure.CallPairs(ctx.Matcher, ctx.Tree, r.query)
	if err != nil {
		return nil, err
	}

	vs := make([]lint.Violation, 0, len(offsets))
	for _, offset := range offsets {
		vs = append(vs, r.Violation(ctx, offset, 0, r.reason).Build())
	}
	return vs, nil
}

// FirstWhereRule prefers first(where:) to filter { }.first.
type FirstWhereRule struct {
	callPairRule
}

// NewFirstWhereRule creates a new first_where rule.
func NewFirstWhereRule() *FirstWhereRule {
	return &FirstWhereRule{callPairRule{
		BaseRule: lint.NewBaseRule(
			FirstWhereID,
			"First Where",
			"Prefer using `.first(where:)` over `.filter { }.first` in collections",
			"performance",
		).WithSyntax(),
		query: structure.CallPairQuery{
			Connector:    `[\}\)]\s*\.first\b`,
			Kinds:        syntax.NewKindSet(syntax.KindIdentifier),
			CalleeSuffix: ".filter",
		},
		reason: "Prefer using `.first(where:)` over `.filter { }.first` in collections",
	}}
}

// SortedFirstLastRule prefers min()/max() to sorted().first/last.
type SortedFirstLastRule struct {
	callPairRule
}

// NewSortedFirstLastRule creates a new sorted_first_last rule.
func NewSortedFirstLastRule() *SortedFirstLastRule {
	return &SortedFirstLastRule{callPairRule{
		BaseRule: lint.NewBaseRule(
			SortedFirstLastID,
			"Min or Max over Sorted First or Last",
			"Prefer using `min()` or `max()` over `sorted().first` or `sorted().last`",
			"performance",
		).WithSyntax(),
		query: structure.CallPairQuery{
			Connector:    `[\}\)]\s*\.(?:first|last)\b`,
			Kinds:        syntax.NewKindSet(syntax.KindIdentifier),
			CalleeSuffix: ".sorted",
		},
		reason: "Prefer using `min()` or `max()` over `sorted().first` or `sorted().last`",
	}}
}
