package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/syntax/swift"
)

// The remaining tests in this package use a fake lexer; these run the
// default rules over real classifier output.
func TestDefaultRules_SwiftClassifier(t *testing.T) {
	t.Parallel()

	src := "let abc:Int = 1\n" +
		"func f() -> () {}\n" +
		"// TODO: remove\n" +
		"let s = \"a:B\"\n"

	engine := lint.NewEngine(swift.New(), NewRegistry())
	res, err := engine.LintFile(context.Background(), "Test.swift", []byte(src), config.NewConfig())
	require.NoError(t, err)
	require.False(t, res.Degraded())

	byRule := make(map[string][]int)
	for _, v := range res.Violations {
		byRule[v.RuleID] = append(byRule[v.RuleID], v.Location.Line)
	}

	assert.Equal(t, []int{1}, byRule[ColonID])
	assert.Equal(t, []int{2}, byRule[VoidReturnID])
	assert.Equal(t, []int{3}, byRule[TodoID])
	assert.NotContains(t, byRule, TrailingWhitespaceID)
}
