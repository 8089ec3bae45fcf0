package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/lint"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	assert.Zero(t, registry.Len())

	registry.Register(newWordRule("zeta", "z"), newWordRule("alpha", "a"))
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, []string{"alpha", "zeta"}, registry.IDs())

	rules := registry.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "alpha", rules[0].Describe().ID)

	rule, ok := registry.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, "zeta", rule.Describe().ID)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_ReplacesSameID(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newWordRule("word", "foo"))
	replacement := newFixRule("word", "bar", "baz")
	registry.Register(replacement)

	assert.Equal(t, 1, registry.Len())
	rule, _ := registry.Get("word")
	assert.True(t, lint.CanCorrect(rule))
}

func TestRuleInfos(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newFixRule("fixable", "a", "b"), newWordRule("plain", "c"))

	infos := lint.RuleInfos(registry)
	require.Len(t, infos, 2)
	assert.Equal(t, "fixable", infos[0].ID)
	assert.True(t, infos[0].CanFix)
	assert.False(t, infos[1].CanFix)
}
