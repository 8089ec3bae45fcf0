package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/source"
)

func TestSortViolations(t *testing.T) {
	t.Parallel()

	at := func(ruleID string, offset, length int, reason string) lint.Violation {
		return lint.Violation{RuleID: ruleID, Range: source.ByteRange{Offset: offset, Length: length}, Reason: reason}
	}

	vs := lint.SortViolations([]lint.Violation{
		at("colon", 10, 1, "r"),
		at("todo", 2, 4, "r"),
		at("colon", 2, 4, "r"),
		at("colon", 2, 1, "r"),
		at("colon", 10, 1, "r"),
	})

	assert.Equal(t, []lint.Violation{
		at("colon", 2, 1, "r"),
		at("colon", 2, 4, "r"),
		at("todo", 2, 4, "r"),
		at("colon", 10, 1, "r"),
	}, vs)
}

func TestViolationBuilder(t *testing.T) {
	t.Parallel()

	rc := newContext(t, "let a\nlet é = b\n", nil)
	v := lint.NewViolation(rc, "colon", 12, 1, "reason").WithSeverity(config.SeverityError).Build()

	assert.Equal(t, "a.swift", v.Path)
	assert.Equal(t, 2, v.Location.Line)
	assert.Equal(t, 6, v.Location.Column, "columns count scalars")
	assert.Equal(t, config.SeverityError, v.Severity)
	assert.False(t, v.HasCorrection())
}

func TestViolationBuilder_UnresolvableOffset(t *testing.T) {
	t.Parallel()

	rc := newContext(t, "let a", nil)
	v := lint.NewViolation(rc, "colon", 99, 0, "reason").Build()

	assert.Equal(t, 0, v.Location.Line)
	assert.Equal(t, 99, v.Location.Offset)
}
