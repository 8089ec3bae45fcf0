package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylint/internal/ui/pretty"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/source"
)

func TestFormatViolation(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	v := &lint.Violation{
		RuleID:   "colon",
		Reason:   "Colons should be next to the identifier when specifying a type",
		Severity: config.SeverityError,
		Path:     "/abs/Sources/App.swift",
		Location: source.Location{Line: 10, Column: 6},
	}

	got := styles.FormatViolation(v, "", false, "")
	assert.Equal(t,
		"  /abs/Sources/App.swift:10:6  error  Colons should be next to the identifier when specifying a type  (colon)\n",
		got)

	got = styles.FormatViolation(v, "Sources/App.swift", false, "")
	assert.True(t, strings.HasPrefix(got, "  Sources/App.swift:10:6"), got)
}

func TestFormatViolation_WithContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	v := &lint.Violation{
		RuleID:   "colon",
		Reason:   "bad colon",
		Severity: config.SeverityWarning,
		Location: source.Location{Line: 1, Column: 6},
	}

	got := styles.FormatViolation(v, "a.swift", true, "let a : Int")
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "        let a : Int", lines[1])
	assert.Equal(t, "             ^", lines[2])
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name   string
		line   string
		column int
		want   string
	}{
		{name: "no caret", line: "x", column: 0, want: "        x\n"},
		{name: "first column", line: "x", column: 1, want: "        x\n        ^\n"},
		{name: "expands tabs", line: "\t\tx", column: 3, want: "                x\n                ^\n"},
		{name: "counts scalars", line: "é = 1", column: 3, want: "        é = 1\n          ^\n"},
		{name: "past end of line", line: "ab", column: 5, want: "        ab\n            ^\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSourceContext(tt.line, tt.column))
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "warning", styles.FormatSeverity(""))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.swift", styles.FormatFileHeader("a.swift", 0))
	assert.Equal(t, "a.swift (1 violation)", styles.FormatFileHeader("a.swift", 1))
	assert.Equal(t, "a.swift (3 violations)", styles.FormatFileHeader("a.swift", 3))
}

func TestFormatDegradedNote(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t,
		"note: a.swift was linted without a syntax tree (skipped colon, nesting)\n",
		styles.FormatDegradedNote("a.swift", []string{"colon", "nesting"}))
}
