package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
)

const (
	// contextIndent aligns source context under the violation line.
	contextIndent = "        "

	// tabSpaces matches lipgloss's default tab expansion.
	tabSpaces = "    "
)

// FormatViolation formats a single violation for terminal output.
// path overrides v.Path so callers can show paths relative to the working
// directory.
func (s *Styles) FormatViolation(v *lint.Violation, path string, showContext bool, sourceLine string) string {
	if path == "" {
		path = v.Path
	}

	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		v.Location.Line,
		v.Location.Column,
	)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(v.Severity),
		s.Reason.Render(v.Reason),
		s.RuleID.Render("("+v.RuleID+")"),
	)

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.Location.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning, "":
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under column.
// column is 1-based and counts Unicode scalars. Tabs are expanded the same
// way for the line and the caret padding so the two stay aligned.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(contextIndent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", tabSpaces)) + "\n")

	if column > 0 {
		var pad strings.Builder
		n := 0
		for _, r := range line {
			if n >= column-1 {
				break
			}
			if r == '\t' {
				pad.WriteString(tabSpaces)
			} else {
				pad.WriteByte(' ')
			}
			n++
		}
		if n < column-1 {
			pad.WriteString(strings.Repeat(" ", column-1-n))
		}
		builder.WriteString(contextIndent + pad.String() + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	switch {
	case count == 1:
		header += s.Dim.Render(" (1 violation)")
	case count > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d violations)", count))
	}
	return header
}

// FormatDegradedNote explains that a file was linted without syntax data.
func (s *Styles) FormatDegradedNote(path string, skipped []string) string {
	note := s.Info.Render("note:") + " " + s.FilePath.Render(path) +
		" was linted without a syntax tree"
	if len(skipped) > 0 {
		note += s.Dim.Render(" (skipped " + strings.Join(skipped, ", ") + ")")
	}
	return note + "\n"
}
