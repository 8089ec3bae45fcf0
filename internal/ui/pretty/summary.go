package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 violations (8 errors, 4 warnings) in 3 files, 6 correctable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.ViolationsTotal == 0 {
		msg := s.Success.Render("No violations found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
		if stats.CorrectionsApplied > 0 {
			msg += ", " + s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
				stats.CorrectionsApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles)))
		}
		return msg + "\n"
	}

	var parts []string

	word := plural(stats.ViolationsTotal, "violation", "violations")

	var severityParts []string
	if errs := stats.ViolationsBySeverity[config.SeverityError]; errs > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors"))))
	}
	if warns := stats.ViolationsBySeverity[config.SeverityWarning]; warns > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", warns, plural(warns, "warning", "warnings"))))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.ViolationsTotal, word, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.ViolationsTotal, word))
	}

	parts[0] += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	if stats.ViolationsCorrectable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d correctable", stats.ViolationsCorrectable)))
	}

	if stats.CorrectionsApplied > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d corrected in %d %s",
			stats.CorrectionsApplied, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}

	if stats.FilesDegraded > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d degraded", stats.FilesDegraded)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues:   " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files corrected:     " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}
	if stats.FilesDegraded > 0 {
		builder.WriteString("  Files degraded:      " +
			s.Info.Render(strconv.Itoa(stats.FilesDegraded)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:       " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total violations:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.ViolationsTotal)) + "\n")

	errs := stats.ViolationsBySeverity[config.SeverityError]
	warns := stats.ViolationsBySeverity[config.SeverityWarning]
	if errs > 0 {
		builder.WriteString("    Errors:            " + s.Error.Render(strconv.Itoa(errs)) + "\n")
	}
	if warns > 0 {
		builder.WriteString("    Warnings:          " + s.Warning.Render(strconv.Itoa(warns)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case errs > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case warns > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
