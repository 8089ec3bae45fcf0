package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/runner"
)

// Table formatting constants.
const (
	fixableSymbol      = "+"
	tablePadding       = 2
	fixableColumnWidth = 2 // leading space plus the marker
	minFileWidth       = 20
	minLocWidth        = 8
	minReasonWidth     = 35
	minRuleWidth       = 8
	heavySeparator     = "="
	lightSeparator     = "-"
	defaultTermWidth   = 100
)

// TableRow represents a single row in the violation table.
type TableRow struct {
	File        string
	Location    string
	Reason      string
	RuleID      string
	Severity    config.Severity
	Correctable bool
}

// ViolationToTableRow converts a lint violation to a table row.
func ViolationToTableRow(path string, v *lint.Violation) TableRow {
	return TableRow{
		File:        path,
		Location:    strconv.Itoa(v.Location.Line) + ":" + strconv.Itoa(v.Location.Column),
		Reason:      v.Reason,
		RuleID:      v.RuleID,
		Severity:    v.Severity,
		Correctable: v.HasCorrection(),
	}
}

type columnWidths struct {
	file   int // 0 when the FILE column is hidden
	loc    int
	reason int
	rule   int
}

func (w columnWidths) total() int {
	columns := 3
	total := w.loc + w.reason + w.rule
	if w.file > 0 {
		columns++
		total += w.file
	}
	return total + tablePadding*columns + fixableColumnWidth
}

// TableFormatter formats violations as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable formats every file's violations in one table, grouped by file.
// display maps a result path to the path shown in the FILE column.
func (t *TableFormatter) FormatTable(result *runner.Result, display func(string) string) string {
	if result == nil {
		return ""
	}

	var groups [][]TableRow
	for _, file := range result.Files {
		rows := fileRows(file, display)
		if len(rows) > 0 {
			groups = append(groups, rows)
		}
	}
	if len(groups) == 0 {
		return ""
	}

	widths := t.widths(groups, true)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	for i, group := range groups {
		if i > 0 {
			builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.formatRow(row, widths) + "\n")
		}
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

// FormatFileTable formats a single file's violations without a FILE column.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	rows := fileRows(file, nil)
	if len(rows) == 0 {
		return ""
	}

	widths := t.widths([][]TableRow{rows}, false)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatFileSummary(rows) + "\n")

	return builder.String()
}

func fileRows(file runner.FileOutcome, display func(string) string) []TableRow {
	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Violations) == 0 {
		return nil
	}
	path := file.Path
	if display != nil {
		path = display(path)
	}
	rows := make([]TableRow, 0, len(file.Result.Violations))
	for i := range file.Result.Violations {
		rows = append(rows, ViolationToTableRow(path, &file.Result.Violations[i]))
	}
	return rows
}

// widths sizes columns to their content, then shrinks the reason column and
// after it the file column until the table fits the terminal.
func (t *TableFormatter) widths(groups [][]TableRow, withFile bool) columnWidths {
	widths := columnWidths{loc: minLocWidth, reason: minReasonWidth, rule: minRuleWidth}
	if withFile {
		widths.file = minFileWidth
	}

	for _, group := range groups {
		for _, row := range group {
			if withFile {
				widths.file = max(widths.file, len(row.File))
			}
			widths.loc = max(widths.loc, len(row.Location))
			widths.reason = max(widths.reason, len(row.Reason))
			widths.rule = max(widths.rule, len(row.RuleID))
		}
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.reason = max(minReasonWidth, widths.reason-excess)
	}
	if excess := widths.total() - t.termWidth; excess > 0 && withFile {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	var header string
	if widths.file > 0 {
		header = fmt.Sprintf(" %-*s  ", widths.file, "FILE")
	} else {
		header = " "
	}
	header += fmt.Sprintf("%-*s  %-*s  %-*s   ",
		widths.loc, "LOC",
		widths.reason, "REASON",
		widths.rule, "RULE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	fixable := " "
	if row.Correctable {
		fixable = t.styles.TableFixable.Render(fixableSymbol)
	}

	var content string
	if widths.file > 0 {
		content = fmt.Sprintf(" %-*s  ", widths.file, truncateFilePath(row.File, widths.file))
	} else {
		content = " "
	}
	content += fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		widths.loc, truncateString(row.Location, widths.loc),
		widths.reason, truncateString(row.Reason, widths.reason),
		widths.rule, truncateString(row.RuleID, widths.rule),
		fixable,
	)

	return t.rowStyle(row.Severity).Render(content)
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatFileSummary(rows []TableRow) string {
	var errs, warns, correctable int
	for _, row := range rows {
		switch row.Severity {
		case config.SeverityError:
			errs++
		case config.SeverityWarning:
			warns++
		}
		if row.Correctable {
			correctable++
		}
	}

	var parts []string
	if errs > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", errs)))
	}
	if warns > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warns)))
	}
	if correctable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d correctable", correctable)))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: " + fixableSymbol + " = correctable")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = correctable",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableFixable.Render(fixableSymbol)))
}

// FormatTableSummary formats the closing line of table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d files checked", stats.FilesProcessed)}

	if errs := stats.ViolationsBySeverity[config.SeverityError]; errs > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", errs)))
	}
	if warns := stats.ViolationsBySeverity[config.SeverityWarning]; warns > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warns)))
	}
	if stats.ViolationsCorrectable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d correctable", stats.ViolationsCorrectable)))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath keeps the end of a path, where the file name is.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
