package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/stylint/internal/ui/pretty"
	"github.com/yaklabco/stylint/pkg/analysis"
)

const summaryWidth = 90

// summaryColumn is one column of a summary table. The first column is
// left-aligned and may be truncated; the rest are right-aligned numbers.
type summaryColumn struct {
	title string
	width int
}

//nolint:gochecknoglobals // read-only layouts
var (
	ruleColumns = []summaryColumn{{"Rule", 30}, {"Count", 7}, {"Errors", 7}, {"Warnings", 8}, {"Fixable", 8}}
	fileColumns = []summaryColumn{{"File", 60}, {"Count", 7}, {"Errors", 7}, {"Warnings", 8}}
)

// SummaryRenderer prints per-rule and per-file totals instead of individual
// violations.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	for _, fe := range report.Errors {
		fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(fe.Path), r.styles.Error.Render("error: "+fe.Error))
	}

	if !report.Totals.HasIssues() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No violations found"))
		return nil
	}

	if len(report.ByRule) > 0 {
		rows := make([][]string, 0, len(report.ByRule))
		styles := make([]lipgloss.Style, 0, len(report.ByRule))
		for _, rule := range report.ByRule {
			fixable := ""
			if rule.Correctable {
				fixable = "✓"
			}
			rows = append(rows, []string{rule.RuleID, strconv.Itoa(rule.Violations),
				strconv.Itoa(rule.Errors), strconv.Itoa(rule.Warnings), fixable})
			styles = append(styles, r.rowStyle(rule.Errors, rule.Warnings, false))
		}
		r.table("Rules Summary", ruleColumns, rows, styles)
		fmt.Fprintln(r.out)
	}

	if len(report.ByFile) > 0 {
		rows := make([][]string, 0, len(report.ByFile))
		styles := make([]lipgloss.Style, 0, len(report.ByFile))
		for _, file := range report.ByFile {
			rows = append(rows, []string{file.Path, strconv.Itoa(file.Violations),
				strconv.Itoa(file.Errors), strconv.Itoa(file.Warnings)})
			styles = append(styles, r.rowStyle(file.Errors, file.Warnings, file.Degraded))
		}
		r.table("Files Summary", fileColumns, rows, styles)
		fmt.Fprintln(r.out)
	}

	label := r.styles.Bold
	if report.Totals.HasErrors() {
		label = r.styles.Error
	}
	fmt.Fprintln(r.out, label.Render("Total: ")+r.totals(report.Totals))
	return nil
}

func (r *SummaryRenderer) rowStyle(errors, warnings int, degraded bool) lipgloss.Style {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow
	case warnings > 0:
		return r.styles.TableWarnRow
	case degraded:
		return r.styles.Info
	default:
		return lipgloss.NewStyle()
	}
}

// table pads cells before styling them so escape codes do not count
// toward column widths.
func (r *SummaryRenderer) table(title string, cols []summaryColumn, rows [][]string, styles []lipgloss.Style) {
	rule := r.styles.TableSeparator.Render(strings.Repeat("─", summaryWidth))

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = r.styles.TableHeader.Render(cell(col, i, col.title))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, strings.Join(header, " "))
	fmt.Fprintln(r.out, rule)

	for n, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = cell(col, i, row[i])
		}
		cells[0] = styles[n].Render(cells[0])
		if last := len(cells) - 1; cols[last].title == "Fixable" && row[last] != "" {
			cells[last] = r.styles.Success.Render(cells[last])
		}
		fmt.Fprintln(r.out, strings.Join(cells, " "))
	}
}

// cell pads text to the column width. The first column keeps its head
// for rule names and its tail for paths.
func cell(col summaryColumn, index int, text string) string {
	if index > 0 {
		return fmt.Sprintf("%*s", col.width, text)
	}
	if runes := []rune(text); len(runes) > col.width-2 {
		keep := col.width - 3
		if col.title == "File" {
			text = "…" + string(runes[len(runes)-keep:])
		} else {
			text = string(runes[:keep]) + "…"
		}
	}
	return fmt.Sprintf("%-*s", col.width, text)
}

func (r *SummaryRenderer) totals(t analysis.Totals) string {
	line := plural(t.Violations, "violation")

	var bySeverity []string
	if t.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(fmt.Sprintf("%d errors", t.Errors)))
	}
	if t.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(fmt.Sprintf("%d warnings", t.Warnings)))
	}
	if len(bySeverity) > 0 {
		line += " (" + strings.Join(bySeverity, ", ") + ")"
	}
	return line + " in " + plural(t.FilesWithIssues, "file")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
