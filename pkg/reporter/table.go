package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yaklabco/stylint/internal/ui/pretty"
	"github.com/yaklabco/stylint/pkg/runner"
)

// defaultTermWidth applies when the writer is not a terminal.
const defaultTermWidth = 100

// TableReporter prints violations as an aligned table, either one table for
// the whole run or one per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a table reporter sized to the output terminal.
func NewTableReporter(opts Options) *TableReporter {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(color)
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, color, terminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		r.summaryLine(r.styles.Success, "No files to check.")
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(r.path(file.Path)),
				r.styles.Error.Render("error: "+file.Error.Error()))
		}
	}

	total := result.Stats.ViolationsTotal
	if total == 0 {
		r.summaryLine(r.styles.Success, "All files passed!")
		r.summaryLine(r.styles.Dim, fmt.Sprintf("%d files checked", result.Stats.FilesProcessed))
		return 0, nil
	}

	if r.opts.PerFile {
		for _, file := range result.Files {
			if table := r.formatter.FormatFileTable(file); table != "" {
				fmt.Fprintf(r.bw, "\n%s\n%s", r.styles.Bold.Render(r.path(file.Path)), table)
			}
		}
		if r.opts.ShowSummary {
			fmt.Fprintf(r.bw, "\n%s\n%s\n",
				r.styles.TableSeparator.Render(strings.Repeat("═", defaultTermWidth-20)),
				r.styles.Bold.Render("Overall Summary"))
		}
	} else {
		fmt.Fprint(r.bw, r.formatter.FormatTable(result, r.path))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats))
		if result.Stats.ViolationsCorrectable > 0 {
			fmt.Fprintf(r.bw, "\n%s\n", r.styles.Dim.Render("Run with --fix to correct the violations marked +"))
		}
	}
	return total, nil
}

func (r *TableReporter) path(p string) string {
	return displayPath(p, r.opts.WorkingDir)
}

func (r *TableReporter) summaryLine(style lipgloss.Style, text string) {
	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, style.Render(text))
	}
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
