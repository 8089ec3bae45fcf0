package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/stylint/internal/ui/pretty"
	"github.com/yaklabco/stylint/pkg/runner"
	"github.com/yaklabco/stylint/pkg/source"
)

// TextReporter prints one line per violation, optionally grouped under
// file headers and followed by the offending source line.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (total int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		total += r.writeFile(file)
	}
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

// writeFile prints one file's output and returns its violation count.
func (r *TextReporter) writeFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)
	pr := file.Result

	switch {
	case file.Error != nil:
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
			r.styles.Error.Render("error: "+file.Error.Error()))
		return 0
	case pr == nil || pr.FileResult == nil:
		return 0
	}

	if pr.Degraded() {
		fmt.Fprint(r.bw, r.styles.FormatDegradedNote(path, pr.SkippedRules))
	}
	if len(pr.Violations) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(pr.Violations)))
	}
	for i := range pr.Violations {
		v := &pr.Violations[i]
		fmt.Fprint(r.bw, r.styles.FormatViolation(v, path, r.opts.ShowContext, sourceLine(pr.File, v.Location.Line, r.opts.ShowContext)))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}
	return len(pr.Violations)
}

// sourceLine returns line of file, or "" when context is off.
func sourceLine(file *source.File, line int, want bool) string {
	if !want || file == nil {
		return ""
	}
	return string(file.Index().LineContent(line))
}
