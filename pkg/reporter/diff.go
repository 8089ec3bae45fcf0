package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/stylint/internal/ui/pretty"
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/runner"
)

// DiffReporter formats pending corrections as unified diffs in git style.
// It shows output only in dry-run mode, where the pipeline records a diff.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	color  bool
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		color:  colorEnabled,
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(r.relativePath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || file.Result.Diff == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		r.writeDiff(file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff prints one file's patch. Hunk lines are styled by kind rather
// than by their first character, so context lines starting with "-" stay
// context.
func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := r.relativePath(diff.Path)

	r.println(r.styles.DiffHeader, fmt.Sprintf("diff --git a/%s b/%s", path, path))
	r.println(r.styles.DiffRemove, "--- a/"+path)
	r.println(r.styles.DiffAdd, "+++ b/"+path)

	for _, hunk := range diff.Hunks {
		r.println(r.styles.DiffHunk, fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				r.println(r.styles.DiffAdd, "+"+line.Content)
			case fix.DiffLineRemove:
				r.println(r.styles.DiffRemove, "-"+line.Content)
			default:
				r.println(r.styles.DiffContext, " "+line.Content)
			}
		}
	}

	fmt.Fprintln(r.out)
}

// println writes line, styled only when color is on: lipgloss expands tabs,
// which would corrupt a patch meant for git apply.
func (r *DiffReporter) println(style lipgloss.Style, line string) {
	if r.color {
		line = style.Render(line)
	}
	fmt.Fprintln(r.out, line)
}

// relativePath shows path relative to the working directory, or the process
// directory when none is set.
func (r *DiffReporter) relativePath(path string) string {
	workDir := r.opts.WorkingDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return path
		}
		workDir = cwd
	}
	return displayPath(path, workDir)
}

// writeSummary prints a git --stat style footer.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{plural(files, "file") + " changed"}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(additions, "insertion")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(deletions, "deletion")+"(-)"))
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
