// Package reporter writes lint results in the supported output formats.
package reporter

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/stylint/pkg/analysis"
	"github.com/yaklabco/stylint/pkg/runner"
)

// Reporter writes a formatted run result and returns how many violations
// it reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// analyzed adapts a Renderer, which works on an analysis.Report, to the
// Reporter interface.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*analyzed)(nil)

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Violations, nil
}

func analyze(renderer Renderer, opts Options) *analyzed {
	a := &analyzed{renderer: renderer, opts: analysis.DefaultOptions()}
	a.opts.WorkingDir = opts.WorkingDir
	if sortBy := analysis.SortField(opts.SortBy); sortBy.IsValid() {
		a.opts.SortBy = sortBy
	}
	return a
}

// New returns the Reporter for opts.Format. An empty format means text and
// a nil writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch cmp.Or(opts.Format, FormatText) {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatXcode:
		return NewXcodeReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatJSON:
		return analyze(NewJSONRenderer(opts), opts), nil
	case FormatSARIF:
		return analyze(NewSARIFRenderer(opts), opts), nil
	case FormatSummary:
		return analyze(NewSummaryRenderer(opts), opts), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", opts.Format)
}

// displayPath shows path relative to workDir when it lies inside it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return path
}
