package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/runner"
)

// XcodeReporter writes one line per violation in the form Xcode and most
// editors parse as build issues:
//
//	/abs/path/File.swift:12:5: warning: Reason text (rule_id)
type XcodeReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewXcodeReporter creates a new Xcode reporter.
func NewXcodeReporter(opts Options) *XcodeReporter {
	return &XcodeReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *XcodeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := r.absPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s:1:1: error: %v (stylint)\n", path, file.Error)
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for _, v := range file.Result.Violations {
			severity := v.Severity
			if severity == "" {
				severity = config.SeverityWarning
			}
			line, column := v.Location.Line, v.Location.Column
			if line < 1 {
				line, column = 1, 1
			}
			fmt.Fprintf(r.bw, "%s:%d:%d: %s: %s (%s)\n", path, line, column, severity, v.Reason, v.RuleID)
			total++
		}
	}

	return total, nil
}

// absPath resolves path against the working directory; Xcode only links
// absolute paths back to the editor.
func (r *XcodeReporter) absPath(path string) string {
	if filepath.IsAbs(path) || r.opts.WorkingDir == "" {
		return path
	}
	return filepath.Join(r.opts.WorkingDir, path)
}
