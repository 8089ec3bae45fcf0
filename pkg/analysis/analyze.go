// Package analysis turns a runner result into the grouped views that the
// reporters render.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// Analyze builds a Report from result in one pass over its violations.
// Empty severities count as warnings.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	g := grouping{
		files:     make(map[string]*FileAnalysis),
		rules:     make(map[string]*RuleAnalysis),
		fileRules: make(map[string]set),
		ruleFiles: make(map[string]set),
	}

	for _, file := range result.Files {
		report.Totals.Files++
		path := relativeTo(opts.WorkingDir, file.Path)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{Path: path, Error: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		fa := g.file(path)
		report.Totals.Corrected += len(file.Result.Corrections)
		if len(file.Result.Violations) > 0 {
			report.Totals.FilesWithIssues++
		}
		if file.Result.Degraded() {
			report.Totals.FilesDegraded++
			fa.Degraded = true
		}

		for i := range file.Result.Violations {
			v := &file.Result.Violations[i]
			severity := v.Severity
			if severity == "" {
				severity = config.SeverityWarning
			}
			isError := severity == config.SeverityError
			isWarning := severity == config.SeverityWarning

			ra := g.rule(v.RuleID, v.RuleName)
			g.fileRules[path].add(v.RuleID)
			g.ruleFiles[v.RuleID].add(path)

			report.Totals.Violations++
			fa.Violations++
			ra.Violations++
			if isError {
				report.Totals.Errors++
				fa.Errors++
				ra.Errors++
			}
			if isWarning {
				report.Totals.Warnings++
				fa.Warnings++
				ra.Warnings++
			}
			if v.HasCorrection() {
				report.Totals.Correctable++
				ra.Correctable = true
			}

			if opts.IncludeViolations {
				report.Violations = append(report.Violations, newViolationEntry(path, severity, v))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = g.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = g.byFile(opts)
	}
	return report
}

// relativeTo shows path relative to workDir when both are known.
func relativeTo(workDir, path string) string {
	if workDir == "" {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil {
		return rel
	}
	return path
}

type set map[string]struct{}

func (s set) add(key string) { s[key] = struct{}{} }

func (s set) sorted() []string { return slices.Sorted(maps.Keys(s)) }

type grouping struct {
	files     map[string]*FileAnalysis
	rules     map[string]*RuleAnalysis
	fileRules map[string]set
	ruleFiles map[string]set
}

func (g *grouping) file(path string) *FileAnalysis {
	fa, ok := g.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		g.files[path] = fa
		g.fileRules[path] = set{}
	}
	return fa
}

func (g *grouping) rule(id, name string) *RuleAnalysis {
	ra, ok := g.rules[id]
	if !ok {
		ra = &RuleAnalysis{RuleID: id, RuleName: name}
		g.rules[id] = ra
		g.ruleFiles[id] = set{}
	}
	return ra
}

func (g *grouping) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(g.rules))
	for id, ra := range g.rules {
		ra.Files = g.ruleFiles[id].sorted()
		out = append(out, *ra)
	}
	slices.SortFunc(out, func(a, b RuleAnalysis) int {
		return compareGroups(opts, a.RuleID, b.RuleID, a.Violations, b.Violations, a.Errors, b.Errors)
	})
	return out
}

// byFile lists files with violations, plus degraded files even when clean.
func (g *grouping) byFile(opts Options) []FileAnalysis {
	var out []FileAnalysis
	for path, fa := range g.files {
		if fa.Violations == 0 && !fa.Degraded {
			continue
		}
		fa.Rules = g.fileRules[path].sorted()
		out = append(out, *fa)
	}
	slices.SortFunc(out, func(a, b FileAnalysis) int {
		return compareGroups(opts, a.Path, b.Path, a.Violations, b.Violations, a.Errors, b.Errors)
	})
	return out
}

// compareGroups orders rule or file groups. Alphabetical order ignores
// SortDesc, severity order always puts the most errors first, and count
// order honors SortDesc. Ties fall back to the name.
func compareGroups(opts Options, nameA, nameB string, countA, countB, errorsA, errorsB int) int {
	var c int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		c = cmp.Or(cmp.Compare(errorsB, errorsA), cmp.Compare(countB, countA))
	default:
		c = cmp.Compare(countA, countB)
		if opts.SortDesc {
			c = -c
		}
	}
	return cmp.Or(c, cmp.Compare(nameA, nameB))
}

func newViolationEntry(path string, severity config.Severity, v *lint.Violation) ViolationEntry {
	entry := ViolationEntry{
		FilePath:    path,
		RuleID:      v.RuleID,
		RuleName:    v.RuleName,
		Severity:    string(severity),
		Reason:      v.Reason,
		Line:        v.Location.Line,
		Column:      v.Location.Column,
		Offset:      v.Range.Offset,
		Length:      v.Range.Length,
		Correctable: v.HasCorrection(),
	}
	if c := v.Correction; c != nil {
		entry.Correction = &CorrectionEntry{StartOffset: c.StartOffset, EndOffset: c.EndOffset, NewText: c.NewText}
	}
	return entry
}
