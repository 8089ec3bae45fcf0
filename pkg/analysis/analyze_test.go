package analysis

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/runner"
	"github.com/yaklabco/stylint/pkg/source"
)

func outcome(path string, vs ...lint.Violation) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:       path,
			FileResult: &lint.FileResult{Violations: vs},
		},
	}
}

func violation(ruleID string, sev config.Severity) lint.Violation {
	return lint.Violation{RuleID: ruleID, RuleName: ruleID, Severity: sev}
}

func correctable(ruleID string, sev config.Severity) lint.Violation {
	v := violation(ruleID, sev)
	v.Correction = &fix.Replacement{StartOffset: 1, EndOffset: 2, NewText: ""}
	return v
}

func TestAnalyze_EmptyResult(t *testing.T) {
	t.Parallel()

	report := Analyze(&runner.Result{}, DefaultOptions())

	require.NotNil(t, report)
	assert.Equal(t, ReportVersion, report.Version)
	assert.Zero(t, report.Totals.Violations)
	assert.Empty(t, report.Violations)
	assert.Empty(t, report.ByFile)
	assert.Empty(t, report.ByRule)

	assert.NotNil(t, Analyze(nil, DefaultOptions()))
}

func TestAnalyze_CountsTotals(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("A.swift",
				violation("colon", config.SeverityError),
				violation("colon", config.SeverityError),
				correctable("trailing_whitespace", config.SeverityWarning)),
			outcome("B.swift", violation("todo", "")),
			outcome("C.swift"),
			{Path: "D.swift", Error: errors.New("permission denied")},
		},
	}
	result.Files[0].Result.Corrections = []lint.Correction{{RuleID: "trailing_whitespace"}}

	report := Analyze(result, DefaultOptions())

	assert.Equal(t, Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Violations:      4,
		Errors:          2,
		Warnings:        2,
		Correctable:     1,
		Corrected:       1,
	}, report.Totals)
	require.Len(t, report.Violations, 4)
	assert.Equal(t, "warning", report.Violations[3].Severity, "empty severity defaults to warning")
	assert.Equal(t, []FileError{{Path: "D.swift", Error: "permission denied"}}, report.Errors)
}

func TestAnalyze_ViolationEntry(t *testing.T) {
	t.Parallel()

	v := correctable("trailing_whitespace", config.SeverityWarning)
	v.Reason = "Lines should not have trailing whitespace"
	v.Location = source.Location{Offset: 12, Line: 2, Column: 4}
	v.Range = source.ByteRange{Offset: 12, Length: 3}

	wd := t.TempDir()
	result := &runner.Result{Files: []runner.FileOutcome{outcome(filepath.Join(wd, "Sources", "App.swift"), v)}}

	opts := DefaultOptions()
	opts.WorkingDir = wd
	report := Analyze(result, opts)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, ViolationEntry{
		FilePath:    filepath.Join("Sources", "App.swift"),
		RuleID:      "trailing_whitespace",
		RuleName:    "trailing_whitespace",
		Severity:    "warning",
		Reason:      "Lines should not have trailing whitespace",
		Line:        2,
		Column:      4,
		Offset:      12,
		Length:      3,
		Correctable: true,
		Correction:  &CorrectionEntry{StartOffset: 1, EndOffset: 2},
	}, report.Violations[0])
}

func TestAnalyze_GroupsByRule(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("A.swift",
				violation("colon", config.SeverityError),
				correctable("trailing_whitespace", config.SeverityWarning)),
			outcome("B.swift", correctable("trailing_whitespace", config.SeverityWarning)),
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByRule, 2)

	assert.Equal(t, "trailing_whitespace", report.ByRule[0].RuleID)
	assert.Equal(t, 2, report.ByRule[0].Violations)
	assert.True(t, report.ByRule[0].Correctable)
	assert.Equal(t, []string{"A.swift", "B.swift"}, report.ByRule[0].Files)

	assert.Equal(t, "colon", report.ByRule[1].RuleID)
	assert.Equal(t, 1, report.ByRule[1].Errors)
	assert.False(t, report.ByRule[1].Correctable)
}

func TestAnalyze_GroupsByFile(t *testing.T) {
	t.Parallel()

	degraded := outcome("Broken.swift")
	degraded.Result.ClassifierErr = errors.New("parser unavailable")

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("A.swift", violation("colon", config.SeverityError)),
			outcome("B.swift",
				violation("colon", config.SeverityError),
				violation("todo", config.SeverityWarning),
				violation("line_length", config.SeverityWarning)),
			outcome("Clean.swift"),
			degraded,
		},
	}

	report := Analyze(result, DefaultOptions())

	require.Len(t, report.ByFile, 3)

	assert.Equal(t, "B.swift", report.ByFile[0].Path)
	assert.Equal(t, 3, report.ByFile[0].Violations)
	assert.Equal(t, 1, report.ByFile[0].Errors)
	assert.Equal(t, 2, report.ByFile[0].Warnings)
	assert.Equal(t, []string{"colon", "line_length", "todo"}, report.ByFile[0].Rules)

	assert.Equal(t, "A.swift", report.ByFile[1].Path)
	assert.Equal(t, "Broken.swift", report.ByFile[2].Path)
	assert.True(t, report.ByFile[2].Degraded)
	assert.Equal(t, 1, report.Totals.FilesDegraded)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			outcome("Z.swift", violation("colon", config.SeverityError)),
			outcome("A.swift", violation("todo", config.SeverityWarning), violation("todo", config.SeverityWarning)),
			outcome("M.swift", violation("todo", config.SeverityWarning)),
		},
	}

	tests := []struct {
		name      string
		sortBy    SortField
		desc      bool
		wantFiles []string
		wantRules []string
	}{
		{
			name:      "count descending",
			sortBy:    SortByCount,
			desc:      true,
			wantFiles: []string{"A.swift", "M.swift", "Z.swift"},
			wantRules: []string{"todo", "colon"},
		},
		{
			name:      "count ascending",
			sortBy:    SortByCount,
			wantFiles: []string{"M.swift", "Z.swift", "A.swift"},
			wantRules: []string{"colon", "todo"},
		},
		{
			name:      "alphabetical",
			sortBy:    SortByAlpha,
			desc:      true,
			wantFiles: []string{"A.swift", "M.swift", "Z.swift"},
			wantRules: []string{"colon", "todo"},
		},
		{
			name:      "severity",
			sortBy:    SortBySeverity,
			wantFiles: []string{"Z.swift", "A.swift", "M.swift"},
			wantRules: []string{"colon", "todo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc
			report := Analyze(result, opts)

			var files, rules []string
			for _, f := range report.ByFile {
				files = append(files, f.Path)
			}
			for _, r := range report.ByRule {
				rules = append(rules, r.RuleID)
			}
			assert.Equal(t, tt.wantFiles, files)
			assert.Equal(t, tt.wantRules, rules)
		})
	}
}

func TestAnalyze_ExcludeViews(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{outcome("A.swift", violation("colon", ""))}}

	opts := Options{IncludeByRule: true, SortBy: SortByCount, SortDesc: true}
	report := Analyze(result, opts)

	assert.Empty(t, report.Violations, "violations should be excluded")
	assert.Empty(t, report.ByFile, "byFile should be excluded")
	assert.NotEmpty(t, report.ByRule, "byRule should be included")
	assert.Equal(t, 1, report.Totals.Violations, "totals always computed")
}
