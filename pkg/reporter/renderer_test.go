package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/analysis"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/reporter"
)

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	var buf bytes.Buffer
	rep, err := reporter.New(plainOptions(&buf, reporter.FormatJSON, workDir))
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), sampleResult(workDir))
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.Equal(t, 2, report.Totals.Violations)
	assert.Equal(t, 1, report.Totals.FilesErrored)
	require.Len(t, report.Violations, 2)

	first := report.Violations[0]
	assert.Equal(t, filepath.Join("Sources", "App.swift"), first.FilePath)
	assert.Equal(t, "trailing_whitespace", first.RuleID)
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 10, first.Column)
	assert.True(t, first.Correctable)
	require.NotNil(t, first.Correction)
	assert.Equal(t, 22, first.Correction.StartOffset)

	require.Len(t, report.Errors, 1)
	assert.Equal(t, "permission denied", report.Errors[0].Error)

	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "), "indented by default")
}

func TestJSONRenderer_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatJSON, "")
	opts.Compact = true

	require.NoError(t, reporter.NewJSONRenderer(opts).Render(context.Background(), &analysis.Report{}))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "single line document")
}

func TestSARIFRenderer(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatSARIF, workDir)
	opts.ToolVersion = "1.2.3"
	opts.Rules = []config.RuleInfo{
		{ID: "colon", Name: "Colon Spacing", Description: "Colons should be next to the identifier", Severity: config.SeverityWarning, CanFix: true, Tags: []string{"style"}},
		{ID: "trailing_whitespace", Name: "Trailing Whitespace", Severity: config.SeverityWarning, CanFix: true},
		{ID: "explicit_self", Name: "Explicit Self", Severity: config.SeverityWarning, OptIn: true},
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	_, err = rep.Report(context.Background(), sampleResult(workDir))
	require.NoError(t, err)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, "stylint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	// Catalog rules first, then rules only seen in results.
	require.Len(t, run.Tool.Driver.Rules, 4)
	assert.Equal(t, "colon", run.Tool.Driver.Rules[0].ID)
	require.NotNil(t, run.Tool.Driver.Rules[0].ShortDescription)
	assert.Equal(t, "Colons should be next to the identifier", run.Tool.Driver.Rules[0].ShortDescription.Text)
	assert.False(t, run.Tool.Driver.Rules[2].DefaultConfig.Enabled, "opt-in rules are disabled by default")
	assert.Equal(t, "type_name", run.Tool.Driver.Rules[3].ID)

	require.Len(t, run.Results, 2)
	ws := run.Results[0]
	assert.Equal(t, "trailing_whitespace", ws.RuleID)
	assert.Equal(t, 1, ws.RuleIndex)
	assert.Equal(t, "warning", ws.Level)
	region := ws.Locations[0].PhysicalLocation.Region
	assert.Equal(t, 2, region.StartLine)
	assert.Equal(t, 10, region.StartColumn)
	require.NotNil(t, region.ByteOffset)
	assert.Equal(t, 22, *region.ByteOffset)
	assert.Equal(t, "Sources/App.swift", ws.Locations[0].PhysicalLocation.ArtifactLocation.URI)

	require.Len(t, ws.Fixes, 1)
	replacement := ws.Fixes[0].ArtifactChanges[0].Replacements[0]
	assert.Equal(t, 22, *replacement.DeletedRegion.ByteOffset)
	assert.Equal(t, 2, *replacement.DeletedRegion.ByteLength)
	assert.Empty(t, replacement.InsertedContent.Text)

	typeName := run.Results[1]
	assert.Equal(t, "error", typeName.Level)
	assert.Equal(t, 3, typeName.RuleIndex)
	assert.Empty(t, typeName.Fixes)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
	assert.Equal(t, "permission denied", run.Invocations[0].ToolExecutionNotifications[0].Message.Text)
}

func TestSARIFRenderer_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := plainOptions(&buf, reporter.FormatSARIF, "")
	opts.Compact = true

	require.NoError(t, reporter.NewSARIFRenderer(opts).Render(context.Background(), &analysis.Report{}))
	assert.Contains(t, buf.String(), `"results":[]`)
	assert.Contains(t, buf.String(), `"rules":[]`)
	assert.NotContains(t, buf.String(), "invocations")
}

func TestSummaryRenderer(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	var buf bytes.Buffer
	rep, err := reporter.New(plainOptions(&buf, reporter.FormatSummary, workDir))
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), sampleResult(workDir))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Rules Summary")
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "trailing_whitespace")
	assert.Contains(t, out, "type_name")
	assert.Contains(t, out, filepath.Join("Sources", "App.swift"))
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Total: 2 violations (1 errors, 1 warnings) in 1 file")
	assert.Less(t, strings.Index(out, "Rules Summary"), strings.Index(out, "Files Summary"))
}

func TestSummaryRenderer_Clean(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, reporter.NewSummaryRenderer(plainOptions(&buf, reporter.FormatSummary, "")).
		Render(context.Background(), &analysis.Report{}))
	assert.Equal(t, "No violations found\n", buf.String())
}
