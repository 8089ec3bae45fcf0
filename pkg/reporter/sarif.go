package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/stylint/pkg/analysis"
	"github.com/yaklabco/stylint/pkg/config"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

const (
	toolName           = "stylint"
	toolInformationURI = "https://github.com/yaklabco/stylint"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID               string                `json:"id"`
	Name             string                `json:"name,omitempty"`
	ShortDescription *SARIFMultiformatText `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig      `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any        `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level   string `json:"level"`
	Enabled bool   `json:"enabled"`
}

// SARIFResult represents a single violation.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Line and column are
// 1-based; byte offsets are 0-based.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix represents a proposed correction.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange describes changes to a file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement describes a text replacement.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion           `json:"deletedRegion"`
	InsertedContent *SARIFInsertedContent `json:"insertedContent,omitempty"`
}

// SARIFInsertedContent contains the replacement text.
type SARIFInsertedContent struct {
	Text string `json:"text"`
}

// SARIFInvocation records files that could not be linted.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a tool-level message tied to a file.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFRenderer formats a report as SARIF 2.1.0.
type SARIFRenderer struct {
	opts Options
	out  io.Writer
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts, out: opts.Writer}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	output := r.buildOutput(report)

	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush SARIF: %w", err)
	}
	return nil
}

func (r *SARIFRenderer) buildOutput(report *analysis.Report) *SARIFOutput {
	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        version,
			InformationURI: toolInformationURI,
			Rules:          make([]SARIFRule, 0, len(r.opts.Rules)),
		}},
		Results: make([]SARIFResult, 0),
	}

	ruleIndex := make(map[string]int, len(r.opts.Rules))
	for _, info := range r.opts.Rules {
		ruleIndex[info.ID] = len(run.Tool.Driver.Rules)
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, ruleFromInfo(info))
	}

	if report != nil {
		for i := range report.Violations {
			entry := &report.Violations[i]
			idx, ok := ruleIndex[entry.RuleID]
			if !ok {
				// Rules not in the catalog still need a descriptor.
				idx = len(run.Tool.Driver.Rules)
				ruleIndex[entry.RuleID] = idx
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
					ID:            entry.RuleID,
					Name:          entry.RuleName,
					DefaultConfig: &SARIFRuleConfig{Level: sarifLevel(entry.Severity), Enabled: true},
				})
			}
			run.Results = append(run.Results, resultFromEntry(entry, idx))
		}

		if len(report.Errors) > 0 {
			inv := SARIFInvocation{ExecutionSuccessful: false}
			for _, fe := range report.Errors {
				inv.ToolExecutionNotifications = append(inv.ToolExecutionNotifications, SARIFNotification{
					Level:   "error",
					Message: SARIFMessage{Text: fe.Error},
					Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: filepath.ToSlash(fe.Path)},
					}}},
				})
			}
			run.Invocations = []SARIFInvocation{inv}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func ruleFromInfo(info config.RuleInfo) SARIFRule {
	rule := SARIFRule{
		ID:   info.ID,
		Name: info.Name,
		DefaultConfig: &SARIFRuleConfig{
			Level:   sarifLevel(string(info.Severity)),
			Enabled: !info.OptIn,
		},
	}
	if info.Description != "" {
		rule.ShortDescription = &SARIFMultiformatText{Text: info.Description}
	}
	props := map[string]any{"correctable": info.CanFix}
	if len(info.Tags) > 0 {
		props["tags"] = info.Tags
	}
	rule.Properties = props
	return rule
}

func resultFromEntry(entry *analysis.ViolationEntry, ruleIdx int) SARIFResult {
	uri := filepath.ToSlash(entry.FilePath)
	offset, length := entry.Offset, entry.Length

	result := SARIFResult{
		RuleID:    entry.RuleID,
		RuleIndex: ruleIdx,
		Level:     sarifLevel(entry.Severity),
		Message:   SARIFMessage{Text: entry.Reason},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Region: SARIFRegion{
				StartLine:   entry.Line,
				StartColumn: entry.Column,
				ByteOffset:  &offset,
				ByteLength:  &length,
			},
		}}},
	}

	if c := entry.Correction; c != nil {
		start, deleted := c.StartOffset, c.EndOffset-c.StartOffset
		result.Fixes = []SARIFFix{{
			Description: SARIFMessage{Text: "Apply " + entry.RuleID + " correction"},
			ArtifactChanges: []SARIFArtifactChange{{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Replacements: []SARIFReplacement{{
					DeletedRegion:   SARIFRegion{ByteOffset: &start, ByteLength: &deleted},
					InsertedContent: &SARIFInsertedContent{Text: c.NewText},
				}},
			}},
		}}
	}

	return result
}

// sarifLevel maps a severity name to a SARIF level.
func sarifLevel(severity string) string {
	if config.Severity(severity) == config.SeverityError {
		return "error"
	}
	return "warning"
}
