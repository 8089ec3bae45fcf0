package analysis

import "time"

// Report contains pre-computed views of lint results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Violations is the flat list for detailed output.
	Violations []ViolationEntry `json:"violations,omitempty"`

	// ByFile groups violations by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups violations by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Errors lists files that could not be processed.
	Errors []FileError `json:"errors,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// ViolationEntry represents a single violation in the report.
type ViolationEntry struct {
	FilePath    string           `json:"filePath"`
	RuleID      string           `json:"ruleId"`
	RuleName    string           `json:"ruleName"`
	Severity    string           `json:"severity"`
	Reason      string           `json:"reason"`
	Line        int              `json:"line"`
	Column      int              `json:"column"`
	Offset      int              `json:"offset"`
	Length      int              `json:"length"`
	Correctable bool             `json:"correctable"`
	Correction  *CorrectionEntry `json:"correction,omitempty"`
}

// FileError records a file that failed before linting finished.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// CorrectionEntry represents the replacement attached to a violation.
type CorrectionEntry struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	FilesDegraded   int `json:"filesDegraded"`
	Violations      int `json:"totalViolations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Correctable     int `json:"correctable"`
	Corrected       int `json:"corrected"`
}

// HasIssues returns true if there are any violations.
func (t Totals) HasIssues() bool {
	return t.Violations > 0
}

// HasErrors returns true if there are any error-severity violations.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path       string   `json:"path"`
	Violations int      `json:"violations"`
	Errors     int      `json:"errors"`
	Warnings   int      `json:"warnings"`
	Degraded   bool     `json:"degraded,omitempty"`
	Rules      []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID      string   `json:"ruleId"`
	RuleName    string   `json:"ruleName"`
	Violations  int      `json:"violations"`
	Errors      int      `json:"errors"`
	Warnings    int      `json:"warnings"`
	Correctable bool     `json:"correctable"`
	Files       []string `json:"files,omitempty"`
}
