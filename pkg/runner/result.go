package runner

import (
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
)

// FileOutcome is the result of processing one file. Result is nil when
// Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int // corrections computed but not written
	FilesErrored    int
	FilesDegraded   int // linted without classifier output
	FilesWithIssues int
	FilesModified   int

	ViolationsTotal       int
	ViolationsCorrectable int
	ViolationsBySeverity  map[config.Severity]int

	CorrectionsApplied int
}

// Result holds every file outcome, sorted by path, and the run's stats.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any error-severity violation was found.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.ViolationsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any violation was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.ViolationsTotal > 0
}

func newStats() Stats {
	return Stats{ViolationsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case pr == nil:
		return
	}

	s := &r.Stats
	s.FilesProcessed++
	s.CorrectionsApplied += len(pr.Corrections)
	if pr.Skipped {
		s.FilesSkipped++
	}
	if pr.Written {
		s.FilesModified++
	}
	if pr.FileResult == nil {
		return
	}

	if len(pr.Violations) > 0 {
		s.FilesWithIssues++
	}
	if pr.Degraded() {
		s.FilesDegraded++
	}
	s.ViolationsTotal += len(pr.Violations)
	s.ViolationsCorrectable += pr.CorrectableCount()
	for _, v := range pr.Violations {
		s.ViolationsBySeverity[effectiveSeverity(v.Severity)]++
	}
}

// effectiveSeverity treats an unset severity as a warning.
func effectiveSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityWarning
	}
	return sev
}
