package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/directive"
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

var (
	// ErrUnderivedCorrection indicates a replacement that does not touch
	// the violation it was produced for.
	ErrUnderivedCorrection = errors.New("correction not derived from a reported violation")

	// ErrSyntaxRequired indicates a rule that cannot run on a degraded file.
	ErrSyntaxRequired = errors.New("rule requires syntax classification")

	// ErrNoClassifier indicates an engine without a classifier.
	ErrNoClassifier = errors.New("no classifier configured")

	// ErrInvalidTokens indicates classifier tokens that are unordered,
	// overlapping, or out of bounds.
	ErrInvalidTokens = errors.New("classifier returned invalid tokens")
)

// Stage is the lifecycle position of a file within one lint invocation.
type Stage int

const (
	// StageUnvisited means no rule has run yet.
	StageUnvisited Stage = iota
	// StageMatched means violations were collected.
	StageMatched
	// StageFiltered means disable directives were applied.
	StageFiltered
	// StageCorrected means corrections were applied to the buffer.
	StageCorrected
	// StageReported means results were handed to a reporter.
	StageReported
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageUnvisited:
		return "unvisited"
	case StageMatched:
		return "matched"
	case StageFiltered:
		return "filtered"
	case StageCorrected:
		return "corrected"
	case StageReported:
		return "reported"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// FileResult contains the results of linting a single file.
type FileResult struct {
	// File is the linted file.
	File *source.File

	// Violations contains all surviving violations, sorted by position.
	Violations []Violation

	// Replacements contains validated corrections, sorted descending.
	// Empty when fixing is disabled or the correction step failed.
	Replacements []fix.Replacement

	// CorrectionErr is set when the correction step was rejected (for
	// example overlapping replacements). Violations remain valid.
	CorrectionErr error

	// ClassifierErr is set when the file was linted in degraded mode.
	ClassifierErr error

	// SyntaxErrors is true when the classifier parsed the file with errors.
	SyntaxErrors bool

	// SkippedRules lists rules not run because the file was degraded.
	SkippedRules []string

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error

	// Stage is how far the file got through the lifecycle.
	Stage Stage
}

// HasIssues returns true if any violations were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Violations) > 0
}

// HasCorrections returns true if any corrections are ready to apply.
func (fr *FileResult) HasCorrections() bool {
	return len(fr.Replacements) > 0
}

// IssueCount returns the total number of violations.
func (fr *FileResult) IssueCount() int {
	return len(fr.Violations)
}

// CorrectableCount returns the number of violations with a correction.
func (fr *FileResult) CorrectableCount() int {
	count := 0
	for i := range fr.Violations {
		if fr.Violations[i].HasCorrection() {
			count++
		}
	}
	return count
}

// Degraded reports whether the classifier failed for this file.
func (fr *FileResult) Degraded() bool {
	return fr.ClassifierErr != nil
}

// Engine coordinates classification and rule execution for linting.
type Engine struct {
	// Classifier supplies tokens and the structure tree.
	Classifier syntax.Classifier

	// Registry holds all available rules.
	Registry *Registry

	// Cache holds compiled patterns shared across files.
	Cache *match.RegexCache
}

// NewEngine creates a new Engine with the given classifier and registry.
func NewEngine(classifier syntax.Classifier, registry *Registry) *Engine {
	return &Engine{
		Classifier: classifier,
		Registry:   registry,
		Cache:      match.NewRegexCache(match.DefaultCacheSize),
	}
}

// Snapshot classifies content and builds the per-pass view of the file.
// A classifier failure degrades the snapshot instead of failing; only
// cancellation is returned as an error.
func (e *Engine) Snapshot(ctx context.Context, path string, content []byte) (*Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("linting cancelled: %w", err)
	}

	file := source.NewFile(path, content)
	if e.Classifier == nil {
		return NewSnapshot(file, nil, ErrNoClassifier, e.Cache), false, nil
	}

	cls, err := e.Classifier.Classify(ctx, path, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, fmt.Errorf("linting cancelled: %w", ctxErr)
		}
		logging.FromContext(ctx).Debug("classifier failed; linting in degraded mode",
			logging.FieldPath, path, logging.FieldError, err)
		return NewSnapshot(file, nil, fmt.Errorf("%s: %w", e.Classifier.Name(), err), e.Cache), false, nil
	}

	if !syntax.ValidateTokens(cls.Tokens, len(content)) {
		return NewSnapshot(file, nil, ErrInvalidTokens, e.Cache), false, nil
	}

	return NewSnapshot(file, cls, nil, e.Cache), cls.HasErrors, nil
}

// DirectiveOptions builds directive parsing options from configuration.
// Bare commands are recognized only when they name rules in registry.
func DirectiveOptions(cfg *config.Config, registry *Registry) directive.Options {
	opts := directive.DefaultOptions()
	if cfg != nil {
		opts.AllowBare = cfg.AllowBareDirectives()
		if len(cfg.Directives.Prefixes) > 0 {
			opts.Prefixes = cfg.Directives.Prefixes
		}
	}
	if registry != nil {
		opts.KnownRules = registry.IDs()
	}
	return opts
}

// Detect runs one rule over snap and returns its violations, sorted,
// deduplicated, and with those suppressed by directives removed. A nil
// directive set disables filtering.
func (e *Engine) Detect(ctx context.Context, snap *Snapshot, rr ResolvedRule, directives *directive.Set) ([]Violation, error) {
	vs, _, err := e.detect(ctx, snap, rr, directives)
	return vs, err
}

func (e *Engine) detect(
	ctx context.Context,
	snap *Snapshot,
	rr ResolvedRule,
	directives *directive.Set,
) ([]Violation, *RuleContext, error) {
	if rr.Description.RequiresSyntax && snap.Degraded() {
		return nil, nil, ErrSyntaxRequired
	}

	rc := NewRuleContext(ctx, snap, rr.Severity, rr.Config)
	vs, err := rr.Rule.Detect(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("rule %s: %w", rr.ID(), err)
	}

	return filterEnabled(finish(rc, rr, vs), rr.ID(), directives), rc, nil
}

// finish stamps rule metadata on violations, then sorts and deduplicates.
// A severity chosen by the rule itself is kept.
func finish(rc *RuleContext, rr ResolvedRule, vs []Violation) []Violation {
	for i := range vs {
		vs[i].RuleID = rr.ID()
		vs[i].RuleName = rr.Description.Name
		if vs[i].Severity == "" {
			vs[i].Severity = rr.Severity
		}
		vs[i].Path = rc.File.Path
		if vs[i].Location.Line == 0 {
			vs[i].Location = rc.locate(vs[i].Range.Offset)
		}
	}
	return SortViolations(vs)
}

// filterEnabled drops violations that a directive suppresses.
func filterEnabled(vs []Violation, ruleID string, directives *directive.Set) []Violation {
	if directives == nil {
		return vs
	}
	kept := vs[:0]
	for _, v := range vs {
		if !directives.IsDisabled(ruleID, v.Range.Offset) {
			kept = append(kept, v)
		}
	}
	return kept
}

// correct attaches replacements to the surviving violations of a
// correctable rule.
func correct(rc *RuleContext, rr ResolvedRule, vs []Violation) ([]fix.Replacement, error) {
	corrector, ok := rr.Rule.(Corrector)
	if !ok || !rr.AutoFix {
		return nil, nil
	}

	var reps []fix.Replacement
	for i := range vs {
		rep, ok := corrector.Correct(rc, vs[i])
		if !ok {
			continue
		}
		r := vs[i].Range
		if rep.StartOffset > r.End() || rep.EndOffset < r.Offset {
			return nil, fmt.Errorf("rule %s at offset %d: %w", rr.ID(), r.Offset, ErrUnderivedCorrection)
		}
		vs[i].Correction = &rep
		reps = append(reps, rep)
	}
	return reps, nil
}

// LintFile classifies and lints a single file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snap, syntaxErrors, err := e.Snapshot(ctx, path, content)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		File:          snap.File,
		ClassifierErr: snap.ClassifierErr,
		SyntaxErrors:  syntaxErrors,
		RuleErrors:    make(map[string]error),
		Stage:         StageUnvisited,
	}

	logger := logging.FromContext(ctx)
	set := directive.NewSet(snap.File, directive.Parse(snap.File, snap.Tokens, DirectiveOptions(cfg, e.Registry)))
	ran := make(map[string]bool)

	var auditors []ResolvedRule
	var reps []fix.Replacement
	var correctionErr error

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		if _, ok := rr.Rule.(DirectiveAuditor); ok {
			auditors = append(auditors, rr)
			continue
		}

		vs, rc, err := e.detect(ctx, snap, rr, set)
		if errors.Is(err, ErrSyntaxRequired) {
			result.SkippedRules = append(result.SkippedRules, rr.ID())
			continue
		}
		if err != nil {
			result.RuleErrors[rr.ID()] = err
			continue
		}
		ran[rr.ID()] = true

		if correctionErr == nil {
			ruleReps, err := correct(rc, rr, vs)
			if err != nil {
				correctionErr = err
			}
			reps = append(reps, ruleReps...)
		}

		result.Violations = append(result.Violations, vs...)
	}
	result.Stage = StageMatched

	for _, rr := range auditors {
		rc := NewRuleContext(ctx, snap, rr.Severity, rr.Config)
		auditor, _ := rr.Rule.(DirectiveAuditor)
		vs := auditor.Audit(rc, set.Unused(), func(id string) bool { return ran[id] })
		result.Violations = append(result.Violations, filterEnabled(finish(rc, rr, vs), rr.ID(), set)...)
	}

	result.Violations = SortViolations(result.Violations)
	result.Stage = StageFiltered

	if correctionErr == nil && len(reps) > 0 {
		result.Replacements, correctionErr = fix.Prepare(reps, len(content))
	}
	if correctionErr != nil {
		logger.Debug("corrections rejected", logging.FieldPath, path, logging.FieldError, correctionErr)
		result.CorrectionErr = correctionErr
		result.Replacements = nil
		for i := range result.Violations {
			result.Violations[i].Correction = nil
		}
	}

	return result, nil
}

// Correction records one applied correction, located in the buffer it was
// detected in.
type Correction struct {
	RuleID   string
	Reason   string
	Location source.Location
}

// CorrectResult is the outcome of one correction pass over a file.
type CorrectResult struct {
	// FileResult is the lint result the corrections were derived from.
	*FileResult

	// Content is the rewritten buffer, or the input when nothing applied.
	Content []byte

	// Corrections lists the applied corrections, in document order.
	Corrections []Correction
}

// Correct lints content and applies every accepted correction in a single
// rewrite. A rejected correction step leaves the content unchanged and is
// reported on FileResult.CorrectionErr; it is not returned as an error.
func (e *Engine) Correct(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*CorrectResult, error) {
	res, err := e.LintFile(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}

	out := &CorrectResult{FileResult: res, Content: content}
	if !res.HasCorrections() {
		return out, nil
	}

	newContent, applied, err := fix.Apply(content, res.Replacements)
	if err != nil {
		res.CorrectionErr = err
		return out, nil
	}

	appliedAt := make(map[int]bool, len(applied))
	for _, offset := range applied {
		appliedAt[offset] = true
	}
	for _, v := range res.Violations {
		if v.Correction != nil && appliedAt[v.Correction.StartOffset] {
			out.Corrections = append(out.Corrections, Correction{
				RuleID:   v.RuleID,
				Reason:   v.Reason,
				Location: v.Location,
			})
		}
	}

	out.Content = newContent
	res.Stage = StageCorrected
	return out, nil
}
