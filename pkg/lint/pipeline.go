package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/fix"
	"github.com/yaklabco/stylint/pkg/fsutil"
	"github.com/yaklabco/stylint/pkg/langdetect"
)

// Errors returned by Pipeline, wrapping the underlying cause.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrLintFailure      = errors.New("lint failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult is the outcome of one file. The embedded FileResult holds
// the violations of the last lint pass, taken against the fully corrected
// content.
type PipelineResult struct {
	*FileResult

	Path         string
	OriginalInfo *fsutil.FileInfo

	// Modified reports that corrections changed the content, which is then
	// in ModifiedContent. Written reports that it reached the disk.
	Modified        bool
	ModifiedContent []byte
	Written         bool
	BackupCreated   bool

	// Corrections lists the corrections of every pass, FixPasses counts the
	// passes that changed the content.
	Corrections []Correction
	FixPasses   int

	// Diff is set in dry-run mode only.
	Diff *fix.Diff

	// Skipped marks modified content that was deliberately not written.
	Skipped    bool
	SkipReason string
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls fixing and writing.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes before writing instead of
	// only size and modification time.
	StrictRaceDetection bool

	// RejectNewSyntaxErrors drops corrections that leave a file which
	// parsed cleanly with syntax errors.
	RejectNewSyntaxErrors bool

	// MaxFixPasses bounds the correct-and-relint loop. Zero means
	// config.DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:                fsutil.DefaultBackupConfig(),
		StrictRaceDetection:   true,
		RejectNewSyntaxErrors: true,
		MaxFixPasses:          config.DefaultMaxFixPasses,
	}
}

// Pipeline lints one file, corrects it in memory and writes it back safely.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline returns a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Lint and correct in memory until stable or out of passes.
//  3. Reject corrections that introduce syntax errors (optional).
//  4. Generate diff (if dry-run mode).
//  5. Leave generated files alone and check for concurrent modifications.
//  6. Create backup (if enabled).
//  7. Write the modified content atomically, unless cancelled first.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	if langdetect.IsGenerated(path, originalContent) {
		result.Skipped = true
		result.SkipReason = "generated file"
		return result, nil
	}

	changed := fsutil.CheckModifiedQuick
	if opts.StrictRaceDetection {
		changed = fsutil.CheckModified
	}
	modified, err := changed(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, info, originalContent, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	// The rewrite is all-or-nothing: once cancelled, the file stays as read.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	result.Stage = StageReported

	logging.FromContext(ctx).Debug("file fixed",
		logging.FieldPath, path, logging.FieldCorrections, len(result.Corrections))

	return result, nil
}

// ProcessContent runs the lint and correction loop on content without
// touching the disk.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = config.DefaultMaxFixPasses
	}

	content := originalContent
	var syntaxErrorsBefore bool

	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fixing := opts.Fix && result.FixPasses < maxPasses
		if !fixing {
			fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrLintFailure, err)
			}
			result.FileResult = fileResult
			break
		}

		corrected, err := p.Engine.Correct(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLintFailure, err)
		}
		if pass == 0 {
			syntaxErrorsBefore = corrected.SyntaxErrors
		}
		result.FileResult = corrected.FileResult
		if len(corrected.Corrections) == 0 {
			break
		}

		content = corrected.Content
		result.Corrections = append(result.Corrections, corrected.Corrections...)
		result.FixPasses++
		result.Modified = true
	}

	if !result.Modified {
		return result, nil
	}

	if opts.RejectNewSyntaxErrors && !syntaxErrorsBefore && result.SyntaxErrors {
		result.Skipped = true
		result.SkipReason = "corrections introduce syntax errors"
		result.Modified = false
		return result, nil
	}

	result.ModifiedContent = content
	result.Stage = StageCorrected

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err wraps one of the pipeline errors.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrLintFailure, ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// BackupConfigFromConfig derives backup settings; --no-backups wins over
// the config file.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig applies the run settings of cfg to the
// defaults.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.Backup = BackupConfigFromConfig(cfg)
	opts.MaxFixPasses = cfg.FixPasses()
	return opts
}
