package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/metrics"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline

	// Metrics, if set, records per-file outcomes.
	Metrics *metrics.Recorder
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Processes files with at most opts.Jobs in flight
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
//
// Files never share mutable state: each worker builds its own snapshot, and
// the only shared structures are the read-only registry and regex cache.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("run started", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	// Each worker writes only its own slot, so outcomes stay in discovery order.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.process(groupCtx, path, opts, pipelineOpts)
			done[i] = true
			return nil
		})
	}

	// Per-file failures are recorded on outcomes, so Wait only reports
	// cancellation.
	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}

	logger.Debug("run finished",
		logging.FieldFiles, result.Stats.FilesProcessed,
		logging.FieldViolationsTotal, result.Stats.ViolationsTotal)

	return result, nil
}

// process runs the pipeline for one file and records its metrics.
func (r *Runner) process(ctx context.Context, path string, opts Options, pipelineOpts lint.PipelineOptions) FileOutcome {
	outcome := FileOutcome{Path: path}

	start := time.Now()
	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	r.Metrics.ObserveFile(pr, err, time.Since(start))

	logger := logging.FromContext(ctx)
	if err != nil {
		logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	logger.Debug("file done", logging.FieldPath, path, logging.FieldStatus, pr.Summary())
	outcome.Result = pr
	return outcome
}
