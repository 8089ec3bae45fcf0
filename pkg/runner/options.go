// Package runner provides multi-file linting orchestration.
package runner

import "github.com/yaklabco/stylint/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include every Swift file".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// IncludeVendored walks dependency trees such as Pods/ and Carthage/,
	// which are skipped by default.
	IncludeVendored bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig fills the discovery and concurrency options from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg != nil {
		opts.IncludeGlobs = cfg.Included
		opts.ExcludeGlobs = cfg.Excluded
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
