package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/stylint/pkg/langdetect"
)

// Discover finds the Swift files named by opts and returns their absolute
// paths, sorted and without duplicates.
//
// Directory walks select files by their .swift extension. A file named
// explicitly is also accepted when go-enry recognizes Swift content, such
// as a script with a swift shebang.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	include, err := CompileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("included: %w", err)
	}
	exclude, err := CompileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("excluded: %w", err)
	}

	d := &discoverer{
		opts:    opts,
		workDir: workDir,
		include: include,
		exclude: exclude,
		seen:    make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if info.IsDir() {
			// Naming a vendored directory explicitly lints it.
			skipVendored := !opts.IncludeVendored && !d.vendored(absPath)
			if err := d.walk(ctx, absPath, skipVendored); err != nil {
				return nil, fmt.Errorf("walk directory %s: %w", absPath, err)
			}
		} else if d.acceptsExplicit(absPath) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type discoverer struct {
	opts    Options
	workDir string
	include *GlobSet
	exclude *GlobSet
	seen    map[string]struct{}
	files   []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (d *discoverer) vendored(dir string) bool {
	rel := d.rel(dir)
	return rel != "." && langdetect.IsVendored(filepath.ToSlash(rel)+"/")
}

// walk collects Swift files under root. Hidden entries, excluded
// directories and unreadable directories are skipped. Directory symlinks
// are followed only with FollowSymlinks, by walking their resolved target.
func (d *discoverer) walk(ctx context.Context, root string, skipVendored bool) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || d.exclude.Match(d.rel(path)) || (path != root && skipVendored && d.vendored(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are ignored
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are ignored
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				return d.walk(ctx, target, skipVendored)
			}
		}

		if hasSwiftExtension(path) && d.selected(path) {
			d.add(path)
		}
		return nil
	})
}

// acceptsExplicit checks a file named on the command line. Files without
// the .swift extension are sniffed.
func (d *discoverer) acceptsExplicit(path string) bool {
	if !hasSwiftExtension(path) {
		content, err := os.ReadFile(path)
		if err != nil || !langdetect.IsSwift(path, content) {
			return false
		}
	}
	return d.selected(path)
}

// selected applies the include and exclude globs. An empty include list
// selects everything.
func (d *discoverer) selected(path string) bool {
	rel := d.rel(path)
	if d.exclude.Match(rel) {
		return false
	}
	return d.include.Empty() || d.include.Match(rel)
}

func hasSwiftExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), langdetect.SwiftExtension)
}
