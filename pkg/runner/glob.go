package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// GlobSet matches slash-separated relative paths against
// included/excluded patterns. "*" stays within one path segment and "**"
// spans segments.
//
// Patterns follow SwiftLint habits: a pattern without "/" also matches a
// file's base name, a leading "**/" also matches at the root, and "dir/**"
// also matches dir itself so whole directories can be pruned.
type GlobSet struct {
	matchers []globMatcher
}

type globMatcher struct {
	glob glob.Glob
	// base matches the pattern against the final path segment too.
	base bool
}

// CompileGlobs compiles patterns, failing on the first malformed one.
func CompileGlobs(patterns []string) (*GlobSet, error) {
	set := &GlobSet{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		base := !strings.Contains(pattern, "/")
		for _, variant := range globVariants(pattern) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.matchers = append(set.matchers, globMatcher{glob: g, base: base})
		}
	}
	return set, nil
}

func globVariants(pattern string) []string {
	variants := []string{pattern}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		variants = append(variants, rest)
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
		variants = append(variants, dir)
	}
	return variants
}

// Empty reports whether the set has no patterns.
func (s *GlobSet) Empty() bool {
	return s == nil || len(s.matchers) == 0
}

// Match reports whether relPath matches any pattern in the set.
func (s *GlobSet) Match(relPath string) bool {
	if s.Empty() {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)
	for _, m := range s.matchers {
		if m.glob.Match(relPath) || (m.base && m.glob.Match(base)) {
			return true
		}
	}
	return false
}
