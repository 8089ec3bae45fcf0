// Package match finds regular expression matches in source text and filters
// them by the syntax kinds of the tokens they overlap.
package match

import (
	"regexp"

	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// Options restricts a search.
type Options struct {
	// Include, when non-empty, keeps only matches whose overlapping token
	// kinds are exactly this set. A match overlapping no token fails.
	Include syntax.KindSet

	// Exclude drops matches overlapping any token of these kinds.
	// A match overlapping no token passes.
	Exclude syntax.KindSet

	// Within limits the search to a byte range of the file.
	Within *source.ByteRange
}

// Match is one retained regular expression match.
type Match struct {
	// Range is the byte range of the whole match.
	Range source.ByteRange

	// UTF16 is Range expressed in UTF-16 code units.
	UTF16 source.UTF16Range

	// Groups holds the byte range of each capture group, starting with
	// group 1. Unmatched groups have Offset -1.
	Groups []source.ByteRange

	// Tokens are the tokens overlapping the match, in document order.
	Tokens []syntax.Token
}

// Kinds returns the union of the overlapping tokens' kinds.
func (m Match) Kinds() syntax.KindSet {
	set := make(syntax.KindSet, len(m.Tokens))
	for _, tok := range m.Tokens {
		set.Add(tok.Kind)
	}
	return set
}

// FirstKind returns the kind of the first overlapping token.
func (m Match) FirstKind() (syntax.Kind, bool) {
	if len(m.Tokens) == 0 {
		return "", false
	}
	return m.Tokens[0].Kind, true
}

// LastKind returns the kind of the last overlapping token.
func (m Match) LastKind() (syntax.Kind, bool) {
	if len(m.Tokens) == 0 {
		return "", false
	}
	return m.Tokens[len(m.Tokens)-1].Kind, true
}

// Group returns the byte range of capture group n (1-based), or false if it
// did not participate in the match.
func (m Match) Group(n int) (source.ByteRange, bool) {
	i := n - 1
	if i < 0 || i >= len(m.Groups) || m.Groups[i].Offset < 0 {
		return source.ByteRange{}, false
	}
	return m.Groups[i], true
}

// Matcher searches one file. It holds no mutable state beyond the shared
// cache and may be used from multiple goroutines.
type Matcher struct {
	file   *source.File
	tokens []syntax.Token
	cache  *RegexCache
}

// New creates a Matcher over file and its classified tokens.
// A nil cache gets a private one.
func New(file *source.File, tokens []syntax.Token, cache *RegexCache) *Matcher {
	if cache == nil {
		cache = NewRegexCache(0)
	}
	return &Matcher{file: file, tokens: tokens, cache: cache}
}

// File returns the file being searched.
func (m *Matcher) File() *source.File {
	return m.file
}

// Tokens returns the file's tokens.
func (m *Matcher) Tokens() []syntax.Token {
	return m.tokens
}

// Find compiles pattern through the cache and returns the retained matches.
func (m *Matcher) Find(pattern string, opts Options) ([]Match, error) {
	re, err := m.cache.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return m.FindRegexp(re, opts), nil
}

// FindRegexp returns the retained matches of re.
func (m *Matcher) FindRegexp(re *regexp.Regexp, opts Options) []Match {
	var out []Match
	m.each(re, opts.Within, func(match Match) {
		if keep(match, opts) {
			out = append(out, match)
		}
	})
	return out
}

// FindExcluding is like Find but also drops any match whose range lies within
// a match of excludingPattern.
func (m *Matcher) FindExcluding(pattern, excludingPattern string, opts Options) ([]Match, error) {
	excluding, err := m.cache.Compile(excludingPattern)
	if err != nil {
		return nil, err
	}

	var excluded []source.ByteRange
	m.each(excluding, opts.Within, func(match Match) {
		excluded = append(excluded, match.Range)
	})

	matches, err := m.Find(pattern, opts)
	if err != nil {
		return nil, err
	}

	out := matches[:0]
	for _, match := range matches {
		if !anyContains(excluded, match.Range) {
			out = append(out, match)
		}
	}
	return out, nil
}

func anyContains(ranges []source.ByteRange, r source.ByteRange) bool {
	for _, candidate := range ranges {
		if candidate.ContainsRange(r) {
			return true
		}
	}
	return false
}

// each runs re over the file (or within) and calls fn for every match whose
// offsets translate cleanly.
func (m *Matcher) each(re *regexp.Regexp, within *source.ByteRange, fn func(Match)) {
	contents := m.file.Contents
	base := 0
	if within != nil {
		if within.Offset < 0 || within.Length < 0 || within.End() > len(contents) {
			return
		}
		base = within.Offset
		contents = contents[within.Offset:within.End()]
	}

	idx := m.file.Index()
	for _, loc := range re.FindAllSubmatchIndex(contents, -1) {
		r := source.NewByteRange(base+loc[0], base+loc[1])
		u16, ok := idx.ByteRangeToUTF16Range(r)
		if !ok {
			continue
		}

		groups := make([]source.ByteRange, 0, len(loc)/2-1)
		for g := 2; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				groups = append(groups, source.ByteRange{Offset: -1})
				continue
			}
			groups = append(groups, source.NewByteRange(base+loc[g], base+loc[g+1]))
		}

		fn(Match{
			Range:  r,
			UTF16:  u16,
			Groups: groups,
			Tokens: syntax.TokensOverlapping(m.tokens, r),
		})
	}
}

func keep(match Match, opts Options) bool {
	if len(opts.Exclude) > 0 {
		for _, tok := range match.Tokens {
			if opts.Exclude.Has(tok.Kind) {
				return false
			}
		}
	}
	if len(opts.Include) > 0 && !match.Kinds().Equal(opts.Include) {
		return false
	}
	return true
}
