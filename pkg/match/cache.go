package match

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheSize is the number of compiled patterns a RegexCache keeps.
const DefaultCacheSize = 512

// RegexCache memoizes compiled regular expressions.
// It is safe for concurrent use and is shared across files by injection.
type RegexCache struct {
	cache *lru.LRU[string, *regexp.Regexp]
}

// NewRegexCache creates a cache holding up to size patterns.
// A non-positive size uses DefaultCacheSize.
func NewRegexCache(size int) *RegexCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// Entries never expire.
	return &RegexCache{cache: lru.NewLRU[string, *regexp.Regexp](size, nil, 0)}
}

// Compile returns the compiled form of pattern, compiling it on first use.
func (c *RegexCache) Compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := c.cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	c.cache.Add(pattern, re)
	return re, nil
}

// Len returns the number of cached patterns.
func (c *RegexCache) Len() int {
	return c.cache.Len()
}
