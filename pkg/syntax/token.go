package syntax

import (
	"sort"

	"github.com/yaklabco/stylint/pkg/source"
)

// Token represents a classified span of bytes in the source.
// Tokens are ordered by Offset and non-overlapping; gaps (whitespace,
// punctuation) are allowed.
type Token struct {
	// Offset is the byte index where this token begins (inclusive).
	Offset int

	// Length is the length of this token in bytes.
	Length int

	// Kind classifies what this token represents.
	Kind Kind
}

// Range returns the byte range covered by the token.
func (t Token) Range() source.ByteRange {
	return source.ByteRange{Offset: t.Offset, Length: t.Length}
}

// End returns the exclusive end offset of the token.
func (t Token) End() int {
	return t.Offset + t.Length
}

// Text returns the source text of this token from the given content.
func (t Token) Text(content []byte) []byte {
	if t.Offset < 0 || t.Length < 0 || t.End() > len(content) {
		return nil
	}
	return content[t.Offset:t.End()]
}

// ValidateTokens checks that a token slice is valid:
// - Every token lies within [0, contentLen).
// - Tokens are ordered by offset and non-overlapping.
// Returns true if valid, false otherwise.
func ValidateTokens(tokens []Token, contentLen int) bool {
	prevEnd := 0
	for _, tok := range tokens {
		if tok.Offset < prevEnd || tok.Length < 0 || tok.End() > contentLen {
			return false
		}
		prevEnd = tok.End()
	}
	return true
}

// TokensOverlapping returns the tokens intersecting r, in document order.
// An empty r overlaps the token that contains its offset, if any.
// The returned slice aliases tokens.
func TokensOverlapping(tokens []Token, r source.ByteRange) []Token {
	// First token that ends after the range start.
	first := sort.Search(len(tokens), func(i int) bool {
		return tokens[i].End() > r.Offset
	})

	last := first
	for last < len(tokens) && tokens[last].Range().Intersects(r) {
		last++
	}
	return tokens[first:last]
}
