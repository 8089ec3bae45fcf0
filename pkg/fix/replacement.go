// Package fix provides the replacement type and the logic that applies a set
// of corrections to a file's contents.
package fix

import "github.com/yaklabco/stylint/pkg/source"

// Replacement represents a single text replacement in a file.
type Replacement struct {
	// StartOffset is the byte index where the replacement begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the replacement ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// NewReplacement returns a replacement of r with newText.
func NewReplacement(r source.ByteRange, newText string) Replacement {
	return Replacement{StartOffset: r.Offset, EndOffset: r.End(), NewText: newText}
}

// Insertion returns a replacement inserting text at offset.
func Insertion(offset int, text string) Replacement {
	return Replacement{StartOffset: offset, EndOffset: offset, NewText: text}
}

// Deletion returns a replacement deleting r.
func Deletion(r source.ByteRange) Replacement {
	return NewReplacement(r, "")
}

// Range returns the replaced byte range.
func (r Replacement) Range() source.ByteRange {
	return source.NewByteRange(r.StartOffset, r.EndOffset)
}
