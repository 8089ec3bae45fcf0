package source

import (
	"sort"
	"unicode/utf8"
)

// LineInfo describes one line of a file.
type LineInfo struct {
	// StartOffset is the byte offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the byte offset where the line terminator begins
	// ("\n" or "\r\n"), or the end of content for the last line.
	NewlineStart int

	// EndOffset is the byte offset just past the line terminator.
	EndOffset int
}

// wideRune records a scalar whose byte width or UTF-16 width differs from one.
// Everything between two wide runes maps 1:1 in all three offset spaces.
type wideRune struct {
	byteOffset  int
	byteLen     int
	utf16Offset int
	utf16Len    int
	scalar      int
}

func (w wideRune) byteEnd() int  { return w.byteOffset + w.byteLen }
func (w wideRune) utf16End() int { return w.utf16Offset + w.utf16Len }

// Index is an immutable view over one file's contents that translates between
// byte offsets, UTF-16 offsets and line/column locations.
//
// Index is safe for concurrent use. Queries are O(log n); use a Cursor for
// ascending query sequences.
type Index struct {
	contents    []byte
	lines       []LineInfo
	wide        []wideRune
	utf16Length int
}

// NewIndex builds an Index for contents in a single scan.
// The contents must not be mutated while the Index is in use.
func NewIndex(contents []byte) *Index {
	idx := &Index{
		contents: contents,
		lines:    BuildLines(contents),
	}

	utf16Off := 0
	scalar := 0
	for offset := 0; offset < len(contents); {
		r, size := utf8.DecodeRune(contents[offset:])
		units := 1
		if r != utf8.RuneError && r >= 0x10000 {
			units = 2
		}
		if size != 1 || units != 1 {
			idx.wide = append(idx.wide, wideRune{
				byteOffset:  offset,
				byteLen:     size,
				utf16Offset: utf16Off,
				utf16Len:    units,
				scalar:      scalar,
			})
		}
		offset += size
		utf16Off += units
		scalar++
	}
	idx.utf16Length = utf16Off

	return idx
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings. Empty content yields
// a single empty line so that offset 0 always resolves.
func BuildLines(content []byte) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Len returns the length of the indexed contents in bytes.
func (idx *Index) Len() int {
	return len(idx.contents)
}

// UTF16Len returns the length of the indexed contents in UTF-16 code units.
func (idx *Index) UTF16Len() int {
	return idx.utf16Length
}

// LineCount returns the number of lines.
func (idx *Index) LineCount() int {
	return len(idx.lines)
}

// Lines returns the line table. The slice must not be modified.
func (idx *Index) Lines() []LineInfo {
	return idx.lines
}

// LineRange returns the byte range of a 1-based line, excluding the terminator.
func (idx *Index) LineRange(line int) (ByteRange, bool) {
	if line < 1 || line > len(idx.lines) {
		return ByteRange{}, false
	}
	info := idx.lines[line-1]
	return NewByteRange(info.StartOffset, info.NewlineStart), true
}

// LineContent returns the content of a 1-based line, excluding the terminator.
// Returns nil if the line number is out of range.
func (idx *Index) LineContent(line int) []byte {
	r, ok := idx.LineRange(line)
	if !ok {
		return nil
	}
	return idx.contents[r.Offset:r.End()]
}

// lastWideAtOrBefore returns the index of the last wide rune whose key is <= v,
// or -1 if there is none.
func (idx *Index) lastWideAtOrBefore(v int, key func(wideRune) int) int {
	return sort.Search(len(idx.wide), func(i int) bool {
		return key(idx.wide[i]) > v
	}) - 1
}

// utf16At converts a byte offset to a UTF-16 offset and scalar index.
func (idx *Index) utf16At(offset int) (int, int, bool) {
	if offset < 0 || offset > len(idx.contents) {
		return 0, 0, false
	}
	j := idx.lastWideAtOrBefore(offset, func(w wideRune) int { return w.byteOffset })
	if j < 0 {
		return offset, offset, true
	}
	w := idx.wide[j]
	switch {
	case offset == w.byteOffset:
		return w.utf16Offset, w.scalar, true
	case offset < w.byteEnd():
		return 0, 0, false
	default:
		delta := offset - w.byteEnd()
		return w.utf16End() + delta, w.scalar + 1 + delta, true
	}
}

// ByteToUTF16 converts a byte offset to a UTF-16 offset.
// Returns false if the offset is out of bounds or not on a scalar boundary.
func (idx *Index) ByteToUTF16(offset int) (int, bool) {
	u, _, ok := idx.utf16At(offset)
	return u, ok
}

// UTF16ToByte converts a UTF-16 offset to a byte offset.
// Returns false if the offset is out of bounds or splits a surrogate pair.
func (idx *Index) UTF16ToByte(offset int) (int, bool) {
	if offset < 0 || offset > idx.utf16Length {
		return 0, false
	}
	j := idx.lastWideAtOrBefore(offset, func(w wideRune) int { return w.utf16Offset })
	if j < 0 {
		return offset, true
	}
	w := idx.wide[j]
	switch {
	case offset == w.utf16Offset:
		return w.byteOffset, true
	case offset < w.utf16End():
		return 0, false
	default:
		return w.byteEnd() + (offset - w.utf16End()), true
	}
}

// scalarToByte converts a scalar index to a byte offset.
func (idx *Index) scalarToByte(scalar int) (int, bool) {
	if scalar < 0 {
		return 0, false
	}
	j := idx.lastWideAtOrBefore(scalar, func(w wideRune) int { return w.scalar })
	var offset int
	if j < 0 {
		offset = scalar
	} else {
		w := idx.wide[j]
		if scalar == w.scalar {
			offset = w.byteOffset
		} else {
			offset = w.byteEnd() + (scalar - w.scalar - 1)
		}
	}
	if offset > len(idx.contents) {
		return 0, false
	}
	return offset, true
}

// ByteRangeToUTF16Range converts a byte range to a UTF-16 range.
func (idx *Index) ByteRangeToUTF16Range(r ByteRange) (UTF16Range, bool) {
	if r.Length < 0 {
		return UTF16Range{}, false
	}
	start, ok := idx.ByteToUTF16(r.Offset)
	if !ok {
		return UTF16Range{}, false
	}
	end, ok := idx.ByteToUTF16(r.End())
	if !ok {
		return UTF16Range{}, false
	}
	return UTF16Range{Location: start, Length: end - start}, true
}

// UTF16RangeToByteRange converts a UTF-16 range to a byte range.
func (idx *Index) UTF16RangeToByteRange(r UTF16Range) (ByteRange, bool) {
	if r.Length < 0 {
		return ByteRange{}, false
	}
	start, ok := idx.UTF16ToByte(r.Location)
	if !ok {
		return ByteRange{}, false
	}
	end, ok := idx.UTF16ToByte(r.End())
	if !ok {
		return ByteRange{}, false
	}
	return NewByteRange(start, end), true
}

// lineIndexAt returns the 0-based line index containing offset.
// offset must already be within [0, len].
func (idx *Index) lineIndexAt(offset int) int {
	line := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if line >= len(idx.lines) {
		line = len(idx.lines) - 1
	}
	return line
}

func (idx *Index) locationOnLine(offset, line int) (Location, bool) {
	_, scalar, ok := idx.utf16At(offset)
	if !ok {
		return Location{}, false
	}
	_, lineScalar, _ := idx.utf16At(idx.lines[line].StartOffset)
	return Location{Offset: offset, Line: line + 1, Column: scalar - lineScalar + 1}, true
}

// ByteToLineColumn resolves a byte offset to a 1-based line and column.
// Returns false if the offset is out of bounds or not on a scalar boundary.
func (idx *Index) ByteToLineColumn(offset int) (Location, bool) {
	if offset < 0 || offset > len(idx.contents) {
		return Location{}, false
	}
	return idx.locationOnLine(offset, idx.lineIndexAt(offset))
}

// UTF16ToLineColumn resolves a UTF-16 offset to a 1-based line and column.
// The Offset of the returned Location is in bytes.
func (idx *Index) UTF16ToLineColumn(offset int) (Location, bool) {
	b, ok := idx.UTF16ToByte(offset)
	if !ok {
		return Location{}, false
	}
	return idx.ByteToLineColumn(b)
}

// Offset converts a 1-based line and column to a byte offset.
// The column may point one past the last scalar of the line, at the start
// of its terminator, but not into or beyond the terminator.
func (idx *Index) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(idx.lines) || column < 1 {
		return 0, false
	}
	info := idx.lines[line-1]
	_, lineScalar, _ := idx.utf16At(info.StartOffset)
	offset, ok := idx.scalarToByte(lineScalar + column - 1)
	if !ok || offset > info.NewlineStart {
		return 0, false
	}
	return offset, true
}

// Cursor returns a new Cursor positioned at the start of the file.
func (idx *Index) Cursor() *Cursor {
	return &Cursor{idx: idx}
}

// Cursor answers line/column queries with amortized O(1) cost when offsets
// are queried in ascending order. A Cursor is not safe for concurrent use;
// create one per goroutine.
type Cursor struct {
	idx  *Index
	line int
}

// ByteToLineColumn resolves offset like Index.ByteToLineColumn.
func (c *Cursor) ByteToLineColumn(offset int) (Location, bool) {
	lines := c.idx.lines
	if offset < 0 || offset > len(c.idx.contents) {
		return Location{}, false
	}
	if offset < lines[c.line].StartOffset {
		c.line = c.idx.lineIndexAt(offset)
	} else {
		for c.line < len(lines)-1 && lines[c.line].EndOffset <= offset {
			c.line++
		}
	}
	return c.idx.locationOnLine(offset, c.line)
}
