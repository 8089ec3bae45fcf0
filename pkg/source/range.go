package source

// ByteRange is a half-open byte range [Offset, Offset+Length) into a file's contents.
type ByteRange struct {
	// Offset is the byte index where the range begins (inclusive).
	Offset int

	// Length is the number of bytes covered by the range.
	Length int
}

// NewByteRange returns the range [start, end).
func NewByteRange(start, end int) ByteRange {
	return ByteRange{Offset: start, Length: end - start}
}

// End returns the exclusive end offset of the range.
func (r ByteRange) End() int {
	return r.Offset + r.Length
}

// IsEmpty returns true if the range has zero length.
func (r ByteRange) IsEmpty() bool {
	return r.Length == 0
}

// Contains returns true if the given offset is within this range.
func (r ByteRange) Contains(offset int) bool {
	return offset >= r.Offset && offset < r.End()
}

// ContainsRange returns true if other lies entirely within this range.
func (r ByteRange) ContainsRange(other ByteRange) bool {
	return other.Offset >= r.Offset && other.End() <= r.End()
}

// Intersects returns true if the two ranges share at least one byte.
// An empty range intersects a range that contains its offset.
func (r ByteRange) Intersects(other ByteRange) bool {
	if r.IsEmpty() {
		return other.Contains(r.Offset)
	}
	if other.IsEmpty() {
		return r.Contains(other.Offset)
	}
	return r.Offset < other.End() && other.Offset < r.End()
}

// UTF16Range is a range expressed in UTF-16 code units.
type UTF16Range struct {
	// Location is the UTF-16 code unit index where the range begins.
	Location int

	// Length is the number of UTF-16 code units covered.
	Length int
}

// End returns the exclusive end of the range in UTF-16 code units.
func (r UTF16Range) End() int {
	return r.Location + r.Length
}

// Location is a resolved position within a file.
// Line and Column are 1-based; Column counts Unicode scalars.
type Location struct {
	Offset int
	Line   int
	Column int
}

// IsValid returns true if the location carries a resolved line and column.
func (l Location) IsValid() bool {
	return l.Line > 0 && l.Column > 0
}
