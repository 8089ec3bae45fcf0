// Package source provides the immutable source file model and the position
// index used to translate between byte offsets, UTF-16 offsets and
// line/column locations.
package source

import "sync"

// File is one source file's contents for the duration of a lint pass.
//
// A File is immutable: corrections never modify it in place. Applying
// corrections yields new contents, from which a new File is created.
type File struct {
	// Path is the logical file path (used for reporting only).
	Path string

	// Contents is the raw file content. It must not be mutated.
	Contents []byte

	indexOnce sync.Once
	index     *Index
}

// NewFile creates a File for the given path and contents.
func NewFile(path string, contents []byte) *File {
	return &File{Path: path, Contents: contents}
}

// Index returns the position index, building it on first use.
func (f *File) Index() *Index {
	f.indexOnce.Do(func() {
		f.index = NewIndex(f.Contents)
	})
	return f.index
}

// Text returns the contents covered by r, or false if r is out of bounds.
func (f *File) Text(r ByteRange) ([]byte, bool) {
	if r.Offset < 0 || r.Length < 0 || r.End() > len(f.Contents) {
		return nil, false
	}
	return f.Contents[r.Offset:r.End()], true
}

// Location resolves a byte offset to a Location. An offset that cannot be
// resolved yields a Location carrying only the offset.
func (f *File) Location(offset int) Location {
	loc, ok := f.Index().ByteToLineColumn(offset)
	if !ok {
		return Location{Offset: offset}
	}
	return loc
}

// WithContents returns a new File for the same path with new contents.
func (f *File) WithContents(contents []byte) *File {
	return NewFile(f.Path, contents)
}
