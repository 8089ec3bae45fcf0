package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is a line-level unified diff of one file's fixes.
type Diff struct {
	Path      string
	Original  []byte
	Modified  []byte
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section. Starts are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a hunk line without its " ", "+" or "-" prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind classifies a hunk line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// contextLines surround each change, as in diff -u.
const contextLines = 3

// GenerateDiff returns the unified diff from original to modified, or nil
// when the two have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	before, after := splitLines(original), splitLines(modified)
	if slices.Equal(before, after) {
		return nil
	}

	lines := diffLines(before, after)
	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunksOf(lines),
	}
	for _, line := range lines {
		switch line.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

// String renders the diff with ---/+++ headers and no "diff --git" line.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, line := range h.Lines {
			b.WriteByte(line.Kind.prefix())
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HasChanges reports whether d has at least one hunk. It is nil-safe.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines drops the empty element a trailing newline would produce.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// diffLines runs diffmatchpatch in line mode: every distinct line becomes a
// single rune, so the character diff aligns whole lines.
func diffLines(before, after []string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(joinLines(before), joinLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var out []DiffLine
	for _, d := range diffs {
		kind := DiffLineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffLineAdd
		case diffmatchpatch.DiffDelete:
			kind = DiffLineRemove
		}
		for _, text := range splitLines([]byte(d.Text)) {
			out = append(out, DiffLine{Kind: kind, Content: text})
		}
	}
	return out
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// hunksOf slices lines into hunks. Changes separated by at most
// 2*contextLines unchanged lines share a hunk.
func hunksOf(lines []DiffLine) []DiffHunk {
	origAt := make([]int, len(lines))
	modAt := make([]int, len(lines))
	origLine, modLine := 1, 1
	for i, line := range lines {
		origAt[i], modAt[i] = origLine, modLine
		if line.Kind != DiffLineAdd {
			origLine++
		}
		if line.Kind != DiffLineRemove {
			modLine++
		}
	}

	var hunks []DiffHunk
	for i := 0; i < len(lines); i++ {
		if lines[i].Kind == DiffLineContext {
			continue
		}
		last := i
		for j := i + 1; j < len(lines) && j-last <= 2*contextLines+1; j++ {
			if lines[j].Kind != DiffLineContext {
				last = j
			}
		}

		start := max(0, i-contextLines)
		end := min(len(lines), last+1+contextLines)
		hunk := DiffHunk{
			OriginalStart: origAt[start],
			ModifiedStart: modAt[start],
			Lines:         slices.Clone(lines[start:end]),
		}
		for _, line := range hunk.Lines {
			if line.Kind != DiffLineAdd {
				hunk.OriginalCount++
			}
			if line.Kind != DiffLineRemove {
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)
		i = end - 1
	}
	return hunks
}
