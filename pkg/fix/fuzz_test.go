package fix_test

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/stylint/pkg/fix"
)

func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// patch replays hunks over before, checking every context and removed line
// against it.
func patch(t *testing.T, before []string, hunks []fix.DiffHunk) []string {
	t.Helper()

	var out []string
	next := 0
	for i, h := range hunks {
		if h.OriginalStart < 1 || h.ModifiedStart < 1 || h.OriginalStart-1 < next {
			t.Fatalf("hunk %d: bad start -%d +%d", i, h.OriginalStart, h.ModifiedStart)
		}
		out = append(out, before[next:h.OriginalStart-1]...)
		next = h.OriginalStart - 1

		var origCount, modCount int
		for _, line := range h.Lines {
			if line.Kind != fix.DiffLineAdd {
				if next >= len(before) || before[next] != line.Content {
					t.Fatalf("hunk %d: line %d does not match original", i, next+1)
				}
				next++
				origCount++
			}
			if line.Kind != fix.DiffLineRemove {
				out = append(out, line.Content)
				modCount++
			}
		}
		if origCount != h.OriginalCount || modCount != h.ModifiedCount {
			t.Fatalf("hunk %d: counts -%d +%d, header says -%d +%d",
				i, origCount, modCount, h.OriginalCount, h.ModifiedCount)
		}
	}
	return append(out, before[next:]...)
}

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("let a = 1"), []byte("let a = 1\n"))
	f.Add([]byte("let a = 1\n"), []byte("let a: Int = 1\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("import UIKit\n"), []byte("import UIKit\n\nfinal class A {}\n"))
	f.Add([]byte("a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\n"), []byte("A\nb\nc\nd\ne\nf\ng\nh\ni\nj\nK\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff := fix.GenerateDiff("Fuzz.swift", original, modified)
		before, after := lines(original), lines(modified)

		if diff == nil {
			if !slices.Equal(before, after) {
				t.Fatal("nil diff for different content")
			}
			return
		}
		if !diff.HasChanges() || diff.String() == "" {
			t.Fatal("non-nil diff without hunks")
		}
		if got := patch(t, before, diff.Hunks); !slices.Equal(got, after) {
			t.Fatalf("patched original = %q, want %q", got, after)
		}
	})
}

func FuzzApply(f *testing.F) {
	f.Add([]byte("let a : Int"), 5, 7, ":")
	f.Add([]byte("x  \n"), 1, 3, "")
	f.Add([]byte("abc"), 0, 0, "// ")
	f.Add([]byte("abc"), 3, 3, "\n")

	f.Fuzz(func(t *testing.T, content []byte, start, end int, newText string) {
		if start < 0 || end < start || end > len(content) {
			return
		}

		got, applied, err := fix.Apply(content, []fix.Replacement{
			{StartOffset: start, EndOffset: end, NewText: newText},
		})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if !slices.Equal(applied, []int{start}) {
			t.Errorf("applied = %v, want [%d]", applied, start)
		}

		want := slices.Concat(content[:start], []byte(newText), content[end:])
		if !bytes.Equal(got, want) {
			t.Errorf("Apply = %q, want %q", got, want)
		}
	})
}
