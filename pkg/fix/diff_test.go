package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/fix"
)

func TestGenerateDiff_NoChanges(t *testing.T) {
	t.Parallel()

	assert.Nil(t, fix.GenerateDiff("a.swift", nil, nil))
	assert.Nil(t, fix.GenerateDiff("a.swift", []byte("x\n"), []byte("x\n")))

	var diff *fix.Diff
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
}

func TestGenerateDiff_SingleLineChange(t *testing.T) {
	t.Parallel()

	original := []byte("import Foundation\n\nlet a : Int = 1\nlet b = 2\n")
	modified := []byte("import Foundation\n\nlet a: Int = 1\nlet b = 2\n")

	diff := fix.GenerateDiff("Sources/a.swift", original, modified)
	require.NotNil(t, diff)
	assert.True(t, diff.HasChanges())
	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	require.Len(t, diff.Hunks, 1)

	hunk := diff.Hunks[0]
	assert.Equal(t, 1, hunk.OriginalStart)
	assert.Equal(t, 4, hunk.OriginalCount)
	assert.Equal(t, 4, hunk.ModifiedCount)

	want := strings.Join([]string{
		"--- a/Sources/a.swift",
		"+++ b/Sources/a.swift",
		"@@ -1,4 +1,4 @@",
		" import Foundation",
		" ",
		"-let a : Int = 1",
		"+let a: Int = 1",
		" let b = 2",
		"",
	}, "\n")
	assert.Equal(t, want, diff.String())
}

func TestGenerateDiff_SeparateHunks(t *testing.T) {
	t.Parallel()

	var orig, mod []string
	for i := range 30 {
		line := "let x = 0"
		orig = append(orig, line)
		if i == 2 || i == 25 {
			line = "let y = 0"
		}
		mod = append(mod, line)
	}

	diff := fix.GenerateDiff("a.swift",
		[]byte(strings.Join(orig, "\n")+"\n"),
		[]byte(strings.Join(mod, "\n")+"\n"))
	require.NotNil(t, diff)
	assert.Len(t, diff.Hunks, 2)
	assert.Equal(t, 2, diff.Additions)
	assert.Equal(t, 2, diff.Deletions)
}

func TestGenerateDiff_AddedLines(t *testing.T) {
	t.Parallel()

	diff := fix.GenerateDiff("a.swift", []byte("a\nb\n"), []byte("a\nb\nc\n"))
	require.NotNil(t, diff)
	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 0, diff.Deletions)
	assert.Contains(t, diff.String(), "+c\n")
}
