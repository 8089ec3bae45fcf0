package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
)

func TestTrailingWhitespace_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		options map[string]any
		want    []int
	}{
		{name: "clean", src: "let a = 1\nlet b = 2\n"},
		{name: "spaces and tabs", src: "let a = 1  \nlet b = 2\t\n", want: []int{1, 2}},
		{name: "blank line reported by default", src: "let a = 1\n   \nlet b = 2\n", want: []int{2}},
		{
			name:    "blank line ignored",
			src:     "let a = 1\n   \nlet b = 2\n",
			options: map[string]any{"ignores_empty_lines": true},
		},
		{name: "comment ignored by default", src: "let a = 1 // note  \n"},
		{
			name:    "comment reported when asked",
			src:     "let a = 1 // note  \n",
			options: map[string]any{"ignores_comments": false},
			want:    []int{1},
		},
		{name: "inside a string literal", src: "let s = \"a  \nb\"\n"},
		{name: "no final newline", src: "let a = 1 ", want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := ruleRun{rules: []lint.Rule{NewTrailingWhitespaceRule()}, options: tt.options}
			got := lintWith(t, rr, tt.src)
			assert.Equal(t, tt.want, nilIfEmpty(lines(got)))
		})
	}
}

func TestTrailingWhitespace_Location(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewTrailingWhitespaceRule()}}
	got := lintWith(t, rr, "let a = 1  \n")

	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Location.Column)
	assert.Equal(t, 2, got[0].Range.Length)
	assert.Equal(t, TrailingWhitespaceID, got[0].RuleID)
}

func TestTrailingWhitespace_Correct(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewTrailingWhitespaceRule()}}
	assert.Equal(t, "let a = 1\n\nb\n", correctWith(t, rr, "let a = 1  \n \t\nb\t\n"))
}

func TestLineLength_Detect(t *testing.T) {
	t.Parallel()

	options := map[string]any{"warning": 10, "error": 20}
	src := "short\n" +
		"let abc = 12345\n" +
		"let abcdefghij = 123456789\n"

	rr := ruleRun{rules: []lint.Rule{NewLineLengthRule()}, options: options}
	got := lintWith(t, rr, src)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Location.Line)
	assert.Equal(t, config.SeverityWarning, got[0].Severity)
	assert.Equal(t, "Line should be 10 characters or less; currently it has 15 characters", got[0].Reason)

	assert.Equal(t, 3, got[1].Location.Line)
	assert.Equal(t, config.SeverityError, got[1].Severity)
	assert.Equal(t, "Line should be 20 characters or less; currently it has 26 characters", got[1].Reason)
}

func TestLineLength_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		options map[string]any
		want    int
	}{
		{
			name:    "counts characters not bytes",
			src:     "ééééééééé\n",
			options: map[string]any{"warning": 10},
		},
		{
			name:    "url counted by default",
			src:     "// see https://example.com/a/long/path\n",
			options: map[string]any{"warning": 10},
			want:    1,
		},
		{
			name:    "url ignored",
			src:     "// see https://example.com/a/long/path\n",
			options: map[string]any{"warning": 10, "ignores_urls": true},
		},
		{
			name:    "comment ignored",
			src:     "// a rather long comment line\n",
			options: map[string]any{"warning": 10, "ignores_comments": true},
		},
		{
			name:    "code with trailing comment still counts",
			src:     "let a = 1 // a rather long comment\n",
			options: map[string]any{"warning": 10, "ignores_comments": true},
			want:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := ruleRun{rules: []lint.Rule{NewLineLengthRule()}, options: tt.options}
			assert.Len(t, lintWith(t, rr, tt.src), tt.want)
		})
	}
}

func TestColon_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []int
	}{
		{name: "well formed", src: "let a: Int = 1\nfunc f(x: Int) {}\n"},
		{name: "no space after", src: "let abc:Int = 1\n", want: []int{1}},
		{name: "space before", src: "let abc : Int = 1\n", want: []int{1}},
		{name: "two spaces after", src: "let abc:  Int = 1\n", want: []int{1}},
		{name: "parameter", src: "func f(x:Int) {}\n", want: []int{1}},
		{name: "array type", src: "let xs:[Int] = []\n", want: []int{1}},
		{name: "ternary", src: "let x = a ? b : c\n"},
		{name: "in comment", src: "// let abc:Int\n"},
		{name: "in string", src: "let s = \"abc:Int\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := ruleRun{rules: []lint.Rule{NewColonRule()}}
			assert.Equal(t, tt.want, nilIfEmpty(lines(lintWith(t, rr, tt.src))))
		})
	}
}

func TestColon_Correct(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewColonRule()}}
	got := correctWith(t, rr, "let abc:Int = 1\nlet d : Int = 2\nlet e:  [Int] = []\n")
	assert.Equal(t, "let abc: Int = 1\nlet d: Int = 2\nlet e: [Int] = []\n", got)
}

func TestTodo_Detect(t *testing.T) {
	t.Parallel()

	src := "// TODO: fix this later\n" +
		"let TODO = 1\n" +
		"let s = \"FIXME\"\n" +
		"/// FIXME\n" +
		"/* TODO: block */\n" +
		"// TODO: a message that goes on for quite a bit longer than thirty characters\n"

	rr := ruleRun{rules: []lint.Rule{NewTodoRule()}}
	got := lintWith(t, rr, src)

	require.Len(t, got, 4)
	assert.Equal(t, []int{1, 4, 5, 6}, lines(got))
	assert.Equal(t, "TODOs should be resolved (fix this later)", got[0].Reason)
	assert.Equal(t, 4, got[0].Range.Length)
	assert.Equal(t, "FIXMEs should be resolved", got[1].Reason)
	assert.Equal(t, "TODOs should be resolved (block)", got[2].Reason)
	assert.Equal(t, "TODOs should be resolved (a message that goes on for qui...)", got[3].Reason)
}

func TestVoidReturn_Detect(t *testing.T) {
	t.Parallel()

	src := "func f() -> () {}\n" +
		"let g: () -> ( ) = {}\n" +
		"let h: () -> () -> Void\n" +
		"// func k() -> ()\n" +
		"func m() -> Void {}\n"

	rr := ruleRun{rules: []lint.Rule{NewVoidReturnRule()}}
	assert.Equal(t, []int{1, 2}, lines(lintWith(t, rr, src)))
}

func TestVoidReturn_Correct(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewVoidReturnRule()}}
	got := correctWith(t, rr, "func f() -> () {}\nlet g: () -> ( ) = {}\n")
	assert.Equal(t, "func f() -> Void {}\nlet g: () -> Void = {}\n", got)
}

func nilIfEmpty(xs []int) []int {
	if len(xs) == 0 {
		return nil
	}
	return xs
}
