package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// closing returns the offset of the delimiter closing the one at open.
func closing(src string, open int) int {
	pairs := map[byte]byte{'(': ')', '{': '}', '[': ']'}
	want := pairs[src[open]]
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case src[open]:
			depth++
		case want:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(src)
}

// delimited builds a node starting at the nth occurrence of head whose body
// is the first (...) or {...} group after it.
func delimited(src, head string, nth int, kind syntax.NodeKind, name string) syntax.Node {
	offset, _ := span(src, head, nth)
	open := offset + strings.IndexAny(src[offset:], "({")
	if kind != syntax.ExprCall {
		open = offset + strings.IndexByte(src[offset:], '{')
	}
	end := closing(src, open)
	body := source.NewByteRange(open+1, end)
	return syntax.Node{
		Kind:   kind,
		Offset: offset,
		Length: end + 1 - offset,
		Body:   &body,
		Name:   name,
	}
}

func TestFirstWhere_Detect(t *testing.T) {
	t.Parallel()

	src := "let x = list.filter { $0 > 1 }.first\n" +
		"let y = list.filter { $0 > 1 }.last\n" +
		"let z = list.first\n" +
		"let w = list.filter(isOdd).first\n"

	tree := func(b *syntax.Builder, src string) {
		for i := range 3 {
			b.Add(delimited(src, "list.filter", i, syntax.ExprCall, "list.filter"))
		}
	}

	rr := ruleRun{rules: []lint.Rule{NewFirstWhereRule()}, tree: tree}
	got := lintWith(t, rr, src)

	assert.Equal(t, []int{1, 4}, lines(got))
	assert.Equal(t, 9, got[0].Location.Column)
}

func TestFirstWhere_NeedsCallNode(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewFirstWhereRule()}}
	assert.Empty(t, lintWith(t, rr, "let x = list.filter { $0 > 1 }.first\n"))
}

func TestSortedFirstLast_Detect(t *testing.T) {
	t.Parallel()

	src := "let a = xs.sorted().first\n" +
		"let b = xs.sorted { $0 < $1 }.last\n" +
		"let c = xs.sorted()\n" +
		"let d = xs.sorted().count\n"

	tree := func(b *syntax.Builder, src string) {
		for i := range 4 {
			b.Add(delimited(src, "xs.sorted", i, syntax.ExprCall, "xs.sorted"))
		}
	}

	rr := ruleRun{rules: []lint.Rule{NewSortedFirstLastRule()}, tree: tree}
	got := lintWith(t, rr, src)

	assert.Equal(t, []int{1, 2}, lines(got))
	assert.Contains(t, got[0].Reason, "min()")
}

const nestingSrc = `class A {
    struct B {
        enum C {
        }
    }
}
extension A {
    struct D {
        struct E {
        }
    }
}
func f() {
    func g() {
        func h() {
            func i() {
            }
        }
    }
}
`

func nestingTree(b *syntax.Builder, src string) {
	open := func(head string, kind syntax.NodeKind) {
		b.Open(delimited(src, head, 0, kind, ""))
	}
	closeN := func(n int) {
		for range n {
			b.Close()
		}
	}

	open("class A", syntax.DeclClass)
	open("struct B", syntax.DeclStruct)
	open("enum C", syntax.DeclEnum)
	closeN(3)

	open("extension A", syntax.DeclExtension)
	open("struct D", syntax.DeclStruct)
	open("struct E", syntax.DeclStruct)
	closeN(3)

	open("func f", syntax.DeclFunction)
	open("func g", syntax.DeclFunction)
	open("func h", syntax.DeclFunction)
	open("func i", syntax.DeclFunction)
	closeN(4)
}

func TestNesting_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options map[string]any
		want    []int
	}{
		{name: "defaults", want: []int{3, 16}},
		{name: "deeper types allowed", options: map[string]any{"type_level": 2}, want: []int{16}},
		{name: "deeper functions allowed", options: map[string]any{"function_level": 3}, want: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := ruleRun{rules: []lint.Rule{NewNestingRule()}, tree: nestingTree, options: tt.options}
			got := lintWith(t, rr, nestingSrc)
			assert.Equal(t, tt.want, nilIfEmpty(lines(got)))
		})
	}
}

func TestNesting_Reasons(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewNestingRule()}, tree: nestingTree}
	got := lintWith(t, rr, nestingSrc)

	require.Len(t, got, 2)
	assert.Equal(t, "Types should be nested at most 1 level deep", got[0].Reason)
	assert.Equal(t, "Functions should be nested at most 2 levels deep", got[1].Reason)
}

const superCallSrc = `class VC: UIViewController {
    override func viewDidLoad() {
        super.viewDidLoad()
    }
    override func viewWillAppear(_ animated: Bool) {
    }
    override func viewDidAppear(_ animated: Bool) {
        super.viewDidAppear(animated)
        super.viewDidAppear(animated)
    }
    func viewWillDisappear(_ animated: Bool) {
    }
    override func custom() {
    }
}
`

func superCallTree(b *syntax.Builder, src string) {
	fn := func(head, name string, override bool) {
		n := delimited(src, head, 0, syntax.DeclFunction, name)
		if override {
			n.Attributes = []string{"override"}
		}
		b.Open(n)
	}
	call := func(callee string, nth int) {
		b.Add(delimited(src, callee, nth, syntax.ExprCall, callee))
	}

	b.Open(delimited(src, "class VC", 0, syntax.DeclClass, "VC"))

	fn("override func viewDidLoad", "viewDidLoad()", true)
	call("super.viewDidLoad", 0)
	b.Close()

	fn("override func viewWillAppear", "viewWillAppear(_:)", true)
	b.Close()

	fn("override func viewDidAppear", "viewDidAppear(_:)", true)
	call("super.viewDidAppear", 0)
	call("super.viewDidAppear", 1)
	b.Close()

	fn("func viewWillDisappear", "viewWillDisappear(_:)", false)
	b.Close()

	fn("override func custom", "custom()", true)
	b.Close()

	b.Close()
}

func TestOverriddenSuperCall_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options map[string]any
		want    []int
	}{
		{name: "defaults", want: []int{5, 7}},
		{
			name:    "excluded",
			options: map[string]any{"excluded": []any{"viewWillAppear(_:)"}},
			want:    []int{7},
		},
		{
			name:    "custom list only",
			options: map[string]any{"included": []any{"custom()"}},
			want:    []int{13},
		},
		{
			name:    "defaults plus custom",
			options: map[string]any{"included": []any{"*", "custom()"}},
			want:    []int{5, 7, 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := ruleRun{rules: []lint.Rule{NewOverriddenSuperCallRule()}, tree: superCallTree, options: tt.options}
			got := lintWith(t, rr, superCallSrc)
			assert.Equal(t, tt.want, lines(got))
		})
	}
}

func TestOverriddenSuperCall_Reasons(t *testing.T) {
	t.Parallel()

	rr := ruleRun{rules: []lint.Rule{NewOverriddenSuperCallRule()}, tree: superCallTree}
	got := lintWith(t, rr, superCallSrc)

	require.Len(t, got, 2)
	assert.Equal(t, "Method 'viewWillAppear(_:)' should call to super function", got[0].Reason)
	assert.Equal(t, "Method 'viewDidAppear(_:)' should call to super only once", got[1].Reason)
}

func TestOverriddenSuperCall_OptIn(t *testing.T) {
	t.Parallel()

	assert.True(t, NewOverriddenSuperCallRule().Describe().OptIn)
}

func TestSuperfluousDisableCommand_Audit(t *testing.T) {
	t.Parallel()

	src := "// stylint:disable:next todo\n" +
		"let a = 1\n" +
		"// stylint:disable:next todo\n" +
		"// TODO: used\n" +
		"// stylint:disable:next colon\n" +
		"let b = 2\n" +
		"// stylint:disable:next all\n" +
		"let c = 3\n"

	rr := ruleRun{rules: []lint.Rule{NewTodoRule(), NewSuperfluousDisableCommandRule()}}
	got := lintWith(t, rr, src)

	require.Len(t, got, 1)
	assert.Equal(t, SuperfluousDisableCommandID, got[0].RuleID)
	assert.Equal(t, 1, got[0].Location.Line)
	assert.Contains(t, got[0].Reason, "'todo'")
}
