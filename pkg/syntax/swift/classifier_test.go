package swift_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/structure"
	"github.com/yaklabco/stylint/pkg/syntax"
	"github.com/yaklabco/stylint/pkg/syntax/swift"
)

func classify(t *testing.T, src string) *syntax.Classification {
	t.Helper()

	result, err := swift.New().Classify(context.Background(), "test.swift", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, syntax.ValidateTokens(result.Tokens, len(src)))
	return result
}

func kindAt(tokens []syntax.Token, offset int) syntax.Kind {
	for _, tok := range syntax.TokensOverlapping(tokens, source.NewByteRange(offset, offset)) {
		return tok.Kind
	}
	return ""
}

func TestClassify_Tokens(t *testing.T) {
	t.Parallel()

	src := "/// Docs\nlet abc: Int = 42 // note\nlet s = \"hi \\(abc) there\"\n"
	result := classify(t, src)

	tests := []struct {
		name   string
		needle string
		want   syntax.Kind
	}{
		{"doc comment", "/// Docs", syntax.KindDocComment},
		{"keyword", "let abc", syntax.KindKeyword},
		{"identifier", "abc:", syntax.KindIdentifier},
		{"type identifier", "Int", syntax.KindTypeIdentifier},
		{"number", "42", syntax.KindNumber},
		{"line comment", "// note", syntax.KindComment},
		{"string", "hi ", syntax.KindString},
		{"interpolated identifier", "abc) there", syntax.KindIdentifier},
		{"string after interpolation", "there", syntax.KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			offset := strings.Index(src, tt.needle)
			require.GreaterOrEqual(t, offset, 0)
			assert.Equal(t, tt.want, kindAt(result.Tokens, offset))
		})
	}
}

func TestClassify_PunctuationHasNoToken(t *testing.T) {
	t.Parallel()

	src := "let abc: Int = 1\n"
	result := classify(t, src)

	assert.Equal(t, syntax.Kind(""), kindAt(result.Tokens, strings.Index(src, ":")))
	assert.Equal(t, syntax.Kind(""), kindAt(result.Tokens, strings.Index(src, "=")))
}

func TestClassify_Structure(t *testing.T) {
	t.Parallel()

	src := `class Foo: Bar, Baz {
    override func viewDidLoad() {
        super.viewDidLoad()
        if true {
            print(1)
        }
    }
}
struct S {}
`
	result := classify(t, src)
	tree := result.Tree

	root, ok := tree.Root()
	require.True(t, ok)

	class := structure.FindAll(tree, root, func(n *syntax.Node) bool { return n.Kind == syntax.DeclClass })
	require.Len(t, class, 1)
	classNode := tree.Node(class[0])
	assert.Equal(t, "Foo", classNode.Name)
	assert.Equal(t, []string{"Bar", "Baz"}, classNode.InheritedTypes)
	require.NotNil(t, classNode.Body)

	fns := structure.FindAll(tree, root, func(n *syntax.Node) bool { return n.Kind == syntax.DeclFunction })
	require.Len(t, fns, 1)
	fn := tree.Node(fns[0])
	assert.Equal(t, "viewDidLoad()", fn.Name)
	assert.True(t, fn.HasAttribute("override"))
	require.NotNil(t, fn.Body)
	assert.True(t, classNode.Body.ContainsRange(*fn.Body))

	calls := structure.FindAll(tree, root, func(n *syntax.Node) bool { return n.Kind == syntax.ExprCall })
	var names []string
	for _, id := range calls {
		names = append(names, tree.Node(id).Name)
	}
	assert.Equal(t, []string{"super.viewDidLoad", "print"}, names)

	ifs := structure.FindAll(tree, root, func(n *syntax.Node) bool { return n.Kind == syntax.StmtIf })
	assert.Len(t, ifs, 1)

	structs := structure.FindAll(tree, root, func(n *syntax.Node) bool { return n.Kind == syntax.DeclStruct })
	require.Len(t, structs, 1)
	assert.Equal(t, "S", tree.Node(structs[0]).Name)
}

func TestClassify_CallBody(t *testing.T) {
	t.Parallel()

	src := "let x = foo.filter { $0 > 1 }.first\n"
	result := classify(t, src)

	root, _ := result.Tree.Root()
	calls := structure.FindAll(result.Tree, root, func(n *syntax.Node) bool { return n.Kind == syntax.ExprCall })
	require.Len(t, calls, 1)

	call := result.Tree.Node(calls[0])
	assert.Equal(t, "foo.filter", call.Name)
	assert.Equal(t, strings.Index(src, "foo"), call.Offset)
	require.NotNil(t, call.Body)
	assert.Equal(t, strings.Index(src, "{")+1, call.Body.Offset)
	assert.Equal(t, strings.Index(src, "}"), call.Body.End())
}

func TestClassify_Errors(t *testing.T) {
	t.Parallel()

	t.Run("syntax errors are recovered", func(t *testing.T) {
		t.Parallel()

		result, err := swift.New().Classify(context.Background(), "bad.swift", []byte("func ( {"))
		require.NoError(t, err)
		assert.True(t, result.HasErrors)
	})

	t.Run("file too large", func(t *testing.T) {
		t.Parallel()

		_, err := swift.New(swift.WithMaxFileSize(4)).Classify(context.Background(), "big.swift", []byte("let x = 1"))
		require.ErrorIs(t, err, swift.ErrFileTooLarge)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		t.Parallel()

		_, err := swift.New().Classify(context.Background(), "bin.swift", []byte{0xff, 0xfe})
		require.ErrorIs(t, err, syntax.ErrUnsupported)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := swift.New().Classify(ctx, "a.swift", []byte("let x = 1"))
		require.ErrorIs(t, err, context.Canceled)
	})
}
