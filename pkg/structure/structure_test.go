package structure_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/structure"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// nestedTree builds: file > class > [fn > [if > [call]], fn2].
func nestedTree() *syntax.Tree {
	b := syntax.NewBuilder(100)
	b.Open(syntax.Node{Kind: syntax.DeclClass, Name: "A"})
	b.Open(syntax.Node{Kind: syntax.DeclFunction, Name: "f()"})
	b.Open(syntax.Node{Kind: syntax.StmtIf})
	b.Add(syntax.Node{Kind: syntax.ExprCall, Name: "g"})
	b.Close()
	b.Close()
	b.Add(syntax.Node{Kind: syntax.DeclFunction, Name: "h()"})
	return b.Build()
}

func TestVisit_PreOrderDepths(t *testing.T) {
	t.Parallel()

	tree := nestedTree()

	var kinds []syntax.NodeKind
	var depths []int
	structure.Visit(tree, syntax.RootID, func(_ syntax.NodeID, n *syntax.Node, depth int) {
		kinds = append(kinds, n.Kind)
		depths = append(depths, depth)
	})

	assert.Equal(t, []syntax.NodeKind{
		syntax.NodeFile, syntax.DeclClass, syntax.DeclFunction, syntax.StmtIf, syntax.ExprCall, syntax.DeclFunction,
	}, kinds)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 2}, depths)
}

func TestVisit_InvalidStart(t *testing.T) {
	t.Parallel()

	called := false
	structure.Visit(nestedTree(), 42, func(syntax.NodeID, *syntax.Node, int) { called = true })
	assert.False(t, called)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	visited := 0
	err := structure.Walk(nestedTree(), syntax.RootID, func(_ syntax.NodeID, n *syntax.Node) error {
		visited++
		if n.Kind == syntax.StmtIf {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 4, visited)
}

func TestFindBaseCase(t *testing.T) {
	t.Parallel()

	tree := nestedTree()
	classes := structure.FindAll(tree, syntax.RootID, func(n *syntax.Node) bool { return n.Kind == syntax.DeclClass })
	require.Len(t, classes, 1)

	t.Run("finds nested call", func(t *testing.T) {
		t.Parallel()
		assert.True(t, structure.FindBaseCase(tree, classes[0], func(n *syntax.Node) bool {
			return n.Kind == syntax.ExprCall
		}))
	})

	t.Run("start node is not tested", func(t *testing.T) {
		t.Parallel()
		assert.False(t, structure.FindBaseCase(tree, classes[0], func(n *syntax.Node) bool {
			return n.Kind == syntax.DeclClass
		}))
	})

	t.Run("short circuits remaining siblings", func(t *testing.T) {
		t.Parallel()

		var visited []string
		found := structure.FindBaseCase(tree, classes[0], func(n *syntax.Node) bool {
			visited = append(visited, n.Name)
			return n.Name == "f()"
		})
		assert.True(t, found)
		assert.Equal(t, []string{"f()"}, visited)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		assert.False(t, structure.FindBaseCase(tree, classes[0], func(*syntax.Node) bool { return false }))
	})
}

// callNode builds a call to callee whose body lies between the first open
// delimiter and the next closing one.
func callNode(src, callee, open, closeDelim string) syntax.Node {
	start := strings.Index(src, callee)
	bodyStart := strings.Index(src[start:], open) + start + 1
	bodyEnd := strings.Index(src[bodyStart:], closeDelim) + bodyStart
	body := source.NewByteRange(bodyStart, bodyEnd)
	return syntax.Node{
		Kind:   syntax.ExprCall,
		Name:   callee,
		Offset: start,
		Length: bodyEnd + 1 - start,
		Body:   &body,
	}
}

func identifierTokens(src string) []syntax.Token {
	var tokens []syntax.Token
	for i := 0; i < len(src); {
		c := src[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			start := i
			for i < len(src) && (src[i] >= 'a' && src[i] <= 'z' || src[i] >= 'A' && src[i] <= 'Z') {
				i++
			}
			tokens = append(tokens, syntax.Token{Offset: start, Length: i - start, Kind: syntax.KindIdentifier})
			continue
		}
		i++
	}
	return tokens
}

func firstWhereQuery() structure.CallPairQuery {
	return structure.CallPairQuery{
		Connector:    `[\}\)]\s*\.first\b`,
		Kinds:        syntax.NewKindSet(syntax.KindIdentifier),
		CalleeSuffix: ".filter",
	}
}

func TestCallPairs_ReportsAtFirstCall(t *testing.T) {
	t.Parallel()

	src := "foo.filter { $0 > 1 }.first"
	b := syntax.NewBuilder(len(src))
	b.Add(callNode(src, "foo.filter", "{", "}"))

	m := match.New(source.NewFile("t.swift", []byte(src)), identifierTokens(src), nil)
	offsets, err := structure.CallPairs(m, b.Build(), firstWhereQuery())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, offsets)
}

func TestCallPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		calls func(src string) []syntax.Node
		want  []int
	}{
		{
			name: "empty parens",
			src:  "let x = list.filter(isOdd).first",
			calls: func(src string) []syntax.Node {
				return []syntax.Node{callNode(src, "list.filter", "(", ")")}
			},
			want: []int{8},
		},
		{
			name: "different callee",
			src:  "list.map { $0 }.first",
			calls: func(src string) []syntax.Node {
				return []syntax.Node{callNode(src, "list.map", "{", "}")}
			},
			want: nil,
		},
		{
			name: "intervening call",
			src:  "a.filter { x }.map { y }.first",
			calls: func(src string) []syntax.Node {
				return []syntax.Node{callNode(src, "a.filter", "{", "}")}
			},
			want: nil,
		},
		{
			name: "no structural confirmation",
			src:  "(a).first",
			calls: func(string) []syntax.Node {
				return nil
			},
			want: nil,
		},
		{
			name: "longer member name",
			src:  "foo.filter { $0 }.firstIndex",
			calls: func(src string) []syntax.Node {
				return []syntax.Node{callNode(src, "foo.filter", "{", "}")}
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := syntax.NewBuilder(len(tt.src))
			for _, n := range tt.calls(tt.src) {
				b.Add(n)
			}
			m := match.New(source.NewFile("t.swift", []byte(tt.src)), identifierTokens(tt.src), nil)

			offsets, err := structure.CallPairs(m, b.Build(), firstWhereQuery())
			require.NoError(t, err)
			assert.Equal(t, tt.want, offsets)
		})
	}
}

func TestCallPairs_InnermostWins(t *testing.T) {
	t.Parallel()

	// The outer call's closure contains the inner chain.
	src := "run.filter { xs.filter { $0 }.first }"
	outer := callNode(src, "run.filter", "{", "}")
	outerBody := source.NewByteRange(outer.Body.Offset, len(src)-1)
	outer.Body = &outerBody
	outer.Length = len(src)
	inner := callNode(src, "xs.filter", "{", "}")

	b := syntax.NewBuilder(len(src))
	b.Open(outer)
	b.Add(inner)

	m := match.New(source.NewFile("t.swift", []byte(src)), identifierTokens(src), nil)
	offsets, err := structure.CallPairs(m, b.Build(), firstWhereQuery())
	require.NoError(t, err)
	assert.Equal(t, []int{strings.Index(src, "xs")}, offsets)
}

func TestCallPairs_MissingBody(t *testing.T) {
	t.Parallel()

	src := "foo.filter { $0 }.first"
	b := syntax.NewBuilder(len(src))
	b.Add(syntax.Node{Kind: syntax.ExprCall, Name: "foo.filter", Offset: 0, Length: 17})

	m := match.New(source.NewFile("t.swift", []byte(src)), identifierTokens(src), nil)
	offsets, err := structure.CallPairs(m, b.Build(), firstWhereQuery())
	require.NoError(t, err)
	assert.Empty(t, offsets)
}

func TestCallPairs_InvalidConnector(t *testing.T) {
	t.Parallel()

	m := match.New(source.NewFile("t.swift", []byte("x")), nil, nil)
	_, err := structure.CallPairs(m, nestedTree(), structure.CallPairQuery{Connector: "("})
	require.Error(t, err)
}
