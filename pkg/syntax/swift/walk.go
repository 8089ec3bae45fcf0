package swift

import (
	"bytes"
	"sort"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

var numberTypes = map[string]bool{
	"integer_literal": true,
	"real_literal":    true,
	"hex_literal":     true,
	"oct_literal":     true,
	"bin_literal":     true,
}

var stringTypes = map[string]bool{
	"line_string_literal":       true,
	"multi_line_string_literal": true,
	"raw_string_literal":        true,
}

var statementKinds = map[string]syntax.NodeKind{
	"if_statement":           syntax.StmtIf,
	"guard_statement":        syntax.StmtGuard,
	"for_statement":          syntax.StmtFor,
	"while_statement":        syntax.StmtWhile,
	"repeat_while_statement": syntax.StmtRepeat,
	"switch_statement":       syntax.StmtSwitch,
	"do_statement":           syntax.StmtDo,
}

var declarationKinds = map[string]syntax.NodeKind{
	"protocol_declaration":  syntax.DeclProtocol,
	"function_declaration":  syntax.DeclFunction,
	"init_declaration":      syntax.DeclInit,
	"deinit_declaration":    syntax.DeclDeinit,
	"property_declaration":  syntax.DeclVar,
	"typealias_declaration": syntax.DeclTypealias,
	"subscript_declaration": syntax.DeclSubscript,
	"enum_entry":            syntax.DeclEnumCase,
}

var typeDeclarationKinds = map[string]syntax.NodeKind{
	"class":     syntax.DeclClass,
	"struct":    syntax.DeclStruct,
	"enum":      syntax.DeclEnum,
	"extension": syntax.DeclExtension,
	"actor":     syntax.DeclActor,
}

// bodyTypes are the children that carry a declaration's braces.
var bodyTypes = map[string]bool{
	"class_body":        true,
	"enum_class_body":   true,
	"protocol_body":     true,
	"function_body":     true,
	"computed_property": true,
}

type walker struct {
	contents []byte
	tokens   []syntax.Token
	builder  *syntax.Builder
}

func newWalker(contents []byte) *walker {
	return &walker{
		contents: contents,
		builder:  syntax.NewBuilder(len(contents)),
	}
}

func (w *walker) text(n *sitter.Node) string {
	return string(w.contents[n.StartByte():n.EndByte()])
}

func (w *walker) emit(start, end int, kind syntax.Kind) {
	if end <= start {
		return
	}
	w.tokens = append(w.tokens, syntax.Token{Offset: start, Length: end - start, Kind: kind})
}

// finishTokens orders the tokens and drops any that overlap an earlier one.
func (w *walker) finishTokens() []syntax.Token {
	sort.SliceStable(w.tokens, func(i, j int) bool {
		return w.tokens[i].Offset < w.tokens[j].Offset
	})

	out := w.tokens[:0]
	prevEnd := 0
	for _, tok := range w.tokens {
		if tok.Offset < prevEnd {
			continue
		}
		out = append(out, tok)
		prevEnd = tok.End()
	}
	return out
}

func (w *walker) walk(n *sitter.Node) {
	typ := n.Type()

	switch {
	case typ == "comment" || typ == "multiline_comment":
		w.emit(int(n.StartByte()), int(n.EndByte()), w.commentKind(n))
		return
	case stringTypes[typ]:
		w.walkString(n)
		return
	case numberTypes[typ]:
		w.emit(int(n.StartByte()), int(n.EndByte()), syntax.KindNumber)
		return
	case typ == "simple_identifier":
		w.emit(int(n.StartByte()), int(n.EndByte()), syntax.KindIdentifier)
		return
	case typ == "type_identifier":
		w.emit(int(n.StartByte()), int(n.EndByte()), syntax.KindTypeIdentifier)
		return
	case typ == "attribute":
		w.walkAttribute(n)
		return
	case n.ChildCount() == 0:
		w.emitLeaf(n)
		return
	}

	if w.openNode(n) {
		defer w.builder.Close()
	}
	w.walkChildren(n)
}

func (w *walker) walkChildren(n *sitter.Node) {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if child := n.Child(i); child != nil {
			w.walk(child)
		}
	}
}

// emitLeaf classifies anonymous leaves: words are keywords and "#"-words are
// pound directives. Punctuation produces no token.
func (w *walker) emitLeaf(n *sitter.Node) {
	if n.IsMissing() {
		return
	}
	text := w.text(n)
	start, end := int(n.StartByte()), int(n.EndByte())
	switch {
	case text == "":
		return
	case text[0] == '#' && len(text) > 1 && isWord(text[1:]):
		w.emit(start, end, syntax.KindPoundDirective)
	case !n.IsNamed() && isWord(text):
		w.emit(start, end, syntax.KindKeyword)
	}
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' {
			return false
		}
	}
	return s != ""
}

func (w *walker) commentKind(n *sitter.Node) syntax.Kind {
	text := w.contents[n.StartByte():n.EndByte()]
	switch {
	case bytes.HasPrefix(text, []byte("///")) && !bytes.HasPrefix(text, []byte("////")):
		return syntax.KindDocComment
	case bytes.HasPrefix(text, []byte("/**")) && !bytes.HasPrefix(text, []byte("/**/")):
		return syntax.KindDocComment
	case bytes.HasPrefix(bytes.TrimSpace(text[2:]), []byte("MARK:")):
		return syntax.KindCommentMark
	default:
		return syntax.KindComment
	}
}

// walkString emits string segments around interpolations and classifies the
// interpolated expressions themselves.
func (w *walker) walkString(n *sitter.Node) {
	pos := int(n.StartByte())
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || child.Type() != "interpolated_expression" {
			continue
		}
		w.emit(pos, int(child.StartByte()), syntax.KindString)
		w.walk(child)
		pos = int(child.EndByte())
	}
	w.emit(pos, int(n.EndByte()), syntax.KindString)
}

func (w *walker) walkAttribute(n *sitter.Node) {
	// "@" plus the attribute name; arguments are classified normally.
	start := int(n.StartByte())
	end := start
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "@" || child.Type() == "user_type" {
			end = int(child.EndByte())
			continue
		}
		w.walk(child)
	}
	w.emit(start, end, syntax.KindAttributeBuiltin)
}

// openNode opens a structure node for n when n is a declaration, call,
// closure or statement. It reports whether a node was opened.
func (w *walker) openNode(n *sitter.Node) bool {
	typ := n.Type()

	var node syntax.Node
	switch {
	case typ == "class_declaration":
		node = w.typeDeclaration(n)
	case typ == "call_expression":
		var ok bool
		if node, ok = w.callExpression(n); !ok {
			return false
		}
	case typ == "lambda_literal":
		node = syntax.Node{Kind: syntax.ExprClosure, Body: w.braceBody(n)}
	case declarationKinds[typ] != "":
		node = w.declaration(n, declarationKinds[typ])
	case statementKinds[typ] != "":
		node = syntax.Node{Kind: statementKinds[typ], Body: w.braceBody(n)}
	default:
		return false
	}

	node.Offset = int(n.StartByte())
	node.Length = int(n.EndByte()) - node.Offset
	w.builder.Open(node)
	return true
}

func (w *walker) typeDeclaration(n *sitter.Node) syntax.Node {
	kind := syntax.DeclClass
	if declKind := n.ChildByFieldName("declaration_kind"); declKind != nil {
		if k, ok := typeDeclarationKinds[declKind.Type()]; ok {
			kind = k
		}
	} else {
		count := int(n.ChildCount())
		for i := 0; i < count; i++ {
			if k, ok := typeDeclarationKinds[n.Child(i).Type()]; ok {
				kind = k
				break
			}
		}
	}

	node := w.declaration(n, kind)
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child.Type() == "inheritance_specifier" {
			node.InheritedTypes = append(node.InheritedTypes, strings.TrimSpace(w.text(child)))
		}
	}
	return node
}

func (w *walker) declaration(n *sitter.Node, kind syntax.NodeKind) syntax.Node {
	node := syntax.Node{Kind: kind, Body: w.braceBody(n)}

	if name := n.ChildByFieldName("name"); name != nil {
		node.Name = w.text(name)
	}
	switch kind {
	case syntax.DeclFunction:
		node.Name += w.parameterLabels(n)
	case syntax.DeclInit:
		node.Name = "init" + w.parameterLabels(n)
	case syntax.DeclDeinit:
		node.Name = "deinit"
	}

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		switch child.Type() {
		case "modifiers":
			mods := int(child.NamedChildCount())
			for j := 0; j < mods; j++ {
				node.Attributes = append(node.Attributes, strings.TrimSpace(w.text(child.NamedChild(j))))
			}
		case "attribute":
			node.Attributes = append(node.Attributes, strings.TrimSpace(w.text(child)))
		}
	}
	return node
}

// parameterLabels renders "(a:_:)" from a function's parameters.
func (w *walker) parameterLabels(n *sitter.Node) string {
	var sb strings.Builder
	sb.WriteByte('(')
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child.Type() != "parameter" {
			continue
		}
		label := child.ChildByFieldName("external_name")
		if label == nil {
			label = child.ChildByFieldName("name")
		}
		if label != nil {
			sb.WriteString(w.text(label))
		} else {
			sb.WriteByte('_')
		}
		sb.WriteByte(':')
	}
	sb.WriteByte(')')
	return sb.String()
}

// callExpression builds a call node named after its callee, whose body spans
// the argument list and trailing closures.
func (w *walker) callExpression(n *sitter.Node) (syntax.Node, bool) {
	if n.ChildCount() < 2 {
		return syntax.Node{}, false
	}
	callee := n.Child(0)

	var first, last *sitter.Node
	count := int(n.ChildCount())
	for i := 1; i < count; i++ {
		child := n.Child(i)
		if child.Type() != "call_suffix" {
			continue
		}
		if first == nil {
			first = child
		}
		last = child
	}

	node := syntax.Node{
		Kind: syntax.ExprCall,
		Name: strings.Join(strings.Fields(w.text(callee)), ""),
	}
	if first != nil {
		start, end := int(first.StartByte())+1, int(last.EndByte())-1
		if end >= start {
			body := source.NewByteRange(start, end)
			node.Body = &body
		}
	}
	return node, true
}

// braceBody returns the range between the first "{" and the last "}" of n or
// of its body child.
func (w *walker) braceBody(n *sitter.Node) *source.ByteRange {
	open, closeAt := -1, -1
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		switch {
		case child.Type() == "{" && open < 0:
			open = int(child.EndByte())
		case child.Type() == "}":
			closeAt = int(child.StartByte())
		case bodyTypes[child.Type()] && open < 0:
			if body := w.braceBody(child); body != nil {
				return body
			}
		}
	}
	if open < 0 || closeAt < open {
		return nil
	}
	body := source.NewByteRange(open, closeAt)
	return &body
}
