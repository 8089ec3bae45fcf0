package syntax

import (
	"strings"

	"github.com/yaklabco/stylint/pkg/source"
)

// NodeKind classifies a structure node. Kinds are namespaced by category:
// "decl.", "expr." or "stmt.".
type NodeKind string

// Node kinds produced by classifiers.
const (
	NodeFile NodeKind = "file"

	DeclClass     NodeKind = "decl.class"
	DeclStruct    NodeKind = "decl.struct"
	DeclEnum      NodeKind = "decl.enum"
	DeclExtension NodeKind = "decl.extension"
	DeclActor     NodeKind = "decl.actor"
	DeclProtocol  NodeKind = "decl.protocol"
	DeclFunction  NodeKind = "decl.function"
	DeclInit      NodeKind = "decl.init"
	DeclDeinit    NodeKind = "decl.deinit"
	DeclVar       NodeKind = "decl.var"
	DeclTypealias NodeKind = "decl.typealias"
	DeclEnumCase  NodeKind = "decl.enumcase"
	DeclSubscript NodeKind = "decl.subscript"

	ExprCall    NodeKind = "expr.call"
	ExprClosure NodeKind = "expr.closure"

	StmtIf     NodeKind = "stmt.if"
	StmtGuard  NodeKind = "stmt.guard"
	StmtFor    NodeKind = "stmt.for"
	StmtWhile  NodeKind = "stmt.while"
	StmtRepeat NodeKind = "stmt.repeatwhile"
	StmtSwitch NodeKind = "stmt.switch"
	StmtDo     NodeKind = "stmt.do"
)

// IsDecl reports whether k is a declaration kind.
func (k NodeKind) IsDecl() bool { return strings.HasPrefix(string(k), "decl.") }

// IsExpr reports whether k is an expression kind.
func (k NodeKind) IsExpr() bool { return strings.HasPrefix(string(k), "expr.") }

// IsStmt reports whether k is a statement kind.
func (k NodeKind) IsStmt() bool { return strings.HasPrefix(string(k), "stmt.") }

// IsType reports whether k declares a nominal type.
func (k NodeKind) IsType() bool {
	switch k {
	case DeclClass, DeclStruct, DeclEnum, DeclActor, DeclProtocol, DeclExtension:
		return true
	default:
		return false
	}
}

// NodeID indexes a node within its Tree.
type NodeID int

// RootID is the ID of the file node of every non-empty Tree.
const RootID NodeID = 0

// Node is one declaration, expression or statement.
type Node struct {
	Kind NodeKind

	// Offset and Length give the node's full byte span.
	Offset int
	Length int

	// Body is the byte range between the node's delimiters ({...} or (...)),
	// or nil when the node has none.
	Body *source.ByteRange

	// Name is the declared name, or the callee text for calls.
	Name string

	// Attributes holds modifiers and attributes such as "override" or "@objc".
	Attributes []string

	// InheritedTypes lists the types named in the inheritance clause.
	InheritedTypes []string

	Children []NodeID
}

// Range returns the node's full byte span.
func (n *Node) Range() source.ByteRange {
	return source.ByteRange{Offset: n.Offset, Length: n.Length}
}

// HasAttribute reports whether the node carries the given attribute.
func (n *Node) HasAttribute(attr string) bool {
	for _, a := range n.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// Tree is an arena of structure nodes with index-based child lists.
// A Tree is read-only once built and safe for concurrent use.
type Tree struct {
	Nodes []Node
}

// Root returns the root node ID, or false for an empty tree.
func (t *Tree) Root() (NodeID, bool) {
	if t == nil || len(t.Nodes) == 0 {
		return 0, false
	}
	return RootID, true
}

// Node returns the node with the given ID, or nil if out of range.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id < 0 || int(id) >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// Builder constructs a Tree in pre-order.
type Builder struct {
	tree  Tree
	stack []NodeID
}

// NewBuilder returns a Builder whose root node spans contentLen bytes.
func NewBuilder(contentLen int) *Builder {
	b := &Builder{}
	b.tree.Nodes = append(b.tree.Nodes, Node{Kind: NodeFile, Length: contentLen})
	b.stack = append(b.stack, RootID)
	return b
}

// Open appends n as a child of the current node and makes it current.
func (b *Builder) Open(n Node) NodeID {
	id := b.Add(n)
	b.stack = append(b.stack, id)
	return id
}

// Add appends n as a child of the current node without descending into it.
func (b *Builder) Add(n Node) NodeID {
	id := NodeID(len(b.tree.Nodes))
	n.Children = nil
	b.tree.Nodes = append(b.tree.Nodes, n)
	parent := b.stack[len(b.stack)-1]
	b.tree.Nodes[parent].Children = append(b.tree.Nodes[parent].Children, id)
	return id
}

// Close returns to the parent of the current node. Closing the root is a no-op.
func (b *Builder) Close() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// Current returns the ID of the node new children are added to.
func (b *Builder) Current() NodeID {
	return b.stack[len(b.stack)-1]
}

// Build returns the finished tree. The Builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	tree := b.tree
	return &tree
}
