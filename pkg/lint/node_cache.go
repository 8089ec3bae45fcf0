package lint

import (
	"github.com/yaklabco/stylint/pkg/structure"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// NodeCache provides pre-computed collections of structure nodes by kind.
//
// Rules that look for a node kind (functions, calls, type declarations)
// share one walk of the tree per file instead of walking it once each.
//
// # IMPORTANT: Do Not Mutate Returned Slices
//
// The slices returned by NodeCache methods are shared across all rules.
// Copy before sorting or filtering in place.
//
// # Thread Safety
//
// NodeCache is NOT thread-safe. Rules for one file execute sequentially;
// each file gets its own Snapshot and NodeCache.
type NodeCache struct {
	tree   *syntax.Tree
	byKind map[syntax.NodeKind][]syntax.NodeID
	built  bool
}

func newNodeCache(tree *syntax.Tree) *NodeCache {
	return &NodeCache{tree: tree}
}

// build walks the tree once and categorizes all nodes by kind.
func (nc *NodeCache) build() {
	if nc.built {
		return
	}
	nc.built = true
	nc.byKind = make(map[syntax.NodeKind][]syntax.NodeID)

	root, ok := nc.tree.Root()
	if !ok {
		return
	}
	structure.Visit(nc.tree, root, func(id syntax.NodeID, node *syntax.Node, _ int) {
		nc.byKind[node.Kind] = append(nc.byKind[node.Kind], id)
	})
}

// Kind returns all nodes of kind k in document order. Do not mutate the
// returned slice.
func (nc *NodeCache) Kind(k syntax.NodeKind) []syntax.NodeID {
	nc.build()
	return nc.byKind[k]
}

// Calls returns all call expressions. Do not mutate the returned slice.
func (nc *NodeCache) Calls() []syntax.NodeID {
	return nc.Kind(syntax.ExprCall)
}

// Functions returns all function declarations. Do not mutate the returned slice.
func (nc *NodeCache) Functions() []syntax.NodeID {
	return nc.Kind(syntax.DeclFunction)
}

// Types returns all type declarations in document order.
func (nc *NodeCache) Types() []syntax.NodeID {
	var ids []syntax.NodeID
	for id := range nc.tree.Len() {
		if nc.tree.Nodes[id].Kind.IsType() {
			ids = append(ids, syntax.NodeID(id))
		}
	}
	return ids
}
