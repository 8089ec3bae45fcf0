// Package structure walks the read-only structure tree produced by a
// syntax classifier.
package structure

import (
	"github.com/yaklabco/stylint/pkg/syntax"
)

// VisitFunc is called for each node with its depth relative to the start node.
type VisitFunc func(id syntax.NodeID, node *syntax.Node, depth int)

// Visit performs a pre-order traversal starting at id with depth 0.
// Depth increases by exactly one per child level regardless of node kind.
func Visit(tree *syntax.Tree, id syntax.NodeID, fn VisitFunc) {
	visit(tree, id, 0, fn)
}

func visit(tree *syntax.Tree, id syntax.NodeID, depth int, fn VisitFunc) {
	node := tree.Node(id)
	if node == nil {
		return
	}
	fn(id, node, depth)
	for _, child := range node.Children {
		visit(tree, child, depth+1, fn)
	}
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id syntax.NodeID, node *syntax.Node) error

// Walk performs a pre-order traversal starting at id. If walkFunc returns a
// non-nil error, the walk stops immediately and returns that error.
func Walk(tree *syntax.Tree, id syntax.NodeID, walkFunc WalkFunc) error {
	node := tree.Node(id)
	if node == nil {
		return nil
	}

	if err := walkFunc(id, node); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := Walk(tree, child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns the IDs of all nodes at or below id matching predicate,
// in pre-order.
func FindAll(tree *syntax.Tree, id syntax.NodeID, predicate func(n *syntax.Node) bool) []syntax.NodeID {
	var result []syntax.NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(tree, id, func(nodeID syntax.NodeID, node *syntax.Node) error {
		if predicate(node) {
			result = append(result, nodeID)
		}
		return nil
	})

	return result
}

// FindBaseCase reports whether any descendant of id satisfies isBaseCase.
// The start node itself is not tested. Children are explored in document
// order and the search stops at the first match.
func FindBaseCase(tree *syntax.Tree, id syntax.NodeID, isBaseCase func(n *syntax.Node) bool) bool {
	node := tree.Node(id)
	if node == nil {
		return false
	}

	found := false
	for _, child := range node.Children {
		err := Walk(tree, child, func(_ syntax.NodeID, n *syntax.Node) error {
			if isBaseCase(n) {
				found = true
				return errStopWalk
			}
			return nil
		})
		if err != nil {
			break
		}
	}
	return found
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
