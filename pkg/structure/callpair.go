package structure

import (
	"slices"
	"strings"

	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// CallPairQuery describes two chained calls joined by a textual connector,
// such as `.filter { ... }.first`.
type CallPairQuery struct {
	// Connector matches the bridge between the first call's closing
	// delimiter and the second member, e.g. `[\}\)]\s*\.first\b`.
	Connector string

	// Kinds restricts connector matches to exactly these token kinds.
	Kinds syntax.KindSet

	// CalleeSuffix is the required suffix of the first call's name,
	// e.g. ".filter".
	CalleeSuffix string

	// Predicate, if set, further filters candidate calls.
	Predicate func(call *syntax.Node) bool
}

// CallPairs returns the offsets of the first calls of every confirmed pair,
// sorted and deduplicated.
//
// A connector match at [start, end) is confirmed by the innermost call whose
// name ends with CalleeSuffix and whose span [call.Offset, body.End()) contains
// start-1 but not end-1. Matches with no such call, or whose calls have no
// body, are dropped.
func CallPairs(m *match.Matcher, tree *syntax.Tree, q CallPairQuery) ([]int, error) {
	matches, err := m.Find(q.Connector, match.Options{Include: q.Kinds})
	if err != nil {
		return nil, err
	}

	root, ok := tree.Root()
	if !ok {
		return nil, nil
	}

	calls := FindAll(tree, root, func(n *syntax.Node) bool {
		return n.Kind == syntax.ExprCall &&
			n.Body != nil &&
			strings.HasSuffix(n.Name, q.CalleeSuffix) &&
			(q.Predicate == nil || q.Predicate(n))
	})
	if len(calls) == 0 {
		return nil, nil
	}

	var offsets []int
	for _, mt := range matches {
		if call := innermostCall(tree, calls, mt.Range); call != nil {
			offsets = append(offsets, call.Offset)
		}
	}

	slices.Sort(offsets)
	return slices.Compact(offsets), nil
}

func innermostCall(tree *syntax.Tree, calls []syntax.NodeID, r source.ByteRange) *syntax.Node {
	var best *syntax.Node
	for _, id := range calls {
		call := tree.Node(id)
		span := source.NewByteRange(call.Offset, call.Body.End())
		if !span.Contains(r.Offset-1) || span.Contains(r.End()-1) {
			continue
		}
		if best == nil || span.Length < best.Body.End()-best.Offset {
			best = call
		}
	}
	return best
}
