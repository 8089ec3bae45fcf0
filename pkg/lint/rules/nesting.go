package rules

import (
	"fmt"

	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/structure"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// NestingID is the ID of NestingRule.
const NestingID = "nesting"

const (
	defaultTypeLevel     = 1
	defaultFunctionLevel = 2
)

// NestingRule bounds how deeply types and functions may nest.
type NestingRule struct {
	lint.BaseRule
}

// NewNestingRule creates a new nesting rule.
func NewNestingRule() *NestingRule {
	return &NestingRule{
		BaseRule: lint.NewBaseRule(
			NestingID,
			"Nesting",
			"Types should be nested at most 1 level deep, and functions should be nested at most 2 levels deep",
			"metrics",
		).WithSyntax(),
	}
}

// nestingFrame counts the type and function declarations enclosing a node,
// the node itself included.
type nestingFrame struct {
	types, functions int
}

// Detect walks the tree once, tracking enclosing declarations per depth.
// A top-level declaration is at level 0.
//
// Options:
//   - type_level (1): deepest allowed type nesting
//   - function_level (2): deepest allowed function nesting
func (r *NestingRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	root, ok := ctx.Tree.Root()
	if !ok {
		return nil, nil
	}

	typeLevel := ctx.OptionInt("type_level", defaultTypeLevel)
	functionLevel := ctx.OptionInt("function_level", defaultFunctionLevel)

	var vs []lint.Violation
	frames := make([]nestingFrame, 0, 16)

	structure.Visit(ctx.Tree, root, func(_ syntax.NodeID, node *syntax.Node, depth int) {
		frames = frames[:min(depth, len(frames))]
		var cur nestingFrame
		if depth > 0 && len(frames) > 0 {
			cur = frames[len(frames)-1]
		}

		switch {
		case node.Kind.IsType() && node.Kind != syntax.DeclExtension:
			cur.types++
			if level := cur.types - 1; level > typeLevel {
				vs = append(vs, r.Violation(ctx, node.Offset, 0,
					fmt.Sprintf("Types should be nested at most %d level deep", typeLevel)).Build())
			}
		case node.Kind == syntax.DeclFunction:
			cur.functions++
			if level := cur.functions - 1; level > functionLevel {
				vs = append(vs, r.Violation(ctx, node.Offset, 0,
					fmt.Sprintf("Functions should be nested at most %d levels deep", functionLevel)).Build())
			}
		}

		frames = append(frames, cur)
	})

	return vs, nil
}
