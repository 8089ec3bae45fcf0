package rules

import (
	"slices"
	"strings"

	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/structure"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// OverriddenSuperCallID is the ID of OverriddenSuperCallRule.
const OverriddenSuperCallID = "overridden_super_call"

// defaultSuperCallMethods are the overrides that must call their super
// implementation exactly once.
//
//nolint:gochecknoglobals // read-only default list
var defaultSuperCallMethods = []string{
	// UIKit
	"addChildViewController(_:)",
	"decodeRestorableState(with:)",
	"didMoveToParentViewController(_:)",
	"didReceiveMemoryWarning()",
	"encodeRestorableState(with:)",
	"removeFromParentViewController()",
	"setEditing(_:animated:)",
	"setUp()",
	"setUpWithError()",
	"tearDown()",
	"tearDownWithError()",
	"transition(from:to:duration:options:animations:completion:)",
	"updateViewConstraints()",
	"viewDidAppear(_:)",
	"viewDidDisappear(_:)",
	"viewDidLoad()",
	"viewWillAppear(_:)",
	"viewWillDisappear(_:)",
	"viewWillLayoutSubviews()",
	"viewDidLayoutSubviews()",
	"willMoveToParentViewController(_:)",
	// AppKit
	"awakeFromNib()",
	"prepareForReuse()",
	"prepareForInterfaceBuilder()",
	"layoutSubtreeIfNeeded()",
}

// OverriddenSuperCallRule checks that selected overrides call super.
type OverriddenSuperCallRule struct {
	lint.BaseRule
}

// NewOverriddenSuperCallRule creates a new overridden_super_call rule.
func NewOverriddenSuperCallRule() *OverriddenSuperCallRule {
	return &OverriddenSuperCallRule{
		BaseRule: lint.NewBaseRule(
			OverriddenSuperCallID,
			"Overridden Methods Call Super",
			"Some overridden methods should always call super",
			"lint",
		).WithOptIn().WithSyntax(),
	}
}

// Detect reports overrides in the configured list that call super zero
// times or more than once.
//
// Options:
//   - included ([]string, "*" for the defaults): method names to check
//   - excluded ([]string): method names to skip
func (r *OverriddenSuperCallRule) Detect(ctx *lint.RuleContext) ([]lint.Violation, error) {
	methods := resolveSuperCallMethods(
		ctx.OptionStringSlice("included", []string{"*"}),
		ctx.OptionStringSlice("excluded", nil),
	)

	var vs []lint.Violation
	for _, id := range ctx.Nodes().Functions() {
		if ctx.Cancelled() {
			return vs, ctx.Ctx.Err()
		}

		fn := ctx.Tree.Node(id)
		if fn.Kind != syntax.DeclFunction || !fn.HasAttribute("override") || !slices.Contains(methods, fn.Name) {
			continue
		}
		if fn.Body == nil {
			continue
		}

		callee := "super." + baseName(fn.Name)
		isSuperCall := func(n *syntax.Node) bool {
			return n.Kind == syntax.ExprCall && n.Name == callee
		}

		if !structure.FindBaseCase(ctx.Tree, id, isSuperCall) {
			vs = append(vs, r.Violation(ctx, fn.Offset, 0,
				"Method '"+fn.Name+"' should call to super function").Build())
			continue
		}
		if len(structure.FindAll(ctx.Tree, id, isSuperCall)) > 1 {
			vs = append(vs, r.Violation(ctx, fn.Offset, 0,
				"Method '"+fn.Name+"' should call to super only once").Build())
		}
	}
	return vs, nil
}

// resolveSuperCallMethods expands "*" to the default list and removes
// excluded names.
func resolveSuperCallMethods(included, excluded []string) []string {
	var methods []string
	for _, name := range included {
		if name == "*" {
			methods = append(methods, defaultSuperCallMethods...)
			continue
		}
		methods = append(methods, name)
	}
	return slices.DeleteFunc(methods, func(name string) bool {
		return slices.Contains(excluded, name)
	})
}

// baseName strips the argument labels from "name(labels:)".
func baseName(name string) string {
	if i := strings.IndexByte(name, '('); i >= 0 {
		return name[:i]
	}
	return name
}
