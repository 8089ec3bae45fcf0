package rules

import "github.com/yaklabco/stylint/pkg/lint"

// All returns a fresh instance of every built-in rule.
func All() []lint.Rule {
	return []lint.Rule{
		// Whitespace and layout
		NewTrailingWhitespaceRule(),
		NewLineLengthRule(),
		NewColonRule(),

		// Idiomatic
		NewVoidReturnRule(),
		NewTodoRule(),

		// Performance
		NewFirstWhereRule(),
		NewSortedFirstLastRule(),

		// Metrics
		NewNestingRule(),

		// Lint
		NewOverriddenSuperCallRule(),
		NewSuperfluousDisableCommandRule(),
	}
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(All()...)
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	return registry
}
