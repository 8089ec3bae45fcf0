// Package rules provides the built-in lint rules for stylint.
//
// # Rule Domains
//
// Whitespace and layout:
//   - trailing_whitespace: lines should not have trailing whitespace
//   - line_length: lines should not exceed the configured length
//   - colon: colons sit next to the identifier and are followed by one space
//
// Idiomatic:
//   - void_return: prefer "-> Void" over "-> ()"
//   - todo: TODOs and FIXMEs should be resolved
//
// Performance:
//   - first_where: prefer first(where:) over filter { }.first
//   - sorted_first_last: prefer min() or max() over sorted().first or sorted().last
//
// Metrics:
//   - nesting: types and functions should not be nested too deeply
//
// Lint:
//   - overridden_super_call: overridden methods should call super (opt-in)
//   - superfluous_disable_command: disable commands should suppress something
//
// # Rule Packs
//
// Rule packs are configuration presets for common use cases:
//
//   - default: every rule that is not opt-in, with its default severity
//   - strict: every rule, opt-in included, as errors
//   - relaxed: layout rules only, as warnings
//
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// RegisterAll adds every built-in rule to a registry. There is no global
// registry; callers build one per run.
package rules
