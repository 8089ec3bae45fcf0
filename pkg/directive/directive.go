// Package directive parses inline disable/enable comments and decides which
// rule violations they suppress.
package directive

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// AllRules is the rule list keyword that targets every rule.
const AllRules = "all"

// Action is what a directive does.
type Action int

// Directive actions.
const (
	Disable Action = iota
	Enable
)

func (a Action) String() string {
	if a == Enable {
		return "enable"
	}
	return "disable"
}

// Scope is the region a directive applies to.
type Scope int

// Directive scopes.
const (
	// ScopeRange applies from the directive until a later directive for the
	// same rule changes the state.
	ScopeRange Scope = iota
	// ScopeThis applies to the directive's own line.
	ScopeThis
	// ScopeNext applies to the line after the directive.
	ScopeNext
	// ScopePrevious applies to the line before the directive.
	ScopePrevious
)

var scopeNames = map[string]Scope{
	"":         ScopeRange,
	"this":     ScopeThis,
	"next":     ScopeNext,
	"previous": ScopePrevious,
}

func (s Scope) String() string {
	for name, scope := range scopeNames {
		if scope == s && name != "" {
			return name
		}
	}
	return "range"
}

// Directive is one parsed disable/enable command.
type Directive struct {
	Action Action
	Scope  Scope

	// RuleIDs lists the targeted rules; empty when All is set.
	RuleIDs []string
	All     bool

	// Range is the byte range of the command text inside its comment.
	Range source.ByteRange

	// Line is the 1-based line of the command.
	Line int
}

// Targets reports whether the directive applies to ruleID.
func (d Directive) Targets(ruleID string) bool {
	return d.All || slices.Contains(d.RuleIDs, ruleID)
}

// AppliesToLine reports whether a line-scoped directive covers line.
func (d Directive) AppliesToLine(line int) bool {
	switch d.Scope {
	case ScopeThis:
		return line == d.Line
	case ScopeNext:
		return line == d.Line+1
	case ScopePrevious:
		return line == d.Line-1
	default:
		return false
	}
}

// Options configures directive parsing.
type Options struct {
	// Prefixes are the accepted command prefixes, e.g. "stylint" in
	// "stylint:disable colon".
	Prefixes []string

	// AllowBare accepts commands without a prefix, e.g. "disable colon".
	// A bare command counts only when every word after it is "all" or one
	// of KnownRules, so prose like "disable all animations" stays a comment.
	AllowBare  bool
	KnownRules []string
}

// DefaultOptions returns the default parsing options.
func DefaultOptions() Options {
	return Options{
		Prefixes:  []string{"stylint", "swiftlint"},
		AllowBare: true,
	}
}

var (
	commandPattern = regexp.MustCompile(`^(?:([A-Za-z][\w-]*):)?(disable|enable)(?::(this|next|previous))?(?:\s+|$)`)

	// textualComments finds comments when no classifier tokens are available.
	textualComments = regexp.MustCompile(`//[^\n]*|(?s:/\*.*?\*/)`)
)

// Parse extracts directives from the comment tokens of file. When tokens is
// empty, comments are located textually instead.
func Parse(file *source.File, tokens []syntax.Token, opts Options) []Directive {
	var comments []source.ByteRange
	if len(tokens) == 0 {
		for _, loc := range textualComments.FindAllIndex(file.Contents, -1) {
			comments = append(comments, source.NewByteRange(loc[0], loc[1]))
		}
	} else {
		for _, tok := range tokens {
			if tok.Kind.IsComment() {
				comments = append(comments, tok.Range())
			}
		}
	}

	var out []Directive
	for _, r := range comments {
		text, ok := file.Text(r)
		if !ok {
			continue
		}
		out = append(out, parseComment(file, string(text), r.Offset, opts)...)
	}
	return out
}

// parseComment parses every comment line of a comment starting at base.
func parseComment(file *source.File, text string, base int, opts Options) []Directive {
	var out []Directive
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}

		line := text[lineStart:lineEnd]
		body := strings.TrimLeft(line, "/* \t")
		offset := base + lineStart + (len(line) - len(body))
		body = strings.TrimSuffix(strings.TrimRight(body, " \t\r"), "*/")

		if d, ok := parseCommand(body, opts); ok {
			length := len(strings.TrimRight(body, " \t"))
			d.Range = source.ByteRange{Offset: offset, Length: length}
			d.Line = file.Location(offset).Line
			out = append(out, d)
		}

		lineStart = lineEnd + 1
	}
	return out
}

func parseCommand(body string, opts Options) (Directive, bool) {
	m := commandPattern.FindStringSubmatchIndex(body)
	if m == nil {
		return Directive{}, false
	}

	bare := m[2] < 0
	switch {
	case bare && !opts.AllowBare:
		return Directive{}, false
	case !bare && !slices.Contains(opts.Prefixes, body[m[2]:m[3]]):
		return Directive{}, false
	}

	d := Directive{Action: Disable}
	if body[m[4]:m[5]] == "enable" {
		d.Action = Enable
	}
	if m[6] >= 0 {
		d.Scope = scopeNames[body[m[6]:m[7]]]
	}

	for _, field := range strings.FieldsFunc(body[m[1]:], func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	}) {
		// Anything after a lone dash is an explanation.
		if field == "-" || field == "--" {
			break
		}
		if field == AllRules {
			d.All = true
			continue
		}
		if bare && !slices.Contains(opts.KnownRules, field) {
			return Directive{}, false
		}
		d.RuleIDs = append(d.RuleIDs, field)
	}

	if !d.All && len(d.RuleIDs) == 0 {
		return Directive{}, false
	}
	if d.All {
		d.RuleIDs = nil
	}
	return d, true
}
