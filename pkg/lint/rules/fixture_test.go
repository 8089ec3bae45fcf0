package rules

import (
	"context"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/syntax"
)

//nolint:gochecknoglobals // test fixture
var testKeywords = map[string]bool{
	"let": true, "var": true, "func": true, "class": true, "struct": true,
	"enum": true, "extension": true, "protocol": true, "return": true,
	"override": true, "super": true, "self": true, "import": true,
	"in": true, "if": true, "else": true, "true": true, "false": true,
}

// lex is a small Swift-ish tokenizer: words, numbers, line and block
// comments, and double-quoted strings. Punctuation produces no token.
func lex(src string) []syntax.Token {
	var tokens []syntax.Token
	emit := func(start, end int, kind syntax.Kind) {
		tokens = append(tokens, syntax.Token{Offset: start, Length: end - start, Kind: kind})
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case strings.HasPrefix(src[i:], "///"):
			end := lineEnd(src, i)
			emit(i, end, syntax.KindDocComment)
			i = end
		case strings.HasPrefix(src[i:], "//"):
			end := lineEnd(src, i)
			emit(i, end, syntax.KindComment)
			i = end
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src)
			} else {
				end = i + 2 + end + 2
			}
			emit(i, end, syntax.KindComment)
			i = end
		case c == '"':
			end := strings.IndexByte(src[i+1:], '"')
			if end < 0 {
				end = len(src)
			} else {
				end = i + 1 + end + 1
			}
			emit(i, end, syntax.KindString)
			i = end
		case c == '_' || unicode.IsLetter(rune(c)):
			end := i
			for end < len(src) && (src[end] == '_' || unicode.IsLetter(rune(src[end])) || unicode.IsDigit(rune(src[end]))) {
				end++
			}
			word := src[i:end]
			switch {
			case testKeywords[word]:
				emit(i, end, syntax.KindKeyword)
			case unicode.IsUpper(rune(word[0])):
				emit(i, end, syntax.KindTypeIdentifier)
			default:
				emit(i, end, syntax.KindIdentifier)
			}
			i = end
		case unicode.IsDigit(rune(c)):
			end := i
			for end < len(src) && unicode.IsDigit(rune(src[end])) {
				end++
			}
			emit(i, end, syntax.KindNumber)
			i = end
		default:
			i++
		}
	}
	return tokens
}

func lineEnd(src string, from int) int {
	if i := strings.IndexByte(src[from:], '\n'); i >= 0 {
		return from + i
	}
	return len(src)
}

// treeFunc builds the structure tree for a source text.
type treeFunc func(b *syntax.Builder, src string)

// fakeClassifier lexes with lex and builds its tree with build, if set.
func fakeClassifier(build treeFunc) syntax.Classifier {
	return syntax.ClassifierFunc(func(_ context.Context, _ string, contents []byte) (*syntax.Classification, error) {
		src := string(contents)
		b := syntax.NewBuilder(len(contents))
		if build != nil {
			build(b, src)
		}
		return &syntax.Classification{Tokens: lex(src), Tree: b.Build()}, nil
	})
}

// ruleRun configures one run of a rule through the engine.
type ruleRun struct {
	rules   []lint.Rule
	tree    treeFunc
	options map[string]any
}

func (rr ruleRun) config() *config.Config {
	cfg := config.NewConfig()
	cfg.Rules = make(map[string]config.RuleConfig)
	for _, rule := range rr.rules {
		desc := rule.Describe()
		if desc.OptIn {
			cfg.OptInRules = append(cfg.OptInRules, desc.ID)
		}
	}
	if rr.options != nil {
		id := rr.rules[0].Describe().ID
		cfg.Rules[id] = config.RuleConfig{Options: rr.options}
	}
	return cfg
}

func (rr ruleRun) engine() *lint.Engine {
	registry := lint.NewRegistry()
	registry.Register(rr.rules...)
	return lint.NewEngine(fakeClassifier(rr.tree), registry)
}

// lintWith runs the rules over src and returns the violations.
func lintWith(t *testing.T, rr ruleRun, src string) []lint.Violation {
	t.Helper()
	res, err := rr.engine().LintFile(context.Background(), "Test.swift", []byte(src), rr.config())
	require.NoError(t, err)
	require.Empty(t, res.RuleErrors)
	return res.Violations
}

// correctWith runs one correction pass over src and returns the result.
func correctWith(t *testing.T, rr ruleRun, src string) string {
	t.Helper()
	cfg := rr.config()
	cfg.Fix = true
	res, err := rr.engine().Correct(context.Background(), "Test.swift", []byte(src), cfg)
	require.NoError(t, err)
	require.NoError(t, res.CorrectionErr)
	return string(res.Content)
}

// lines returns the line of each violation.
func lines(vs []lint.Violation) []int {
	out := make([]int, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Location.Line)
	}
	return out
}

// span returns the offset and length of the nth (0-based) occurrence of sub.
func span(src, sub string, nth int) (int, int) {
	from := 0
	for {
		i := strings.Index(src[from:], sub)
		if i < 0 {
			panic("substring not found: " + sub)
		}
		if nth == 0 {
			return from + i, len(sub)
		}
		nth--
		from += i + 1
	}
}
