// Package syntax defines the boundary with the syntax classifier: classified
// tokens and a read-only declaration/expression/statement tree, both keyed by
// byte offsets into a file's contents.
package syntax

import (
	"slices"
	"strings"
)

// Kind is the lexical classification of a token.
type Kind string

// Token kinds supplied by classifiers.
const (
	KindKeyword            Kind = "keyword"
	KindIdentifier         Kind = "identifier"
	KindTypeIdentifier     Kind = "typeidentifier"
	KindComment            Kind = "comment"
	KindCommentMark        Kind = "comment.mark"
	KindCommentURL         Kind = "comment.url"
	KindDocComment         Kind = "doccomment"
	KindDocCommentField    Kind = "doccomment.field"
	KindString             Kind = "string"
	KindInterpolation      Kind = "string_interpolation_anchor"
	KindNumber             Kind = "number"
	KindAttributeBuiltin   Kind = "attribute.builtin"
	KindAttributeID        Kind = "attribute.id"
	KindBuildConfigKeyword Kind = "buildconfig.keyword"
	KindBuildConfigID      Kind = "buildconfig.id"
	KindPoundDirective     Kind = "pounddirective.keyword"
	KindObjectLiteral      Kind = "objectliteral"
	KindPlaceholder        Kind = "placeholder"
)

// IsComment reports whether k is any comment or doc comment kind.
func (k Kind) IsComment() bool {
	switch k {
	case KindComment, KindCommentMark, KindCommentURL, KindDocComment, KindDocCommentField:
		return true
	default:
		return false
	}
}

// CommentAndStringKinds are the kinds most textual rules exclude.
func CommentAndStringKinds() KindSet {
	return NewKindSet(KindComment, KindCommentMark, KindCommentURL,
		KindDocComment, KindDocCommentField, KindString)
}

// KindSet is an unordered set of token kinds.
// The nil set is empty and valid.
type KindSet map[Kind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Add inserts k into the set.
func (s KindSet) Add(k Kind) {
	s[k] = struct{}{}
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// HasAny reports whether any kind of other is in the set.
func (s KindSet) HasAny(other KindSet) bool {
	for k := range other {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold exactly the same kinds.
func (s KindSet) Equal(other KindSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Sorted returns the kinds in lexical order.
func (s KindSet) Sorted() []Kind {
	out := make([]Kind, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (s KindSet) String() string {
	kinds := s.Sorted()
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
