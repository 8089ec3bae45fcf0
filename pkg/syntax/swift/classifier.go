// Package swift classifies Swift sources with tree-sitter.
package swift

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"

	"github.com/yaklabco/stylint/pkg/syntax"
)

// DefaultMaxFileSize is the largest file the classifier accepts by default.
const DefaultMaxFileSize = 10 * 1024 * 1024

// ErrFileTooLarge is returned when contents exceed the configured size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// Option configures a Classifier.
type Option func(*Classifier)

// WithMaxFileSize sets the maximum file size the classifier will accept.
// Non-positive values are ignored.
func WithMaxFileSize(bytes int) Option {
	return func(c *Classifier) {
		if bytes > 0 {
			c.maxFileSize = bytes
		}
	}
}

// Classifier implements syntax.Classifier for Swift.
//
// A Classifier is safe for concurrent use: each Classify call creates its own
// tree-sitter parser.
type Classifier struct {
	maxFileSize int
}

var _ syntax.Classifier = (*Classifier)(nil)

// New creates a Classifier with the given options.
func New(opts ...Option) *Classifier {
	c := &Classifier{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements syntax.Classifier.
func (c *Classifier) Name() string {
	return "tree-sitter-swift"
}

// Classify implements syntax.Classifier.
func (c *Classifier) Classify(ctx context.Context, path string, contents []byte) (*syntax.Classification, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classify canceled before start: %w", err)
	}

	if len(contents) > c.maxFileSize {
		return nil, fmt.Errorf("%w: %s: size %d exceeds limit %d", ErrFileTooLarge, path, len(contents), c.maxFileSize)
	}

	if !utf8.Valid(contents) {
		return nil, fmt.Errorf("%w: %s: content is not valid UTF-8", syntax.ErrUnsupported, path)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(swift.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, contents)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root node: %s", path)
	}

	w := newWalker(contents)
	w.walk(root)

	return &syntax.Classification{
		Tokens:    w.finishTokens(),
		Tree:      w.builder.Build(),
		HasErrors: root.HasError(),
	}, nil
}
