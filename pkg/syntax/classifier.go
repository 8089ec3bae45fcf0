package syntax

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by classifiers for files they cannot handle.
var ErrUnsupported = errors.New("unsupported source")

// Classification is a classifier's result for one file.
// It is read-only once returned and may be shared across goroutines.
type Classification struct {
	// Tokens are ordered by offset and non-overlapping.
	Tokens []Token

	// Tree is the structure tree rooted at the file node.
	Tree *Tree

	// HasErrors is true when the classifier recovered from syntax errors.
	// Tokens and Tree are still usable but may be incomplete.
	HasErrors bool
}

// Classifier produces tokens and a structure tree for a file.
// Implementations must be safe for concurrent use.
type Classifier interface {
	// Name returns the classifier's identifier (e.g., "tree-sitter-swift").
	Name() string

	// Classify classifies contents. path is used for diagnostics only.
	Classify(ctx context.Context, path string, contents []byte) (*Classification, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, path string, contents []byte) (*Classification, error)

// Name implements Classifier.
func (f ClassifierFunc) Name() string { return "func" }

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, path string, contents []byte) (*Classification, error) {
	return f(ctx, path, contents)
}
