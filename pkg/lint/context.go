package lint

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/match"
	"github.com/yaklabco/stylint/pkg/source"
	"github.com/yaklabco/stylint/pkg/syntax"
)

// Snapshot is the immutable view of one file that every rule in a pass
// observes: contents, classifier output, and a matcher over both.
type Snapshot struct {
	// File holds the path and contents.
	File *source.File

	// Tokens is the classifier's token stream. Empty when degraded.
	Tokens []syntax.Token

	// Tree is the structure tree. It is never nil; when degraded it holds
	// only the file node.
	Tree *syntax.Tree

	// Matcher runs kind-filtered regex searches over File.
	Matcher *match.Matcher

	// ClassifierErr is the classifier failure that put this file in
	// degraded mode, or nil.
	ClassifierErr error

	nodes *NodeCache
}

// NewSnapshot assembles a snapshot from classifier output. A nil
// classification yields a degraded snapshot.
func NewSnapshot(file *source.File, cls *syntax.Classification, classifierErr error, cache *match.RegexCache) *Snapshot {
	snap := &Snapshot{File: file, ClassifierErr: classifierErr}
	if cls != nil {
		snap.Tokens = cls.Tokens
		snap.Tree = cls.Tree
	}
	if snap.Tree == nil {
		snap.Tree = syntax.NewBuilder(len(file.Contents)).Build()
	}
	snap.Matcher = match.New(file, snap.Tokens, cache)
	snap.nodes = newNodeCache(snap.Tree)
	return snap
}

// Degraded reports whether the classifier failed for this file.
func (s *Snapshot) Degraded() bool {
	return s.ClassifierErr != nil
}

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx). It is a short-lived
// parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the file under inspection.
	File *source.File

	// Tokens is the classifier's token stream.
	Tokens []syntax.Token

	// Tree is the structure tree.
	Tree *syntax.Tree

	// Matcher runs kind-filtered regex searches.
	Matcher *match.Matcher

	// Severity is the resolved severity for this rule.
	Severity config.Severity

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Logger is the logger carried by Ctx.
	Logger *log.Logger

	nodes  *NodeCache
	cursor *source.Cursor
}

// NewRuleContext creates a RuleContext for one rule over snap.
func NewRuleContext(
	ctx context.Context,
	snap *Snapshot,
	severity config.Severity,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	rc := &RuleContext{
		Ctx:        ctx,
		Severity:   severity,
		RuleConfig: ruleCfg,
		Logger:     logging.FromContext(ctx),
	}
	if snap != nil {
		rc.File = snap.File
		rc.Tokens = snap.Tokens
		rc.Tree = snap.Tree
		rc.Matcher = snap.Matcher
		rc.nodes = snap.nodes
		rc.cursor = snap.File.Index().Cursor()
	}
	return rc
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Nodes returns the shared per-file node cache.
func (rc *RuleContext) Nodes() *NodeCache {
	if rc.nodes == nil {
		rc.nodes = newNodeCache(rc.Tree)
	}
	return rc.nodes
}

// locate resolves offset to a line/column, or a Location carrying only the
// offset when it does not resolve.
func (rc *RuleContext) locate(offset int) source.Location {
	if rc.cursor == nil {
		return rc.File.Location(offset)
	}
	loc, ok := rc.cursor.ByteToLineColumn(offset)
	if !ok {
		return source.Location{Offset: offset}
	}
	return loc
}

// option looks key up in the rule's options.
func (rc *RuleContext) option(key string) (any, bool) {
	if rc.RuleConfig == nil {
		return nil, false
	}
	v, ok := rc.RuleConfig.Options[key]
	return v, ok
}

// optionAs returns the option under key when it holds a T, else def.
func optionAs[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.option(key); ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	return def
}

// OptionInt returns an integer option. YAML and JSON decoders produce
// int, int64 or float64.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v, _ := rc.option(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return defaultValue
}

// OptionString returns a string option.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	return optionAs(rc, key, defaultValue)
}

// OptionBool returns a boolean option.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	return optionAs(rc, key, defaultValue)
}

// OptionStringSlice returns a list option. Non-string items of a decoded
// []any are dropped; an empty result yields the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v, _ := rc.option(key)
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
