package configloader

import (
	"maps"

	"github.com/yaklabco/stylint/pkg/config"
)

// merge layers override on top of base and returns a new config.
//
// A field in override applies only when it is set: non-zero scalars,
// non-nil slices and pointers. Slices replace rather than append. Rules
// merge per rule and per option key. Booleans only ever switch on here;
// a file that turns backups.enabled off is handled by fileLayer.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := *base

	overrideScalar(&out.SeverityDefault, override.SeverityDefault)
	overrideScalar(&out.Format, override.Format)
	overrideScalar(&out.Jobs, override.Jobs)
	overrideScalar(&out.MaxFixPasses, override.MaxFixPasses)
	overrideScalar(&out.MetricsFile, override.MetricsFile)
	overrideScalar(&out.Backups.Mode, override.Backups.Mode)
	overrideScalar(&out.Fix, override.Fix)
	overrideScalar(&out.DryRun, override.DryRun)
	overrideScalar(&out.NoBackups, override.NoBackups)
	overrideScalar(&out.Backups.Enabled, override.Backups.Enabled)

	for _, pair := range []struct{ dst, src *[]string }{
		{&out.Directives.Prefixes, &override.Directives.Prefixes},
		{&out.OptInRules, &override.OptInRules},
		{&out.DisabledRules, &override.DisabledRules},
		{&out.Included, &override.Included},
		{&out.Excluded, &override.Excluded},
		{&out.EnableRules, &override.EnableRules},
		{&out.DisableRules, &override.DisableRules},
		{&out.FixRules, &override.FixRules},
	} {
		if *pair.src != nil {
			*pair.dst = *pair.src
		}
	}

	overridePtr(&out.Directives.AllowBare, override.Directives.AllowBare)
	out.Rules = mergeRules(base.Rules, override.Rules)

	return &out
}

func overrideScalar[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func overridePtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}
	for id, rc := range override {
		existing, ok := out[id]
		if !ok {
			out[id] = rc
			continue
		}
		overridePtr(&existing.Enabled, rc.Enabled)
		overridePtr(&existing.Severity, rc.Severity)
		overridePtr(&existing.AutoFix, rc.AutoFix)
		if rc.Options != nil {
			options := maps.Clone(existing.Options)
			if options == nil {
				options = make(map[string]any, len(rc.Options))
			}
			maps.Copy(options, rc.Options)
			existing.Options = options
		}
		out[id] = existing
	}
	return out
}

// MergeAll folds configs left to right; later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0]
	for _, cfg := range configs[1:] {
		out = merge(out, cfg)
	}
	return out
}
