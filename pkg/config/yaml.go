package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes the file-level settings with two-space indentation.
// CLI-only fields are not written.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return append([]byte(strings.TrimSuffix(header, "\n")+"\n\n"), body...), nil
}

// FromYAML decodes a config file. The Rules map is never nil.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone returns a deep copy of c, CLI-only fields included.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.OptInRules = slices.Clone(c.OptInRules)
	clone.DisabledRules = slices.Clone(c.DisabledRules)
	clone.Included = slices.Clone(c.Included)
	clone.Excluded = slices.Clone(c.Excluded)
	clone.Directives.Prefixes = slices.Clone(c.Directives.Prefixes)
	clone.Directives.AllowBare = clonePtr(c.Directives.AllowBare)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for id, rc := range c.Rules {
			clone.Rules[id] = rc.clone()
		}
	}
	return &clone
}

func (rc RuleConfig) clone() RuleConfig {
	return RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		AutoFix:  clonePtr(rc.AutoFix),
		Options:  cloneOptions(rc.Options),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneOptions copies the maps and lists that YAML decoding produces.
func cloneOptions(opts map[string]any) map[string]any {
	if opts == nil {
		return nil
	}
	out := maps.Clone(opts)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneOptions(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
