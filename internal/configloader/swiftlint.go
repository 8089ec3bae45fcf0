package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
)

// swiftLintConfig is the subset of .swiftlint.yml that maps directly onto
// stylint settings. Per-rule SwiftLint options use a different shape and
// are not read.
type swiftLintConfig struct {
	OptInRules    []string `yaml:"opt_in_rules"`
	DisabledRules []string `yaml:"disabled_rules"`
	Included      []string `yaml:"included"`
	Excluded      []string `yaml:"excluded"`
}

// loadSwiftLintConfig reads the rule lists and path globs of a SwiftLint
// config. Rules stylint does not implement are dropped with one warning.
func loadSwiftLintConfig(path string, registry *lint.Registry) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	var sl swiftLintConfig
	if err := yaml.Unmarshal(content, &sl); err != nil {
		return nil, nil, fmt.Errorf("parse YAML: %w", err)
	}

	var dropped int
	known := func(ids []string) []string {
		if ids == nil {
			return nil
		}
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := registry.Get(id); ok {
				kept = append(kept, id)
			} else {
				dropped++
			}
		}
		return kept
	}

	cfg := &config.Config{
		OptInRules:    known(sl.OptInRules),
		DisabledRules: known(sl.DisabledRules),
		Included:      swiftLintGlobs(sl.Included),
		Excluded:      swiftLintGlobs(sl.Excluded),
	}

	name := filepath.Base(path)
	warnings := []string{fmt.Sprintf("no .stylint.yml found; using rule lists from %s (run 'stylint init' to create one)", name)}
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%s: ignored %d rules that stylint does not implement", name, dropped))
	}

	return cfg, warnings, nil
}

// swiftLintGlobs turns SwiftLint path entries into globs. SwiftLint lists
// plain directories, which match everything beneath them.
func swiftLintGlobs(entries []string) []string {
	if entries == nil {
		return nil
	}
	globs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !strings.ContainsAny(entry, "*?[") && !strings.EqualFold(filepath.Ext(entry), ".swift") {
			entry = strings.TrimSuffix(entry, "/") + "/**"
		}
		globs = append(globs, entry)
	}
	return globs
}
