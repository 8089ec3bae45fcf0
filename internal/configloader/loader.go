// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, validation, and reading rule lists from an
// existing SwiftLint config.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/stylint/internal/logging"
	"github.com/yaklabco/stylint/pkg/config"
	"github.com/yaklabco/stylint/pkg/lint"
	"github.com/yaklabco/stylint/pkg/lint/rules"
)

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	WorkingDir   string // start of the project config search; cwd when empty
	ExplicitPath string // --config

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool
	IgnoreSwiftLint     bool // skip rule lists from .swiftlint.yml

	// Registry validates rule IDs. Defaults to the built-in rules.
	Registry *lint.Registry

	// CLIConfig holds flag values and wins over every other source.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // files read, lowest precedence first
	Warnings   []string
}

// fileLayer is one parsed config file.
type fileLayer struct {
	cfg *config.Config

	// backupsEnabled is set when the file names backups.enabled, so that an
	// explicit false can override a lower layer.
	backupsEnabled *bool
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (STYLINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.stylint.yml upward search), or the rule lists of
//     .swiftlint.yml when there is none
//  5. User config ($XDG_CONFIG_HOME/stylint/config.yaml)
//  6. System config (/etc/stylint/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = rules.NewRegistry()
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name   string
		path   string
		ignore bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.ignore || layer.path == "" {
			continue
		}
		loaded, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = mergeLayer(cfg, loaded)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		logger.Debug("loaded config", logging.FieldConfig, layer.name, logging.FieldPath, layer.path)

		if layer.name == "project" {
			for _, w := range ValidateWithFile(loaded.cfg, registry, layer.path).Warnings {
				result.Warnings = append(result.Warnings, w.Error())
			}
		}
	}

	if !opts.IgnoreSwiftLint && !opts.IgnoreProjectConfig && paths.SwiftLint != "" {
		if paths.Project != "" {
			logger.Debug("ignoring SwiftLint config", logging.FieldPath, paths.SwiftLint)
		} else {
			compat, warnings, err := loadSwiftLintConfig(paths.SwiftLint, registry)
			if err != nil {
				return nil, fmt.Errorf("load SwiftLint config: %w", err)
			}
			cfg = merge(cfg, compat)
			result.LoadedFrom = append(result.LoadedFrom, paths.SwiftLint)
			result.Warnings = append(result.Warnings, warnings...)
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		if !containsWarning(result.Warnings, w.Message) {
			result.Warnings = append(result.Warnings, w.Error())
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*fileLayer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}

	var explicit struct {
		Backups struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"backups"`
	}
	if err := yaml.Unmarshal(content, &explicit); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &fileLayer{cfg: cfg, backupsEnabled: explicit.Backups.Enabled}, nil
}

func mergeLayer(base *config.Config, layer *fileLayer) *config.Config {
	merged := merge(base, layer.cfg)
	if layer.backupsEnabled != nil {
		merged.Backups.Enabled = *layer.backupsEnabled
	}
	return merged
}

// containsWarning reports whether message was already recorded, which
// happens for project-file warnings reported with their path.
func containsWarning(warnings []string, message string) bool {
	return slices.ContainsFunc(warnings, func(w string) bool { return strings.HasSuffix(w, message) })
}
