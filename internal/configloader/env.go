package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/stylint/pkg/config"
)

const envVarPrefix = "STYLINT_"

// EnvVar is one supported STYLINT_* override.
type EnvVar struct {
	Name        string
	Description string
	apply       func(cfg *config.Config, value string) error
}

// envVars is sorted by name so the first reported error is stable.
//
//nolint:gochecknoglobals // read-only table
var envVars = []EnvVar{
	envBool("BACKUPS_ENABLED", "create backups when fixing", func(c *config.Config) *bool { return &c.Backups.Enabled }),
	envString("BACKUPS_MODE", "backup mode: sidecar, directory or none", func(c *config.Config) *string { return &c.Backups.Mode }),
	envList("DISABLED_RULES", "comma-separated rules to disable", func(c *config.Config) *[]string { return &c.DisabledRules }),
	envBool("DRY_RUN", "compute corrections without writing", func(c *config.Config) *bool { return &c.DryRun }),
	envList("EXCLUDED", "comma-separated globs of paths to skip", func(c *config.Config) *[]string { return &c.Excluded }),
	envBool("FIX", "apply corrections", func(c *config.Config) *bool { return &c.Fix }),
	{
		Name:        envVarPrefix + "FORMAT",
		Description: "output format: text, xcode, table, json, sarif, diff or summary",
		apply: func(c *config.Config, v string) error {
			c.Format = config.OutputFormat(v)
			return nil
		},
	},
	envList("INCLUDED", "comma-separated globs of paths to lint", func(c *config.Config) *[]string { return &c.Included }),
	envInt("JOBS", "parallel workers, 0 for one per CPU", func(c *config.Config) *int { return &c.Jobs }),
	envInt("MAX_FIX_PASSES", "maximum correction passes per file", func(c *config.Config) *int { return &c.MaxFixPasses }),
	envString("METRICS_FILE", "write run metrics to this file", func(c *config.Config) *string { return &c.MetricsFile }),
	envBool("NO_BACKUPS", "disable backups", func(c *config.Config) *bool { return &c.NoBackups }),
	envList("OPT_IN_RULES", "comma-separated opt-in rules to enable", func(c *config.Config) *[]string { return &c.OptInRules }),
	envString("SEVERITY_DEFAULT", "default severity: warning or error", func(c *config.Config) *string { return &c.SeverityDefault }),
}

func envString(suffix, desc string, field func(*config.Config) *string) EnvVar {
	return EnvVar{Name: envVarPrefix + suffix, Description: desc, apply: func(c *config.Config, v string) error {
		*field(c) = v
		return nil
	}}
}

func envBool(suffix, desc string, field func(*config.Config) *bool) EnvVar {
	name := envVarPrefix + suffix
	return EnvVar{Name: name, Description: desc, apply: func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, v)
		}
		*field(c) = b
		return nil
	}}
}

func envInt(suffix, desc string, field func(*config.Config) *int) EnvVar {
	name := envVarPrefix + suffix
	return EnvVar{Name: name, Description: desc, apply: func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, v)
		}
		*field(c) = n
		return nil
	}}
}

// envList splits on commas and drops blank elements.
func envList(suffix, desc string, field func(*config.Config) *[]string) EnvVar {
	return EnvVar{Name: envVarPrefix + suffix, Description: desc, apply: func(c *config.Config, v string) error {
		var items []string
		for item := range strings.SplitSeq(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(c) = items
		return nil
	}}
}

// LoadFromEnv applies STYLINT_* overrides to cfg. Empty values are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, ev := range envVars {
		if value, ok := lookup(ev.Name); ok && value != "" {
			if err := ev.apply(cfg, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// EnvVars lists the supported overrides in name order.
func EnvVars() []EnvVar {
	return slices.Clone(envVars)
}
