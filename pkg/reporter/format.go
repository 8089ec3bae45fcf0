package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/stylint/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    = Format(config.FormatText)
	FormatXcode   = Format(config.FormatXcode)
	FormatTable   = Format(config.FormatTable)
	FormatJSON    = Format(config.FormatJSON)
	FormatSARIF   = Format(config.FormatSARIF)
	FormatDiff    = Format(config.FormatDiff)
	FormatSummary = Format(config.FormatSummary)
)

// ParseFormat parses a format string, returning an error for unknown formats.
// The empty string selects text.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(strings.ToLower(formatStr))
	if !format.IsValid() {
		names := make([]string, 0, len(config.Formats()))
		for _, f := range config.Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	for _, known := range config.Formats() {
		if string(f) == string(known) {
			return true
		}
	}
	return false
}
