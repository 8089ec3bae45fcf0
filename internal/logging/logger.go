// Package logging builds charmbracelet/log loggers and carries them through
// a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide fallback for code without a context
var defaultLogger atomic.Pointer[log.Logger]

// Options configures NewWithOptions.
type Options struct {
	// Level is debug, info, warn (or warning) or error. Anything else is info.
	Level string

	// Format is text, json or logfmt. Anything else is text.
	Format string

	// Writer defaults to os.Stderr.
	Writer io.Writer

	Timestamps bool
}

// New returns a text logger on stderr at the given level.
func New(level string) *log.Logger {
	return NewWithOptions(Options{Level: level})
}

// NewWithOptions returns a logger configured by opts.
func NewWithOptions(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	formatter := log.TextFormatter
	switch strings.ToLower(opts.Format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		ReportTimestamp: opts.Timestamps,
		Formatter:       formatter,
	})
}

// ParseLevel maps a level name to a log.Level, case-insensitively.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(level)
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || level == "" {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, an info-level text logger until
// SetDefault replaces it.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}
