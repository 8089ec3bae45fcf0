// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles. Info marks notes such as degraded files.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Violation components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Reason     lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGrey   = "8"
	colorLight  = "7"
)

// NewStyles creates a new Styles with the given color mode. Without color
// every style renders its input unchanged.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return style
		}
		return style.Bold(true)
	}
	plain := lipgloss.NewStyle()
	dim := fg(colorGrey)

	legend := dim
	if colorEnabled {
		legend = legend.Italic(true)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath:   bold(plain),
		Location:   dim,
		RuleID:     dim,
		Reason:     plain,
		SourceLine: fg(colorLight),
		Caret:      fg(colorRed),

		DiffHeader:  bold(plain),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: dim,

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorLight)),
		TableBorder:    dim,
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableFixable:   fg(colorGreen),
		TableLegend:    legend,
		TableSeparator: dim,

		Dim:  dim,
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always", "never") for
// writer. Auto means a terminal and no NO_COLOR in the environment.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
