// Package output provides styled terminal rendering helpers for the CLI.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorStrong is used for high-confidence indicators.
	ColorStrong = lipgloss.Color("#66bb6a")

	// ColorWeak is used for low-confidence indicators.
	ColorWeak = lipgloss.Color("#ef5350")

	// ColorModerate is used for middling confidence.
	ColorModerate = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and rules.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleStrong is used for confident values.
	StyleStrong = lipgloss.NewStyle().
			Foreground(ColorStrong)

	// StyleWeak is used for borderline values.
	StyleWeak = lipgloss.NewStyle().
			Foreground(ColorWeak)

	// StyleModerate is used for middling values.
	StyleModerate = lipgloss.NewStyle().
			Foreground(ColorModerate)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)
)

// noColor tracks whether color output is disabled.
var noColor bool

func init() {
	// Piped output gets plain text without an explicit flag.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		SetNoColor(true)
	}
}

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleStrong = plain
		StyleWeak = plain
		StyleModerate = plain
		StyleMuted = plain
		StyleBold = plain
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// StyleConfidence picks a style for a [0,1] confidence value: strong at
// 0.9 and above, moderate at 0.8, weak below.
func StyleConfidence(confidence float64) lipgloss.Style {
	switch {
	case confidence >= 0.9:
		return StyleStrong
	case confidence >= 0.8:
		return StyleModerate
	default:
		return StyleWeak
	}
}
