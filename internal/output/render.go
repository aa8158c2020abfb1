package output

import (
	"fmt"
	"strings"
)

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// ConfidenceBar renders a visual bar for a [0,1] confidence value.
// Example: "████████░░ 80%"
func ConfidenceBar(confidence float64, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := int(confidence * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	label := fmt.Sprintf("%.0f%%", confidence*100)
	return fmt.Sprintf("%s %s", StyleConfidence(confidence).Render(bar), StyleMuted.Render(label))
}
