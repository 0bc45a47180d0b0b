package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	accentColor = lipgloss.Color("#F59E0B") // Amber
	borderColor = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor  = lipgloss.Color("#6B7280") // Gray

	// boxStyle frames an idle field or row
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// activeBoxStyle frames the focused field or selected row
	activeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// Box renders text inside a bordered box whose inner width (padding
// included) is width. Lines are truncated, never wrapped, so the box is
// always two lines taller than text.
func Box(text string, width int, active bool) string {
	style := boxStyle
	if active {
		style = activeBoxStyle
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width-2, "…")
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}
