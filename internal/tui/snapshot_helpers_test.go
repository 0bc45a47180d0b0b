package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// plainView renders the model's view as text only, with trailing blanks
// removed from each line and from the end so goldens don't depend on the
// terminal width.
func plainView(m Model) string {
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
