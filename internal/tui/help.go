package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const helpMarkdown = `# tidypass keys

## Services

- **a** add a service
- **enter** open the selected service
- **↑/↓** move the selection, the mouse wheel scrolls
- **/** search services by name, **esc** clears the search
- **q** quit

## Service details

- **a** add an account
- **d** delete the selected account
- **c** copy its password to the clipboard
- **v** reveal or hide passwords
- **x** delete a service that has no accounts
- **esc** close

## Forms

- **tab** next field, **shift+tab** previous field
- **enter** submit, **esc** cancel

Nothing is saved unless a database is configured.
`

// helpWrap is the narrowest word-wrap width for the help overlay.
const helpWrap = 40

// renderHelpOverlay renders the key reference. Plain terminals and tests
// get the unstyled rendition.
func renderHelpOverlay(width int) string {
	style := "dark"
	if lipgloss.ColorProfile() == termenv.Ascii {
		style = "notty"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, helpWrap)),
	)
	if err != nil {
		slog.Warn("creating help renderer failed", "error", err)
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		slog.Warn("rendering help failed", "error", err)
		return helpMarkdown
	}

	return out + "\n" + RenderHelp("esc", "close")
}

// updateHelp handles input while the help overlay is shown.
func (m Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, HelpKeys.Close) {
		m.showHelp = false
		m.helpView = ""
	}

	return m, nil
}
