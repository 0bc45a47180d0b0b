package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/AntoineGS/tidypass/internal/tui/components"
	"github.com/AntoineGS/tidypass/internal/vault"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// query returns the active search text.
func (m *Model) query() string {
	return strings.TrimSpace(m.search.Value())
}

// visible returns the collection indices shown in the list, in order.
func (m *Model) visible() []int {
	return m.Collection.Filter(m.query())
}

func (m *Model) clampList() {
	n := len(m.visible())
	m.cursor = min(m.cursor, max(n-1, 0))
	m.list.Clamp(n)
}

// selectGroup moves the cursor to service gi if the filter shows it.
func (m *Model) selectGroup(gi int) {
	vis := m.visible()
	for row, idx := range vis {
		if idx == gi {
			m.cursor = row
			m.list.EnsureVisible(row, len(vis))
			return
		}
	}
}

func (m *Model) addButtonRect() components.Rect {
	return components.Rect{X: screenLeft, Y: screenTop + m.list.Viewport, W: addButtonWidth + 2, H: 3}
}

func (m Model) openDetails(gi int) (tea.Model, tea.Cmd) {
	m.details = NewDetailsModal(gi, m.Layout, m.viewport())
	m.status = ""
	slog.Debug("details opened", "service", gi)

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleListKey(msg)
	case tea.MouseMsg:
		return m.handleListMouse(msg)
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vis := m.visible()

	switch {
	case key.Matches(msg, SharedKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, SharedKeys.Help):
		m.showHelp = true
		m.helpView = renderHelpOverlay(m.width)

	case key.Matches(msg, ListKeys.Search):
		m.searching = true
		m.status = ""
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, ListKeys.ClearQuery):
		if m.query() != "" {
			m.search.Reset()
			m.cursor = 0
			m.list.SetOffset(0, len(m.visible()))
		}
		m.status = ""

	case key.Matches(msg, ListKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.list.EnsureVisible(m.cursor, len(vis))
		}

	case key.Matches(msg, ListKeys.Down):
		if m.cursor < len(vis)-1 {
			m.cursor++
			m.list.EnsureVisible(m.cursor, len(vis))
		}

	case key.Matches(msg, ListKeys.Open):
		if m.cursor < len(vis) {
			return m.openDetails(vis[m.cursor])
		}

	case key.Matches(msg, ListKeys.AddService):
		return m.openForm(FormAddService)
	}

	return m, nil
}

// handleListMouse scrolls on the wheel and, on a left press, tests the
// Add Service button before the rows.
func (m Model) handleListMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	vis := m.visible()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.list.Scroll(1, len(vis))
		return m, nil
	case tea.MouseButtonWheelDown:
		m.list.Scroll(-1, len(vis))
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	if m.addButtonRect().Contains(msg.X, msg.Y) {
		return m.openForm(FormAddService)
	}

	if row := m.list.HitTest(len(vis), msg.X, msg.Y); row >= 0 {
		m.cursor = row
		return m.openDetails(vis[row])
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, SearchKeys.Confirm):
			m.searching = false
			m.search.Blur()
			return m, nil

		case key.Matches(keyMsg, SearchKeys.Cancel):
			m.searching = false
			m.search.Blur()
			m.search.Reset()
			m.cursor = 0
			m.list.SetOffset(0, len(m.visible()))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.list.SetOffset(0, len(m.visible()))

	return m, cmd
}

func (m *Model) renderServiceRow(g vault.Group, selected bool) string {
	text := g.Label()
	if m.Layout == vault.LayoutGrouped {
		text = fmt.Sprintf("%s (%d)", g.Label(), len(g.Children))
	}

	return components.Box(text, rowWidth, selected)
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Services") + "\n")
	b.WriteString(m.statusLine() + "\n")

	vis := m.visible()
	switch {
	case len(vis) > 0:
		b.WriteString(m.list.Render(len(vis), func(row int) string {
			return m.renderServiceRow(m.Collection.Groups[vis[row]], row == m.cursor)
		}))
	case m.query() != "":
		b.WriteString(emptyViewport(m.list.Viewport, EmptyMatches))
	default:
		b.WriteString(emptyViewport(m.list.Viewport, EmptyServices))
	}
	b.WriteString("\n")

	b.WriteString(footerButtons(components.Box(LabelAddService, addButtonWidth, false)) + "\n")
	b.WriteString(RenderHelp(
		"a", "add",
		"enter", "open",
		"/", "search",
		"?", "help",
		"q", "quit",
	))

	return b.String()
}
