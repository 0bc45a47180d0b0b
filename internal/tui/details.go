package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/AntoineGS/tidypass/internal/tui/components"
	"github.com/AntoineGS/tidypass/internal/vault"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActionKind is what the details modal asks its owner to do.
type ActionKind int

// Details modal actions.
const (
	// ActionNone means the modal handled the message itself
	ActionNone ActionKind = iota
	// ActionClose closes the modal
	ActionClose
	// ActionAddChild opens the account form for this service
	ActionAddChild
	// ActionDeleteChild removes the account at Action.Index
	ActionDeleteChild
	// ActionCopySecret copies the secret of the account at Action.Index
	ActionCopySecret
	// ActionDeleteGroup removes the whole service and closes the modal
	ActionDeleteGroup
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionClose:
		return "close"
	case ActionAddChild:
		return "add-child"
	case ActionDeleteChild:
		return "delete-child"
	case ActionCopySecret:
		return "copy-secret"
	case ActionDeleteGroup:
		return "delete-group"
	}

	return "unknown"
}

// Action is the result of one DetailsModal step. Index is only meaningful
// for per-account actions.
type Action struct {
	Kind  ActionKind
	Index int
}

// DetailsModal shows the accounts of one service. It never mutates the
// collection; every change is returned as an Action.
type DetailsModal struct {
	// Group is the collection index of the service shown
	Group int

	layout vault.Layout
	list   components.ScrollList
	cursor int
	reveal bool
}

// NewDetailsModal opens the modal on service gi.
func NewDetailsModal(gi int, layout vault.Layout, viewport int) *DetailsModal {
	return &DetailsModal{
		Group:  gi,
		layout: layout,
		list: components.ScrollList{
			Left:      screenLeft,
			Top:       screenTop,
			Width:     rowWidth + 2,
			RowHeight: accountRowHeight,
			Spacing:   rowSpacing,
			Viewport:  viewport,
		},
	}
}

// Cursor returns the selected account index.
func (d *DetailsModal) Cursor() int {
	return d.cursor
}

// Offset returns the scroll offset of the account list.
func (d *DetailsModal) Offset() int {
	return d.list.Offset()
}

// Revealed reports whether secrets are shown in clear text.
func (d *DetailsModal) Revealed() bool {
	return d.reveal
}

// Resize changes the viewport height for a service with n accounts.
func (d *DetailsModal) Resize(viewport, n int) {
	d.list.Viewport = viewport
	d.Clamp(n)
}

// Clamp keeps the cursor and scroll offset valid for n accounts.
func (d *DetailsModal) Clamp(n int) {
	d.cursor = min(d.cursor, max(n-1, 0))
	d.list.Clamp(n)
}

// Select moves the cursor to account i and scrolls it into view.
func (d *DetailsModal) Select(i, n int) {
	if i < 0 || i >= n {
		return
	}

	d.cursor = i
	d.list.EnsureVisible(i, n)
}

func (d *DetailsModal) canAdd() bool {
	return d.layout == vault.LayoutGrouped
}

// canDeleteGroup offers Delete Service for a service without accounts. Flat
// vaults can hold one when they were last edited in the grouped layout.
func (d *DetailsModal) canDeleteGroup(g vault.Group) bool {
	return len(g.Children) == 0
}

// deleteAction is what a per-account delete means in the current layout.
func (d *DetailsModal) deleteAction(i int) Action {
	if d.layout == vault.LayoutFlat {
		return Action{Kind: ActionDeleteGroup}
	}

	return Action{Kind: ActionDeleteChild, Index: i}
}

// Step applies one message for service g.
func (d *DetailsModal) Step(msg tea.Msg, g vault.Group) Action {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg, g)
	case tea.MouseMsg:
		return d.handleMouse(msg, g)
	}

	return Action{}
}

func (d *DetailsModal) handleKey(msg tea.KeyMsg, g vault.Group) Action {
	n := len(g.Children)

	switch {
	case key.Matches(msg, DetailKeys.Close):
		return Action{Kind: ActionClose}

	case key.Matches(msg, DetailKeys.Up):
		d.Select(d.cursor-1, n)

	case key.Matches(msg, DetailKeys.Down):
		d.Select(d.cursor+1, n)

	case key.Matches(msg, DetailKeys.AddAccount):
		if d.canAdd() {
			return Action{Kind: ActionAddChild}
		}

	case key.Matches(msg, DetailKeys.DeleteService):
		if d.canDeleteGroup(g) {
			return Action{Kind: ActionDeleteGroup}
		}

	case key.Matches(msg, DetailKeys.Delete):
		if n > 0 {
			return d.deleteAction(d.cursor)
		}

	case key.Matches(msg, DetailKeys.Copy):
		if n > 0 {
			return Action{Kind: ActionCopySecret, Index: d.cursor}
		}

	case key.Matches(msg, DetailKeys.Reveal):
		d.reveal = !d.reveal
	}

	return Action{}
}

// footerY is the first line of the button row.
func (d *DetailsModal) footerY() int {
	return d.list.Top + d.list.Viewport
}

func (d *DetailsModal) addButtonRect() components.Rect {
	return components.Rect{X: screenLeft, Y: d.footerY(), W: addButtonWidth + 2, H: 3}
}

func (d *DetailsModal) deleteGroupRect() components.Rect {
	x := screenLeft
	if d.canAdd() {
		x += addButtonWidth + 2 + buttonGap
	}

	return components.Rect{X: x, Y: d.footerY(), W: deleteButtonWidth + 2, H: 3}
}

// rowButtons returns the delete and copy rectangles of account i. They sit
// on the third text line of the row box, after the border and padding.
func (d *DetailsModal) rowButtons(i int) (del, cp components.Rect, visible bool) {
	r, visible := d.list.RowRect(i)
	x := r.X + 2
	y := r.Y + 3

	del = components.Rect{X: x, Y: y, W: len(LabelDelete), H: 1}
	cp = components.Rect{X: x + len(LabelDelete) + 2, Y: y, W: len(LabelCopy), H: 1}

	return del, cp, visible
}

func (d *DetailsModal) handleMouse(msg tea.MouseMsg, g vault.Group) Action {
	n := len(g.Children)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		d.list.Scroll(1, n)
		return Action{}
	case tea.MouseButtonWheelDown:
		d.list.Scroll(-1, n)
		return Action{}
	case tea.MouseButtonLeft:
	default:
		return Action{}
	}

	if msg.Action != tea.MouseActionPress {
		return Action{}
	}

	x, y := msg.X, msg.Y

	if d.canAdd() && d.addButtonRect().Contains(x, y) {
		return Action{Kind: ActionAddChild}
	}

	if d.list.Visible(x, y) {
		for i := 0; i < n; i++ {
			del, cp, visible := d.rowButtons(i)
			if !visible {
				continue
			}

			if del.Contains(x, y) {
				d.cursor = i
				return d.deleteAction(i)
			}

			if cp.Contains(x, y) {
				d.cursor = i
				return Action{Kind: ActionCopySecret, Index: i}
			}
		}
	}

	if d.canDeleteGroup(g) && d.deleteGroupRect().Contains(x, y) {
		return Action{Kind: ActionDeleteGroup}
	}

	if row := d.list.HitTest(n, x, y); row >= 0 {
		d.cursor = row
	}

	return Action{}
}

// maskSecret hides every character of secret.
func maskSecret(secret string) string {
	return strings.Repeat(string(components.MaskGlyph), utf8.RuneCountInString(secret))
}

func (d *DetailsModal) renderRow(c vault.Credential, selected bool) string {
	secret := maskSecret(c.Secret)
	if d.reveal {
		secret = c.Secret
	}

	text := strings.Join([]string{
		"Account: " + c.Name,
		"Password: " + secret,
		LabelDelete + "  " + LabelCopy,
	}, "\n")

	return components.Box(text, rowWidth, selected)
}

// View renders the modal for service g. status fills the line under the
// title.
func (d *DetailsModal) View(g vault.Group, status string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Service: "+g.Label()) + "\n")
	b.WriteString(status + "\n")

	n := len(g.Children)
	if n == 0 {
		b.WriteString(emptyViewport(d.list.Viewport, EmptyAccounts))
	} else {
		b.WriteString(d.list.Render(n, func(i int) string {
			return d.renderRow(g.Children[i], i == d.cursor)
		}))
	}
	b.WriteString("\n")

	var buttons []string
	if d.canAdd() {
		buttons = append(buttons, components.Box(LabelAddAccount, addButtonWidth, false))
	}
	if d.canDeleteGroup(g) {
		if len(buttons) > 0 {
			buttons = append(buttons, strings.Repeat(" ", buttonGap))
		}
		buttons = append(buttons, components.Box(LabelDeleteService, deleteButtonWidth, false))
	}
	b.WriteString(footerButtons(buttons...) + "\n")

	b.WriteString(d.helpLine(g))

	return b.String()
}

func (d *DetailsModal) helpLine(g vault.Group) string {
	keys := []string{"↑/↓", "select", "d", "delete", "c", "copy"}
	if d.canAdd() {
		keys = append(keys, "a", "add")
	}
	if d.canDeleteGroup(g) {
		keys = append(keys, "x", "delete service")
	}
	keys = append(keys, "v", "reveal", "esc", "close")

	return RenderHelp(keys...)
}

// emptyViewport fills a viewport with a single muted message on its first line.
func emptyViewport(height int, message string) string {
	lines := make([]string, height)
	lines[0] = strings.Repeat(" ", screenLeft) + MutedTextStyle.Render(message)

	return strings.Join(lines, "\n")
}

// footerButtons lays button boxes side by side in a three-line block at the
// left margin. With no buttons the block is blank.
func footerButtons(buttons ...string) string {
	if len(buttons) == 0 {
		return "\n\n"
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	lines := strings.Split(row, "\n")
	for i, line := range lines {
		lines[i] = strings.Repeat(" ", screenLeft) + line
	}

	return strings.Join(lines, "\n")
}
