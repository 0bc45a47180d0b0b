package tui

import "github.com/charmbracelet/bubbles/key"

// SharedKeyMap defines keybindings available on all screens.
type SharedKeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding
}

// SharedKeys are available on all screens.
var SharedKeys = SharedKeyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "force quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// ListKeyMap defines keybindings for the service list.
type ListKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	AddService key.Binding
	Search     key.Binding
	ClearQuery key.Binding
}

// ListKeys are the keybindings for the service list.
var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "open"),
	),
	AddService: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add service"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ClearQuery: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
}

// DetailKeyMap defines keybindings for the service details modal.
type DetailKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Delete        key.Binding
	Copy          key.Binding
	AddAccount    key.Binding
	DeleteService key.Binding
	Reveal        key.Binding
	Close         key.Binding
}

// DetailKeys are the keybindings for the details modal.
var DetailKeys = DetailKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c", "copy"),
	),
	AddAccount: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add account"),
	),
	DeleteService: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete service"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "reveal"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "h", "left"),
		key.WithHelp("esc", "close"),
	),
}

// SearchKeyMap defines keybindings for search mode.
type SearchKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// SearchKeys are the keybindings for search mode.
var SearchKeys = SearchKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
	),
}

// HelpKeyMap defines keybindings for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// HelpKeys are the keybindings for the help overlay.
var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "?", "q", "enter"),
		key.WithHelp("esc", "close"),
	),
}
