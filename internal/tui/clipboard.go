package tui

import (
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Clipboard receives copied secrets. The system clipboard is write-only
// from the application's point of view.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll places text on the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err     error
	account string
}

// copySecretCmd writes secret to the clipboard off the update loop.
func copySecretCmd(cb Clipboard, account, secret string) tea.Cmd {
	return func() tea.Msg {
		err := cb.WriteAll(secret)
		if err != nil {
			slog.Warn("clipboard write failed", "account", account, "error", err)
		}

		return copiedMsg{account: account, err: err}
	}
}
