// Package tui provides the terminal user interface.
package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/AntoineGS/tidypass/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

// frameRate caps how often the screen is redrawn.
const frameRate = 60

// Options configures a TUI session.
type Options struct {
	// Sink persists the collection; nil keeps everything in memory
	Sink       VaultSink
	Collection vault.Collection
	Layout     vault.Layout
	// Notice is shown as an error in the status line at startup
	Notice string
}

// Run starts the interactive TUI and blocks until the user quits.
func Run(opts Options) error {
	model := NewModel(opts.Collection, opts.Layout)
	model.Sink = opts.Sink
	if opts.Notice != "" {
		model.setError(opts.Notice)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithFPS(frameRate))

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	m, ok := finalModel.(Model)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}

	// A save issued just before quitting may not have finished
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := m.flush(ctx); err != nil {
		return fmt.Errorf("saving vault: %w", err)
	}

	return nil
}

// IsTerminal checks if stdout is a terminal
func IsTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
