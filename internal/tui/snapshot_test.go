package tui

import (
	"testing"

	"github.com/AntoineGS/tidypass/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
)

// TestView_Snapshots tests the visual output of every screen using golden
// file snapshots.
func TestView_Snapshots(t *testing.T) {
	tests := []struct {
		setupFunc func() Model
		name      string
	}{
		{setupEmptyList, "list_empty"},
		{setupServiceList, "list_services"},
		{setupClippedList, "list_clipped"},
		{setupDetails, "details_grouped"},
		{setupEmptyDetails, "details_empty"},
		{setupAddServiceForm, "form_add_service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Force ASCII color profile for consistent rendering
			lipgloss.SetColorProfile(termenv.Ascii)

			m := tt.setupFunc()

			g := goldie.New(t)
			g.Assert(t, tt.name, []byte(plainView(m)))
		})
	}
}

// sized returns a model for coll already resized to width x height.
func sized(coll vault.Collection, layout vault.Layout, width, height int) Model {
	m := NewModel(coll, layout)
	m, _ = step(m, tea.WindowSizeMsg{Width: width, Height: height})

	return m
}

func twoServices() vault.Collection {
	return vault.Collection{Groups: []vault.Group{
		vault.NewGroup("Mail", vault.Credential{Name: "alice", Secret: "secret1"}),
		vault.NewGroup("Bank",
			vault.Credential{Name: "bob", Secret: "p@ss"},
			vault.Credential{Name: "carol", Secret: "xyz"},
		),
	}}
}

// setupEmptyList shows the empty-state message above the Add Service button.
func setupEmptyList() Model {
	return sized(vault.Collection{}, vault.LayoutGrouped, 60, 12)
}

// setupServiceList shows two rows with the cursor on the first.
func setupServiceList() Model {
	return sized(twoServices(), vault.LayoutGrouped, 60, 13)
}

// setupClippedList cuts the second row at the viewport edge.
func setupClippedList() Model {
	return sized(twoServices(), vault.LayoutGrouped, 60, 12)
}

// setupDetails opens Bank with its two accounts.
func setupDetails() Model {
	m := sized(twoServices(), vault.LayoutGrouped, 60, 18)
	m, _ = step(m, keyMsg("down"), keyMsg("enter"))

	return m
}

// setupEmptyDetails opens a service without accounts, which offers deletion.
func setupEmptyDetails() Model {
	coll := vault.Collection{Groups: []vault.Group{vault.NewGroup("Bank")}}
	m := sized(coll, vault.LayoutGrouped, 60, 12)
	m, _ = step(m, keyMsg("enter"))

	return m
}

// setupAddServiceForm fills two fields and leaves focus on the password.
func setupAddServiceForm() Model {
	m := sized(vault.Collection{}, vault.LayoutGrouped, 60, 24)
	m, _ = step(m, keyMsg("a"), runes("Mail"), keyMsg("tab"), runes("alice"), keyMsg("tab"))

	return m
}
