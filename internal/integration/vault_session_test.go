package integration

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/AntoineGS/tidypass/internal/state"
	"github.com/AntoineGS/tidypass/internal/tui"
	"github.com/AntoineGS/tidypass/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

type session struct {
	t *testing.T
	m tui.Model
}

func (s *session) send(msgs ...tea.Msg) tea.Cmd {
	s.t.Helper()

	var cmd tea.Cmd
	for _, msg := range msgs {
		next, c := s.m.Update(msg)
		m, ok := next.(tui.Model)
		if !ok {
			s.t.Fatalf("Update returned %T", next)
		}
		s.m, cmd = m, c
	}

	return cmd
}

// save runs a persistence command and hands its result back to the model.
func (s *session) save(cmd tea.Cmd) {
	s.t.Helper()

	if cmd == nil {
		s.t.Fatal("expected a save command")
	}
	s.send(cmd())
	if strings.HasPrefix(s.m.Status(), "Save failed") {
		s.t.Fatalf("save reported %q", s.m.Status())
	}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	up    = tea.KeyMsg{Type: tea.KeyUp}
)

func openStore(t *testing.T, path string) *state.Store {
	t.Helper()

	store, err := state.Open(path)
	if err != nil {
		t.Fatalf("Open(%s) failed: %v", path, err)
	}
	t.Cleanup(func() { _ = store.Close() }) //nolint:errcheck // cleanup is best-effort

	return store
}

func TestVaultSessionEndToEnd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vault.db")
	store := openStore(t, dbPath)

	s := &session{t: t, m: tui.NewModel(vault.Collection{}, vault.LayoutGrouped)}
	s.m.Sink = store
	s.send(tea.WindowSizeMsg{Width: 60, Height: 20})

	s.save(s.send(typed("a"), typed("Bank"), tab, typed("bob"), tab, typed("p@ss"), enter))
	s.save(s.send(typed("a"), typed("Mail"), tab, typed("alice"), tab, typed("secret1"), enter))

	// Open Bank and add a second account
	s.send(up, enter)
	if s.m.Details() == nil {
		t.Fatal("enter should open the details modal")
	}
	s.save(s.send(typed("a"), typed("carol"), tab, typed("xyz"), enter))

	// Remove bob
	s.save(s.send(up, typed("d")))

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openStore(t, dbPath)
	got, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := vault.Collection{Groups: []vault.Group{
		vault.NewGroup("Bank", vault.Credential{Name: "carol", Secret: "xyz"}),
		vault.NewGroup("Mail", vault.Credential{Name: "alice", Secret: "secret1"}),
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded vault = %+v, want %+v", got, want)
	}
}

func TestVaultSessionResumesFromDisk(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vault.db")

	seed := vault.Collection{}
	seed.AddGroup("Forum", nil)
	if err := openStore(t, dbPath).Save(context.Background(), seed); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store := openStore(t, dbPath)
	coll, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s := &session{t: t, m: tui.NewModel(coll, vault.LayoutGrouped)}
	s.m.Sink = store
	s.send(tea.WindowSizeMsg{Width: 60, Height: 20})

	// An empty service can be deleted from its details
	s.save(s.send(enter, typed("x")))

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("vault has %d services after deleting the only one", got.Len())
	}
}
