package tui

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AntoineGS/tidypass/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

// overlapSink records saves and notices when two run at once.
type overlapSink struct {
	mu         sync.Mutex
	saves      []vault.Collection
	inFlight   atomic.Int32
	overlapped atomic.Bool
}

func (s *overlapSink) Save(_ context.Context, coll vault.Collection) error {
	if s.inFlight.Add(1) > 1 {
		s.overlapped.Store(true)
	}
	defer s.inFlight.Add(-1)

	time.Sleep(time.Millisecond)

	s.mu.Lock()
	s.saves = append(s.saves, coll)
	s.mu.Unlock()

	return nil
}

func TestSaveCmd_DropsStaleSnapshot(t *testing.T) {
	m, _, sink := newTestModel(twoServices(), vault.LayoutGrouped)

	m, older := step(m, keyMsg("down"), keyMsg("enter"), keyMsg("d"))
	m, newer := step(m, keyMsg("d"))
	if older == nil || newer == nil {
		t.Fatal("each delete should issue a save")
	}

	// Run out of order: the newer snapshot lands first
	m = exec(t, m, newer)
	m = exec(t, m, older)

	if len(sink.saves) != 1 {
		t.Fatalf("%d saves, want only the newest", len(sink.saves))
	}
	if n := len(sink.saves[0].Groups[1].Children); n != 0 {
		t.Errorf("stored Bank has %d accounts, want 0", n)
	}
	if m.Status() != "Deleted account carol" {
		t.Errorf("Status() = %q, a dropped snapshot should not report", m.Status())
	}
}

func TestSaveCmd_ConcurrentWritesAreSerialized(t *testing.T) {
	m := NewModel(vault.Collection{}, vault.LayoutGrouped)
	sink := &overlapSink{}
	m.Sink = sink

	const edits = 10
	cmds := make([]tea.Cmd, 0, edits)
	for i := range edits {
		m.Collection.AddGroup(fmt.Sprintf("service-%d", i), nil)
		cmds = append(cmds, m.saveCmd())
	}

	var wg sync.WaitGroup
	for _, run := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if msg, ok := run().(savedMsg); !ok || msg.err != nil {
				t.Errorf("save returned %#v", msg)
			}
		}()
	}
	wg.Wait()

	if sink.overlapped.Load() {
		t.Error("two saves reached the sink at the same time")
	}
	if len(sink.saves) == 0 {
		t.Fatal("no save reached the sink")
	}
	for i := 1; i < len(sink.saves); i++ {
		if sink.saves[i].Len() <= sink.saves[i-1].Len() {
			t.Errorf("save %d has %d services after %d; an older snapshot overwrote a newer one",
				i, sink.saves[i].Len(), sink.saves[i-1].Len())
		}
	}
	if last := sink.saves[len(sink.saves)-1]; last.Len() != edits {
		t.Errorf("last save has %d services, want %d", last.Len(), edits)
	}
}

func TestFlush_SupersedesPendingSave(t *testing.T) {
	m, _, sink := newTestModel(twoServices(), vault.LayoutGrouped)

	m, pending := step(m, keyMsg("down"), keyMsg("enter"), keyMsg("d"))
	if pending == nil {
		t.Fatal("delete should issue a save")
	}

	if err := m.flush(context.Background()); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	exec(t, m, pending)

	if len(sink.saves) != 1 {
		t.Fatalf("%d saves, want the flush only", len(sink.saves))
	}
	if n := len(sink.saves[0].Groups[1].Children); n != 1 {
		t.Errorf("stored Bank has %d accounts, want 1", n)
	}
}

func TestFlush_WithoutSink(t *testing.T) {
	m := NewModel(twoServices(), vault.LayoutGrouped)

	if err := m.flush(context.Background()); err != nil {
		t.Errorf("flush without a sink = %v, want nil", err)
	}
}
