package tui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/AntoineGS/tidypass/internal/vault"
	tea "github.com/charmbracelet/bubbletea"
)

// saveTimeout bounds a single persistence write.
const saveTimeout = 5 * time.Second

// VaultSink persists the collection after each change.
type VaultSink interface {
	Save(ctx context.Context, coll vault.Collection) error
}

// savedMsg reports the outcome of a persistence write.
type savedMsg struct {
	err error
}

// saveQueue orders the writes issued by one session. Writes run one at a
// time, and a snapshot older than the last one written is dropped.
type saveQueue struct {
	mu      sync.Mutex
	issued  uint64
	written uint64
}

// next numbers a new snapshot.
func (q *saveQueue) next() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.issued++
	return q.issued
}

// write saves snapshot gen unless a newer one is already stored. It reports
// whether the sink was called.
func (q *saveQueue) write(ctx context.Context, sink VaultSink, gen uint64, coll vault.Collection) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if gen <= q.written {
		return false, nil
	}

	if err := sink.Save(ctx, coll); err != nil {
		return true, err
	}
	q.written = gen

	return true, nil
}

// snapshot copies coll so the write does not race later edits.
func snapshot(coll *vault.Collection) vault.Collection {
	groups := make([]vault.Group, len(coll.Groups))
	for i, g := range coll.Groups {
		children := make([]vault.Credential, len(g.Children))
		copy(children, g.Children)
		groups[i] = vault.NewGroup(g.Label(), children...)
	}

	return vault.Collection{Groups: groups}
}

// saveCmd writes a snapshot of the collection, or does nothing without a sink.
func (m *Model) saveCmd() tea.Cmd {
	if m.Sink == nil {
		return nil
	}
	if m.saves == nil {
		m.saves = &saveQueue{}
	}

	sink, queue := m.Sink, m.saves
	gen := queue.next()
	snap := snapshot(&m.Collection)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		wrote, err := queue.write(ctx, sink, gen, snap)
		switch {
		case err != nil:
			slog.Error("saving vault failed", "error", err)
		case !wrote:
			slog.Debug("stale vault snapshot dropped", "generation", gen)
		default:
			slog.Debug("vault saved", "services", snap.Len(), "generation", gen)
		}

		return savedMsg{err: err}
	}
}

// flush writes the current collection after any save still in flight.
func (m *Model) flush(ctx context.Context) error {
	if m.Sink == nil {
		return nil
	}
	if m.saves == nil {
		m.saves = &saveQueue{}
	}

	_, err := m.saves.write(ctx, m.Sink, m.saves.next(), snapshot(&m.Collection))

	return err
}
