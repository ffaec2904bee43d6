package httpserver

import (
	"sync"

	"go.trai.ch/xmlres/internal/core/domain"
)

// pendingTable remembers the download signals handed out to clients so they
// can wait for them by id. Settled signals are dropped once the table grows
// past pendingTableLimit.
type pendingTable struct {
	mu      sync.Mutex
	signals map[string]*domain.PendingSignal
}

const pendingTableLimit = 1024

func newPendingTable() *pendingTable {
	return &pendingTable{signals: make(map[string]*domain.PendingSignal)}
}

func (t *pendingTable) add(signals []*domain.PendingSignal) {
	if len(signals) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.signals) >= pendingTableLimit {
		for id, s := range t.signals {
			if s.Completed() {
				delete(t.signals, id)
			}
		}
	}
	for _, s := range signals {
		t.signals[s.ID()] = s
	}
}

func (t *pendingTable) get(id string) (*domain.PendingSignal, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.signals[id]
	return s, ok
}

func (t *pendingTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.signals)
}
