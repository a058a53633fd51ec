package boxoffice

import (
	"sync"

	"github.com/agentstation/boxoffice/pkg/ledger"
)

// Hook function types for transaction events
type (
	// SoldHook is called after a successful sale
	SoldHook func(entry Entry)

	// CancelledHook is called after a successful cancellation
	CancelledHook func(entry Entry)

	// SoldOutHook is called when a sale fails because the event has no tickets left
	SoldOutHook func(client *ledger.Client, event *ledger.Event)
)

// Hooks registers callbacks for transaction events. Callbacks run on the
// caller's goroutine after the ledger lock is released.
type Hooks interface {
	OnSold(SoldHook)
	OnCancelled(CancelledHook)
	OnSoldOut(SoldOutHook)
}

// hooks manages event callbacks for transactions
type hooks struct {
	mu          sync.RWMutex
	onSold      []SoldHook
	onCancelled []CancelledHook
	onSoldOut   []SoldOutHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnSold registers a callback for sales.
func (b *boxOffice) OnSold(fn SoldHook) {
	b.hooks.mu.Lock()
	defer b.hooks.mu.Unlock()
	b.hooks.onSold = append(b.hooks.onSold, fn)
}

// OnCancelled registers a callback for cancellations.
func (b *boxOffice) OnCancelled(fn CancelledHook) {
	b.hooks.mu.Lock()
	defer b.hooks.mu.Unlock()
	b.hooks.onCancelled = append(b.hooks.onCancelled, fn)
}

// OnSoldOut registers a callback for sold-out signals.
func (b *boxOffice) OnSoldOut(fn SoldOutHook) {
	b.hooks.mu.Lock()
	defer b.hooks.mu.Unlock()
	b.hooks.onSoldOut = append(b.hooks.onSoldOut, fn)
}

// triggerEntry dispatches a journal entry to the hooks for its kind.
func (h *hooks) triggerEntry(entry Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch entry.Kind {
	case KindSale:
		for _, hook := range h.onSold {
			hook(entry)
		}
	case KindCancellation:
		for _, hook := range h.onCancelled {
			hook(entry)
		}
	}
}

// triggerSoldOut has the ledger.Notifier signature so it can sit in the
// engine's notifier chain.
func (h *hooks) triggerSoldOut(client *ledger.Client, event *ledger.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onSoldOut {
		hook(client, event)
	}
	return nil
}
