package boxoffice

import (
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// Transactions sells and cancels tickets.
type Transactions interface {
	// Sell sells quantity tickets and returns the client's new holding
	Sell(client *ledger.Client, event *ledger.Event, quantity int) (int, error)

	// Cancel returns quantity tickets to the catalog
	Cancel(client *ledger.Client, event *ledger.Event, quantity int) error

	// SellByName resolves "First Last" and the event name, then sells
	SellByName(clientName, eventName string, quantity int) (int, error)

	// CancelByName resolves "First Last" and the event name, then cancels
	CancelByName(clientName, eventName string, quantity int) error
}

// Sell sells quantity tickets and returns the client's new holding.
func (b *boxOffice) Sell(client *ledger.Client, event *ledger.Event, quantity int) (int, error) {
	var entry Entry
	held, err := b.engine.SellThen(client, event, quantity, func(held int) {
		entry = b.record(KindSale, client, event, quantity, held)
	})
	if err != nil {
		return 0, err
	}
	b.announce(entry)
	return held, nil
}

// Cancel returns quantity tickets to the catalog.
func (b *boxOffice) Cancel(client *ledger.Client, event *ledger.Event, quantity int) error {
	var entry Entry
	err := b.engine.CancelThen(client, event, quantity, func(held int) {
		entry = b.record(KindCancellation, client, event, quantity, held)
	})
	if err != nil {
		return err
	}
	b.announce(entry)
	return nil
}

// SellByName resolves the client and event by name, then sells.
func (b *boxOffice) SellByName(clientName, eventName string, quantity int) (int, error) {
	client, event, err := b.resolve(clientName, eventName)
	if err != nil {
		return 0, err
	}
	return b.Sell(client, event, quantity)
}

// CancelByName resolves the client and event by name, then cancels.
func (b *boxOffice) CancelByName(clientName, eventName string, quantity int) error {
	client, event, err := b.resolve(clientName, eventName)
	if err != nil {
		return err
	}
	return b.Cancel(client, event, quantity)
}

func (b *boxOffice) resolve(clientName, eventName string) (*ledger.Client, *ledger.Event, error) {
	client, ok := b.engine.Registry().FindByDisplayName(clientName)
	if !ok {
		return nil, nil, errors.NewNotFoundError("client", clientName)
	}
	event, ok := b.engine.Catalog().FindByName(eventName)
	if !ok {
		return nil, nil, errors.NewNotFoundError("event", eventName)
	}
	return client, event, nil
}

// record journals a transaction. It runs under the engine lock, so journal
// order is the order transactions were applied.
func (b *boxOffice) record(kind Kind, client *ledger.Client, event *ledger.Event, quantity, held int) Entry {
	return b.journal.append(Entry{
		Kind:     kind,
		Client:   client.FullName(),
		Event:    event.Name(),
		Quantity: quantity,
		Held:     held,
		At:       b.clock.Now(),
	})
}

// announce logs an entry and runs the hooks once the engine lock is released.
func (b *boxOffice) announce(entry Entry) {
	b.logger.Info().
		Str("id", entry.ID).
		Str("kind", entry.Kind.String()).
		Str("client", entry.Client).
		Str("event", entry.Event).
		Int("quantity", entry.Quantity).
		Msg("Recorded transaction")

	b.hooks.triggerEntry(entry)
}
