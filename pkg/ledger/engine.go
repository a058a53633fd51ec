// Package ledger implements the ticket inventory ledger: an ordered catalog
// of events, a registry of clients with their holdings, and the Engine that
// moves tickets between the two.
//
// The Engine is the only writer. Every Sell and Cancel validates fully
// before mutating anything, so a failed call leaves all state untouched, and
// for every event remaining plus held tickets always equals the capacity the
// event was created with.
//
// Example usage:
//
//	engine, err := ledger.Build(ledger.Bootstrap{
//	    Events:  []ledger.EventSpec{{Name: "Football", Tickets: 2}},
//	    Clients: []ledger.ClientSpec{{FirstName: "Anna", LastName: "Smith"}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	anna, _ := engine.Registry().FindByFullName("Anna", "Smith")
//	football, _ := engine.Catalog().FindByName("Football")
//	held, err := engine.Sell(anna, football, 2)
package ledger

import (
	stderrors "errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// DefaultHoldingLimit is the number of distinct events a client may hold
// tickets for at once.
const DefaultHoldingLimit = 3

// Engine applies sales and cancellations to a Catalog and Registry.
// A single mutex serialises transactions.
type Engine struct {
	mu       sync.Mutex
	catalog  *Catalog
	registry *Registry
	notifier Notifier
	logger   *zerolog.Logger
	limit    int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNotifier sets the sold-out notifier.
func WithNotifier(n Notifier) EngineOption {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zerolog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHoldingLimit overrides DefaultHoldingLimit. Non-positive values are ignored.
func WithHoldingLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// NewEngine creates an engine over an existing catalog and registry.
func NewEngine(catalog *Catalog, registry *Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog:  catalog,
		registry: registry,
		notifier: nopNotifier{},
		logger:   logging.Default(),
		limit:    DefaultHoldingLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's catalog for read-only lookups.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Registry returns the engine's client registry for read-only lookups.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Read calls fn with the catalog and registry while no transaction is in
// flight. fn must not call back into the engine.
func (e *Engine) Read(fn func(catalog *Catalog, registry *Registry)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.catalog, e.registry)
}

// HoldingLimit returns the maximum number of distinct events per client.
func (e *Engine) HoldingLimit() int {
	return e.limit
}

// Sell moves quantity tickets for event from the catalog to client and
// returns the client's new holding for that event.
//
// Checks run in this order: quantity must be positive; a client at the
// holding limit may only top up an event already held; the event must not
// be sold out (the notifier is called once when it is); the event must
// have at least quantity tickets left.
func (e *Engine) Sell(client *Client, event *Event, quantity int) (int, error) {
	return e.SellThen(client, event, quantity, nil)
}

// CommitFunc observes an applied transaction while the engine lock is still
// held. held is the client's holding for the event afterwards. It must not
// call back into the Engine.
type CommitFunc func(held int)

// SellThen is Sell with commit called after the sale is applied and before
// the lock is released, so commits are observed in the order they happened.
func (e *Engine) SellThen(client *Client, event *Event, quantity int, commit CommitFunc) (int, error) {
	held, err := e.sell(client, event, quantity, commit)
	if err != nil {
		if errors.IsSoldOut(err) {
			e.notifySoldOut(client, event)
		}
		return 0, err
	}
	return held, nil
}

func (e *Engine) sell(client *Client, event *Event, quantity int, commit CommitFunc) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		return 0, &errors.QuantityError{Operation: "sell", Quantity: quantity}
	}
	if err := e.resolve(client, event); err != nil {
		return 0, err
	}

	existing := client.holding(event.name)
	if existing == nil && client.DistinctEventCount() >= e.limit {
		return 0, &errors.HoldingLimitError{Client: client.FullName(), Event: event.name, Limit: e.limit}
	}
	if event.remaining == 0 {
		return 0, &errors.SoldOutError{Event: event.name}
	}
	if quantity > event.remaining {
		return 0, &errors.InsufficientStockError{Event: event.name, Requested: quantity, Remaining: event.remaining}
	}

	// The catalog adjustment is the only step with a failure path, so it
	// goes first and the holding update below cannot be left half done.
	if err := e.catalog.adjustRemaining(event, -quantity); err != nil {
		return 0, err
	}

	held := quantity
	if existing != nil {
		existing.Quantity += quantity
		held = existing.Quantity
	} else {
		client.addHolding(event.name, quantity)
	}

	e.logger.Debug().
		Str("client", client.FullName()).
		Str("event", event.name).
		Int("quantity", quantity).
		Int("held", held).
		Int("remaining", event.remaining).
		Msg("Sold tickets")

	if commit != nil {
		commit(held)
	}
	return held, nil
}

// Cancel returns quantity of client's tickets for event to the catalog.
// Returning the full holding removes it.
func (e *Engine) Cancel(client *Client, event *Event, quantity int) error {
	return e.CancelThen(client, event, quantity, nil)
}

// CancelThen is Cancel with commit called after the return is applied and
// before the lock is released.
func (e *Engine) CancelThen(client *Client, event *Event, quantity int, commit CommitFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		return &errors.QuantityError{Operation: "cancel", Quantity: quantity}
	}
	if err := e.resolve(client, event); err != nil {
		return err
	}

	holding := client.holding(event.name)
	if holding == nil {
		return &errors.NoSuchHoldingError{Client: client.FullName(), Event: event.name}
	}
	if quantity > holding.Quantity {
		return &errors.InsufficientHoldingError{
			Client:    client.FullName(),
			Event:     event.name,
			Requested: quantity,
			Held:      holding.Quantity,
		}
	}

	if err := e.catalog.adjustRemaining(event, quantity); err != nil {
		return err
	}

	held := holding.Quantity - quantity
	if held == 0 {
		client.removeHolding(event.name)
	} else {
		holding.Quantity = held
	}

	e.logger.Debug().
		Str("client", client.FullName()).
		Str("event", event.name).
		Int("quantity", quantity).
		Int("remaining", event.remaining).
		Msg("Cancelled tickets")

	if commit != nil {
		commit(held)
	}
	return nil
}

// Audit checks conservation for every event and the holding limit for
// every client. It returns all violations joined, or nil.
func (e *Engine) Audit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	held := make(map[string]int, e.catalog.Len())
	for _, client := range e.registry.Clients() {
		if n := client.DistinctEventCount(); n > e.limit {
			errs = append(errs, &errors.HoldingLimitError{Client: client.FullName(), Limit: e.limit})
		}
		for _, h := range client.holdings.All() {
			held[h.Event] += h.Quantity
		}
	}

	for _, event := range e.catalog.Events() {
		if event.remaining+held[event.name] != event.capacity {
			errs = append(errs, &errors.ConservationError{
				Event:     event.name,
				Capacity:  event.capacity,
				Remaining: event.remaining,
				Held:      held[event.name],
			})
		}
	}

	return stderrors.Join(errs...)
}

// resolve rejects nil arguments and objects that belong to another ledger.
func (e *Engine) resolve(client *Client, event *Event) error {
	if client == nil {
		return errors.NewValidationError("client", nil, "client is required")
	}
	if event == nil {
		return errors.NewValidationError("event", nil, "event is required")
	}
	if !e.registry.contains(client) {
		return errors.NewNotFoundError("client", client.FullName())
	}
	if !e.catalog.contains(event) {
		return errors.NewNotFoundError("event", event.name)
	}
	return nil
}

func (e *Engine) notifySoldOut(client *Client, event *Event) {
	e.logger.Info().
		Str("client", client.FullName()).
		Str("event", event.name).
		Msg("Event sold out")

	if err := e.notifier.NotifySoldOut(client, event); err != nil {
		e.logger.Warn().
			Err(err).
			Str("client", client.FullName()).
			Str("event", event.name).
			Msg("Sold-out notification failed")
	}
}
