package boxoffice

import "github.com/agentstation/boxoffice/pkg/ledger"

// EventView is a point-in-time copy of an event.
type EventView struct {
	Name      string `json:"name" yaml:"name"`
	Remaining int    `json:"remaining" yaml:"remaining"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
}

// ClientView is a point-in-time copy of a client and their holdings.
type ClientView struct {
	FirstName string           `json:"first_name" yaml:"first_name"`
	LastName  string           `json:"last_name" yaml:"last_name"`
	Holdings  []ledger.Holding `json:"holdings" yaml:"holdings"`
}

// FullName returns "First Last".
func (c ClientView) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Views provides consistent snapshots of ledger state.
type Views interface {
	// Events returns the events in catalog order
	Events() []EventView

	// Clients returns the clients in registry order
	Clients() []ClientView
}

// Events returns the events in catalog order.
func (b *boxOffice) Events() []EventView {
	var out []EventView
	b.engine.Read(func(catalog *ledger.Catalog, _ *ledger.Registry) {
		out = make([]EventView, 0, catalog.Len())
		for _, e := range catalog.Events() {
			out = append(out, EventView{Name: e.Name(), Remaining: e.Remaining(), Capacity: e.Capacity()})
		}
	})
	return out
}

// Clients returns the clients in registry order.
func (b *boxOffice) Clients() []ClientView {
	var out []ClientView
	b.engine.Read(func(_ *ledger.Catalog, registry *ledger.Registry) {
		out = make([]ClientView, 0, registry.Len())
		for _, c := range registry.Clients() {
			out = append(out, ClientView{FirstName: c.FirstName(), LastName: c.LastName(), Holdings: c.Holdings()})
		}
	})
	return out
}
