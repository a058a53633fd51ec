package ledger

import (
	"strings"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ordered"
)

// EventSpec describes an event at bootstrap time.
type EventSpec struct {
	Name    string `json:"name" yaml:"name"`
	Tickets int    `json:"tickets" yaml:"tickets"`
}

// Catalog is the ordered set of events and their remaining tickets.
//
// Lookups match on name only, while ordering also considers the remaining
// count. Ticket counts change in place, so after a sale the iteration order
// can lag behind EventDisplayOrder until the catalog is rebuilt.
//
// There is no exported AdjustRemaining. Remaining counts change only through
// the unexported adjustRemaining, called by Engine.Sell and Engine.Cancel
// under the engine lock.
type Catalog struct {
	events *ordered.List[*Event]
}

// NewCatalog builds a catalog from specs. Names must be non-empty and
// unique, and capacities non-negative.
func NewCatalog(specs []EventSpec) (*Catalog, error) {
	c := &Catalog{
		events: ordered.New(EventDisplayOrder, EventIdentityEquals, ordered.WithCapacity[*Event](len(specs))),
	}

	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, errors.NewValidationError("name", spec.Name, "event name cannot be empty")
		}
		if spec.Tickets < 0 {
			return nil, errors.NewValidationError("tickets", spec.Tickets, "ticket count for "+name+" cannot be negative")
		}
		event := &Event{name: name, remaining: spec.Tickets, capacity: spec.Tickets}
		if c.events.Contains(event) {
			return nil, errors.NewAlreadyExistsError("event", name)
		}
		c.events.Insert(event)
	}

	return c, nil
}

// FindByName returns the event with the given name.
func (c *Catalog) FindByName(name string) (*Event, bool) {
	return c.events.Find(func(e *Event) bool { return e.name == name })
}

// Events returns the events in catalog order.
func (c *Catalog) Events() []*Event {
	return c.events.Items()
}

// Len returns the number of events.
func (c *Catalog) Len() int {
	return c.events.Len()
}

// contains reports whether event is this catalog's own entry for its name.
func (c *Catalog) contains(event *Event) bool {
	found, ok := c.FindByName(event.name)
	return ok && found == event
}

// adjustRemaining applies delta to the event's remaining tickets.
func (c *Catalog) adjustRemaining(event *Event, delta int) error {
	if event.remaining+delta < 0 {
		return &errors.NegativeStockError{Event: event.name, Remaining: event.remaining, Delta: delta}
	}
	event.remaining += delta
	return nil
}
