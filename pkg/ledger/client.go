package ledger

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/agentstation/boxoffice/pkg/ordered"
)

// Client is a ticket buyer identified by first and last name. Its holdings
// are kept ordered by event name.
//
// Holdings are read-only from outside the package. AddHolding and
// RemoveHolding are the unexported addHolding and removeHolding, used only
// by Engine.Sell and Engine.Cancel under the engine lock.
type Client struct {
	firstName string
	lastName  string
	holdings  *ordered.List[*Holding]
}

func newClient(firstName, lastName string) *Client {
	return &Client{
		firstName: firstName,
		lastName:  lastName,
		holdings:  ordered.New(holdingOrder, holdingEquals, ordered.WithCapacity[*Holding](DefaultHoldingLimit)),
	}
}

// FirstName returns the client's first name.
func (c *Client) FirstName() string {
	return c.firstName
}

// LastName returns the client's last name.
func (c *Client) LastName() string {
	return c.lastName
}

// FullName returns "First Last".
func (c *Client) FullName() string {
	return c.firstName + " " + c.lastName
}

// Holdings returns a copy of the client's holdings in display order.
func (c *Client) Holdings() []Holding {
	out := make([]Holding, 0, c.holdings.Len())
	for _, h := range c.holdings.All() {
		out = append(out, *h)
	}
	return out
}

// HoldingFor returns the client's holding for an event.
func (c *Client) HoldingFor(eventName string) (Holding, bool) {
	h := c.holding(eventName)
	if h == nil {
		return Holding{}, false
	}
	return *h, true
}

// DistinctEventCount returns how many events the client holds tickets for.
func (c *Client) DistinctEventCount() int {
	return c.holdings.Len()
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	if c.holdings.Len() == 0 {
		return c.FullName()
	}
	parts := make([]string, 0, c.holdings.Len())
	for _, h := range c.holdings.All() {
		parts = append(parts, h.String())
	}
	return fmt.Sprintf("%s [%s]", c.FullName(), strings.Join(parts, ", "))
}

// holding returns the live holding for eventName, or nil.
func (c *Client) holding(eventName string) *Holding {
	h, ok := c.holdings.Find(func(h *Holding) bool { return h.Event == eventName })
	if !ok {
		return nil
	}
	return h
}

// addHolding inserts a new holding. It does not merge with an existing
// holding for the same event; the engine decides merge versus insert.
func (c *Client) addHolding(eventName string, quantity int) {
	c.holdings.Insert(&Holding{Event: eventName, Quantity: quantity})
}

// removeHolding drops the holding for eventName. Absent holdings are ignored.
func (c *Client) removeHolding(eventName string) {
	c.holdings.Remove(&Holding{Event: eventName})
}

// ClientIdentityEquals reports whether two clients share first and last name.
func ClientIdentityEquals(a, b *Client) bool {
	return a.firstName == b.firstName && a.lastName == b.lastName
}

// ClientDisplayOrder orders clients by last name, then first name.
func ClientDisplayOrder(a, b *Client) int {
	if c := cmp.Compare(a.lastName, b.lastName); c != 0 {
		return c
	}
	return cmp.Compare(a.firstName, b.firstName)
}
