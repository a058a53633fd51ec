package ledger

import (
	"cmp"
	"fmt"
)

// Holding records how many tickets a client holds for one event.
type Holding struct {
	Event    string `json:"event" yaml:"event"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// String implements fmt.Stringer.
func (h Holding) String() string {
	return fmt.Sprintf("%s - %d", h.Event, h.Quantity)
}

func holdingEquals(a, b *Holding) bool {
	return a.Event == b.Event
}

func holdingOrder(a, b *Holding) int {
	if c := cmp.Compare(a.Event, b.Event); c != 0 {
		return c
	}
	return cmp.Compare(a.Quantity, b.Quantity)
}
