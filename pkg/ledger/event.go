package ledger

import (
	"cmp"
	"fmt"
)

// Event is a named event with a fixed ticket capacity. Only the Engine
// changes the remaining count.
type Event struct {
	name      string
	remaining int
	capacity  int
}

// Name returns the event's unique name.
func (e *Event) Name() string {
	return e.name
}

// Remaining returns the number of tickets still available.
func (e *Event) Remaining() int {
	return e.remaining
}

// Capacity returns the ticket count the event was created with.
func (e *Event) Capacity() int {
	return e.capacity
}

// String implements fmt.Stringer.
func (e *Event) String() string {
	return fmt.Sprintf("%s - %d", e.name, e.remaining)
}

// EventIdentityEquals reports whether two events share a name. All lookups
// and removals use this.
func EventIdentityEquals(a, b *Event) bool {
	return a.name == b.name
}

// EventDisplayOrder orders events by name, then remaining tickets. It only
// decides insertion position in the catalog.
func EventDisplayOrder(a, b *Event) int {
	if c := cmp.Compare(a.name, b.name); c != 0 {
		return c
	}
	return cmp.Compare(a.remaining, b.remaining)
}
