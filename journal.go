package boxoffice

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the type of a journal entry.
type Kind string

// Journal entry kinds.
const (
	KindSale         Kind = "sale"
	KindCancellation Kind = "cancellation"
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	return string(k)
}

// Entry records one successful transaction.
type Entry struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     Kind      `json:"kind" yaml:"kind"`
	Client   string    `json:"client" yaml:"client"`
	Event    string    `json:"event" yaml:"event"`
	Quantity int       `json:"quantity" yaml:"quantity"`
	Held     int       `json:"held" yaml:"held"` // client's holding after the transaction
	At       time.Time `json:"at" yaml:"at"`
}

// Journaler exposes the transaction journal.
type Journaler interface {
	// Journal returns a copy of all entries, oldest first
	Journal() []Entry
}

// journal is an append-only list of entries.
type journal struct {
	mu      sync.RWMutex
	entries []Entry
}

func newJournal() *journal {
	return &journal{}
}

func (j *journal) append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	j.mu.Lock()
	j.entries = append(j.entries, e)
	j.mu.Unlock()
	return e
}

func (j *journal) list() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Journal returns a copy of all entries, oldest first.
func (b *boxOffice) Journal() []Entry {
	return b.journal.list()
}
