// Package filter parses list query parameters for the ledger endpoints.
package filter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/utils/ptr"
	"github.com/agentstation/boxoffice/pkg/errors"
)

// EventFilter selects events from a catalog snapshot.
type EventFilter struct {
	// NameContains matches case-insensitively
	NameContains string

	// Available keeps events with (true) or without (false) remaining tickets
	Available *bool

	// MinRemaining keeps events with at least this many tickets left
	MinRemaining int
}

// ParseEventFilter reads name_contains, available and min_remaining.
func ParseEventFilter(r *http.Request) (EventFilter, error) {
	q := r.URL.Query()
	f := EventFilter{NameContains: q.Get("name_contains")}

	if v := q.Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, errors.NewValidationError("available", v, "must be true or false")
		}
		f.Available = ptr.To(b)
	}

	if v := q.Get("min_remaining"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.NewValidationError("min_remaining", v, "must be a non-negative integer")
		}
		f.MinRemaining = n
	}

	return f, nil
}

// Apply returns the matching events in their original order.
func (f EventFilter) Apply(events []boxoffice.EventView) []boxoffice.EventView {
	out := make([]boxoffice.EventView, 0, len(events))
	for _, e := range events {
		if !containsFold(e.Name, f.NameContains) {
			continue
		}
		if f.Available != nil && (e.Remaining > 0) != ptr.Deref(f.Available, false) {
			continue
		}
		if e.Remaining < f.MinRemaining {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ClientFilter selects clients from a registry snapshot.
type ClientFilter struct {
	// NameContains matches "First Last" case-insensitively
	NameContains string

	// Event keeps clients holding tickets for this exact event
	Event string
}

// ParseClientFilter reads name_contains and event.
func ParseClientFilter(r *http.Request) ClientFilter {
	q := r.URL.Query()
	return ClientFilter{
		NameContains: q.Get("name_contains"),
		Event:        strings.TrimSpace(q.Get("event")),
	}
}

// Apply returns the matching clients in their original order.
func (f ClientFilter) Apply(clients []boxoffice.ClientView) []boxoffice.ClientView {
	out := make([]boxoffice.ClientView, 0, len(clients))
	for _, c := range clients {
		if !containsFold(c.FullName(), f.NameContains) {
			continue
		}
		if f.Event != "" && !holds(c, f.Event) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func holds(c boxoffice.ClientView, event string) bool {
	for _, h := range c.Holdings {
		if h.Event == event {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
