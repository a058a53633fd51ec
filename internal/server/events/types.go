// Package events fans ledger changes out to realtime transports.
//
// Box office hooks publish to a Broker, and the Broker delivers every
// Event to each registered Subscriber (WebSocket hub, SSE broadcaster).
package events

import "time"

// EventType names a ledger change.
type EventType string

// Event types published by the server.
const (
	TicketsSold      EventType = "tickets.sold"
	TicketsCancelled EventType = "tickets.cancelled"
	EventSoldOut     EventType = "event.sold_out"

	// ClientConnected is sent by transports when a listener joins.
	ClientConnected EventType = "client.connected"
)

// Event is one published change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
