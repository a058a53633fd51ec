package events

// Subscriber consumes the event stream for one transport.
type Subscriber interface {
	// Send delivers an event. It must not block the broker.
	Send(Event) error

	// Close releases the subscriber.
	Close() error
}
