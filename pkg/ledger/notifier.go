package ledger

import stderrors "errors"

// Notifier is told when a sale fails because an event has no tickets left.
// The engine calls it exactly once per such failed sale; whatever the
// notifier records (a letter, a message) is up to the implementation.
type Notifier interface {
	NotifySoldOut(client *Client, event *Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(client *Client, event *Event) error

// NotifySoldOut calls f(client, event).
func (f NotifierFunc) NotifySoldOut(client *Client, event *Event) error {
	return f(client, event)
}

// Notifiers fans a signal out to several notifiers. Every notifier is
// called even if an earlier one fails; the failures are joined.
type Notifiers []Notifier

// NotifySoldOut implements Notifier.
func (ns Notifiers) NotifySoldOut(client *Client, event *Event) error {
	var errs []error
	for _, n := range ns {
		if n == nil {
			continue
		}
		if err := n.NotifySoldOut(client, event); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

type nopNotifier struct{}

func (nopNotifier) NotifySoldOut(*Client, *Event) error { return nil }
