// Package boxoffice is the main entry point for the ticket ledger. It wraps
// the ledger engine with bootstrap loading, a transaction journal, event
// hooks and name-based lookups.
//
// Example usage:
//
//	// Load events and clients from the classic input file
//	bo, err := boxoffice.New(
//	    boxoffice.WithBootstrapFile("input.txt"),
//	    boxoffice.WithNotifier(letters.NewFile("output.txt")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// React to sales
//	bo.OnSold(func(entry boxoffice.Entry) {
//	    log.Printf("%s bought %d for %s", entry.Client, entry.Quantity, entry.Event)
//	})
//
//	// Sell by name
//	held, err := bo.SellByName("Anna Smith", "Football", 2)
//	if errors.Is(err, errors.ErrInsufficientStock) {
//	    // ask for a smaller quantity
//	}
//
//	// Inspect state
//	for _, e := range bo.Events() {
//	    fmt.Printf("%s: %d left\n", e.Name, e.Remaining)
//	}
package boxoffice

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice/internal/bootstrap"
	"github.com/agentstation/boxoffice/internal/clock"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// Compile-time interface check to ensure proper implementation.
var _ BoxOffice = (*boxOffice)(nil)

// BoxOffice manages a ticket ledger with a journal and event hooks.
type BoxOffice interface {

	// Views provides snapshots of events and clients
	Views

	// Transactions sells and cancels tickets
	Transactions

	// Journaler exposes the record of successful transactions
	Journaler

	// Hooks provides access to event callback registration
	Hooks

	// Engine returns the underlying ledger engine
	Engine() *ledger.Engine

	// Audit verifies the ledger's books balance
	Audit() error
}

// boxOffice is the internal implementation of the BoxOffice interface.
type boxOffice struct {

	// options are the configured options for the box office
	options *options

	// engine owns all ledger state
	engine *ledger.Engine

	// journal records successful transactions
	journal *journal

	// hooks for transaction events
	hooks *hooks

	logger *zerolog.Logger
	clock  clock.Clock
}

// New creates a BoxOffice with the given options.
func New(opts ...Option) (BoxOffice, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	bo := &boxOffice{
		options: o,
		journal: newJournal(),
		hooks:   newHooks(),
		logger:  o.logger,
		clock:   o.clock,
	}

	data := ledger.Bootstrap{}
	switch {
	case o.bootstrapFile != "":
		bo.logger.Debug().Str("path", o.bootstrapFile).Msg("Loading bootstrap file")
		if data, err = bootstrap.Load(o.bootstrapFile); err != nil {
			return nil, err
		}
	case o.bootstrap != nil:
		data = *o.bootstrap
	}

	// the hooks see every sold-out signal after any caller-supplied notifier
	notifier := ledger.Notifiers{o.notifier, ledger.NotifierFunc(bo.hooks.triggerSoldOut)}

	bo.engine, err = ledger.Build(data,
		ledger.WithNotifier(notifier),
		ledger.WithLogger(o.logger),
		ledger.WithHoldingLimit(o.holdingLimit),
	)
	if err != nil {
		return nil, err
	}

	bo.logger.Debug().
		Int("events", bo.engine.Catalog().Len()).
		Int("clients", bo.engine.Registry().Len()).
		Int("holding_limit", bo.engine.HoldingLimit()).
		Msg("Box office ready")

	return bo, nil
}

// Engine returns the underlying ledger engine.
func (b *boxOffice) Engine() *ledger.Engine {
	return b.engine
}

// Audit verifies conservation and the holding limit.
func (b *boxOffice) Audit() error {
	return b.engine.Audit()
}
