package boxoffice

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice/internal/clock"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// options configures a BoxOffice.
type options struct {
	bootstrap     *ledger.Bootstrap
	bootstrapFile string
	notifier      ledger.Notifier
	logger        *zerolog.Logger
	clock         clock.Clock
	holdingLimit  int
}

func defaults() *options {
	return &options{
		logger:       logging.Default(),
		clock:        clock.NewSystem(),
		holdingLimit: ledger.DefaultHoldingLimit,
	}
}

// Option is a function that configures a BoxOffice.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithBootstrap starts the ledger from in-memory data. It replaces any
// earlier WithBootstrapFile.
func WithBootstrap(b ledger.Bootstrap) Option {
	return func(o *options) error {
		o.bootstrap = &b
		o.bootstrapFile = ""
		return nil
	}
}

// WithBootstrapFile starts the ledger from a text or YAML file. It replaces
// any earlier WithBootstrap.
func WithBootstrapFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "bootstrap_file",
				Message: "cannot be empty",
			}
		}
		o.bootstrapFile = path
		o.bootstrap = nil
		return nil
	}
}

// WithNotifier sets who is told when a sale hits a sold-out event.
func WithNotifier(n ledger.Notifier) Option {
	return func(o *options) error {
		o.notifier = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithClock sets the clock used to timestamp journal entries.
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		if c == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.clock = c
		return nil
	}
}

// WithHoldingLimit sets how many distinct events a client may hold.
func WithHoldingLimit(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return &errors.ValidationError{
				Field:   "holding_limit",
				Value:   n,
				Message: "must be positive",
			}
		}
		o.holdingLimit = n
		return nil
	}
}
