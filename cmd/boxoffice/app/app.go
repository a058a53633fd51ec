// Package app provides the application context and dependency management
// for the boxoffice CLI. It centralizes configuration, logging and the
// lazily built box office that every command shares.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/bootstrap"
	"github.com/agentstation/boxoffice/internal/cmd/globals"
	"github.com/agentstation/boxoffice/internal/letters"
	"github.com/agentstation/boxoffice/pkg/errors"
)

// App represents the boxoffice application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	flags  *globals.Flags
	logger *zerolog.Logger

	// Command streams; nil means the process streams
	in  io.Reader
	out io.Writer

	// Box office instance (lazy-initialized, singleton)
	mu        sync.RWMutex
	boxOffice boxoffice.BoxOffice
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config files; flags
// are applied when a command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config, os.Stderr)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// MaxRetries returns the interactive retry budget.
func (a *App) MaxRetries() int {
	return a.config.MaxRetries
}

// BoxOffice returns the box office, creating it on first use.
// This is thread-safe and ensures only one instance is created.
func (a *App) BoxOffice() (boxoffice.BoxOffice, error) {
	a.mu.RLock()
	if a.boxOffice != nil {
		bo := a.boxOffice
		a.mu.RUnlock()
		return bo, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.boxOffice != nil {
		return a.boxOffice, nil
	}

	opts, err := a.buildBoxOfficeOptions()
	if err != nil {
		return nil, err
	}
	bo, err := boxoffice.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create box office: %w", err)
	}

	a.boxOffice = bo
	return bo, nil
}

// Shutdown audits the ledger before the process exits.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	bo := a.boxOffice
	a.mu.RUnlock()

	if bo == nil {
		return nil
	}
	if err := bo.Audit(); err != nil {
		a.logger.Error().Err(err).Msg("Ledger audit failed during shutdown")
		return err
	}
	a.logger.Debug().Int("transactions", len(bo.Journal())).Msg("Ledger audit passed")
	return nil
}

// buildBoxOfficeOptions constructs box office options from the app configuration.
func (a *App) buildBoxOfficeOptions() ([]boxoffice.Option, error) {
	opts := []boxoffice.Option{
		boxoffice.WithLogger(a.logger),
		boxoffice.WithHoldingLimit(a.config.HoldingLimit),
	}

	if a.config.Sample {
		sample, err := bootstrap.Sample()
		if err != nil {
			return nil, err
		}
		opts = append(opts, boxoffice.WithBootstrap(sample))
	} else {
		if a.config.Input == "" {
			return nil, errors.NewConfigError("input", "no bootstrap file configured", nil)
		}
		opts = append(opts, boxoffice.WithBootstrapFile(a.config.Input))
	}

	if a.config.Letters != "" {
		opts = append(opts, boxoffice.WithNotifier(
			letters.NewFile(a.config.Letters, letters.WithLogger(a.logger)),
		))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

// WithIO sets the streams commands read from and write to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		a.in = in
		a.out = out
		return nil
	}
}

// WithBoxOffice sets a prebuilt box office (useful for testing).
func WithBoxOffice(bo boxoffice.BoxOffice) Option {
	return func(a *App) error {
		a.boxOffice = bo
		return nil
	}
}
