package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice"
)

// Mock provides a mock implementation of Interface for testing.
// If a function field is nil, the method returns a default value.
type Mock struct {
	BoxOfficeFunc    func() (boxoffice.BoxOffice, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	MaxRetriesFunc   func() int
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// BoxOffice returns a box office using the mock function or an empty one.
func (m *Mock) BoxOffice() (boxoffice.BoxOffice, error) {
	if m.BoxOfficeFunc != nil {
		return m.BoxOfficeFunc()
	}
	return boxoffice.New(boxoffice.WithLogger(m.Logger()))
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// MaxRetries returns the retry budget using the mock function or 0.
func (m *Mock) MaxRetries() int {
	if m.MaxRetriesFunc != nil {
		return m.MaxRetriesFunc()
	}
	return 0
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
