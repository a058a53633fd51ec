// Package letters writes the sold-out letter a client receives when a sale
// fails because an event has no tickets left.
package letters

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// DefaultPath is the file letters are appended to when none is configured.
const DefaultPath = "output.txt"

const separator = "------------------------------------------------------"

// filePermissions matches what the logging package uses for log files.
const filePermissions = 0o644

// Compile-time interface checks.
var (
	_ ledger.Notifier = (*Writer)(nil)
	_ ledger.Notifier = (*File)(nil)
)

// Format renders the letter for client about event.
func Format(fullName, eventName string) string {
	return fmt.Sprintf("\n%s\nDear %s\n\nUnfortunately, no tickets remain for %s\n\nRegards,\nThe Management\n%s\n",
		separator, fullName, eventName, separator)
}

// Writer writes letters to an io.Writer.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a notifier that writes letters to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NotifySoldOut implements ledger.Notifier.
func (lw *Writer) NotifySoldOut(client *ledger.Client, event *ledger.Event) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if _, err := io.WriteString(lw.w, Format(client.FullName(), event.Name())); err != nil {
		return errors.WrapIO("write", "letter", err)
	}
	return nil
}

// File appends letters to a file, opening it once per letter so the file is
// only created when the first letter is sent.
type File struct {
	mu     sync.Mutex
	path   string
	logger *zerolog.Logger
}

// Option configures a File notifier.
type Option func(*File)

// WithLogger sets the logger used to record each letter.
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFile returns a notifier appending to path, or DefaultPath when path is empty.
func NewFile(path string, opts ...Option) *File {
	if path == "" {
		path = DefaultPath
	}
	f := &File{path: path, logger: logging.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the file letters are appended to.
func (f *File) Path() string {
	return f.path
}

// NotifySoldOut implements ledger.Notifier.
func (f *File) NotifySoldOut(client *ledger.Client, event *ledger.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	out, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return errors.WrapIO("open", f.path, err)
	}

	if _, err := io.WriteString(out, Format(client.FullName(), event.Name())); err != nil {
		_ = out.Close()
		return errors.WrapIO("write", f.path, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("close", f.path, err)
	}

	f.logger.Debug().
		Str("client", client.FullName()).
		Str("event", event.Name()).
		Str("path", f.path).
		Msg("Wrote sold-out letter")
	return nil
}
