package bootstrap

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// FormatText is the line-oriented input format:
//
//	<event count>
//	<event name>
//	<tickets>
//	...
//	<client count>
//	<first name> <last name>
//	...
const FormatText = "text"

// lineReader hands out trimmed lines and tracks the current line number.
type lineReader struct {
	scanner *bufio.Scanner
	file    string
	line    int
}

func (r *lineReader) next(expect string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", errors.NewIOError("read", r.file, err)
		}
		return "", r.errorf("unexpected end of input, expected %s", expect)
	}
	r.line++
	return strings.TrimSpace(r.scanner.Text()), nil
}

func (r *lineReader) count(expect string) (int, error) {
	text, err := r.next(expect)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, r.errorf("%s must be a non-negative whole number, got %q", expect, text)
	}
	return n, nil
}

func (r *lineReader) errorf(format string, args ...any) *errors.ParseError {
	return &errors.ParseError{
		Format:  FormatText,
		File:    r.file,
		Line:    r.line,
		Message: fmt.Sprintf(format, args...),
	}
}

// ParseText decodes the text format. file is only used in error messages.
func ParseText(data []byte, file string) (ledger.Bootstrap, error) {
	r := &lineReader{scanner: bufio.NewScanner(bytes.NewReader(data)), file: file}
	var b ledger.Bootstrap

	events, err := r.count("event count")
	if err != nil {
		return ledger.Bootstrap{}, err
	}
	b.Events = make([]ledger.EventSpec, 0, events)
	for i := 0; i < events; i++ {
		name, err := r.next("event name")
		if err != nil {
			return ledger.Bootstrap{}, err
		}
		if name == "" {
			return ledger.Bootstrap{}, r.errorf("event name cannot be empty")
		}
		tickets, err := r.count("ticket count for " + name)
		if err != nil {
			return ledger.Bootstrap{}, err
		}
		b.Events = append(b.Events, ledger.EventSpec{Name: name, Tickets: tickets})
	}

	clients, err := r.count("client count")
	if err != nil {
		return ledger.Bootstrap{}, err
	}
	b.Clients = make([]ledger.ClientSpec, 0, clients)
	for i := 0; i < clients; i++ {
		text, err := r.next("client name")
		if err != nil {
			return ledger.Bootstrap{}, err
		}
		first, last, ok := SplitName(text)
		if !ok {
			return ledger.Bootstrap{}, r.errorf("client %q needs a first and last name", text)
		}
		b.Clients = append(b.Clients, ledger.ClientSpec{FirstName: first, LastName: last})
	}

	return b, nil
}

// SplitName splits "First Last" on whitespace. The first field is the first
// name and the remaining fields form the last name.
func SplitName(full string) (first, last string, ok bool) {
	fields := strings.Fields(full)
	if len(fields) < 2 {
		return "", "", false
	}
	return fields[0], strings.Join(fields[1:], " "), true
}
