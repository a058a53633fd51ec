// Package shell runs the interactive box office menu over a reader and a
// writer. Every prompt that can be retried is an explicit loop bounded by
// the session's retry policy.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/cmd/output"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
	"github.com/agentstation/boxoffice/pkg/logging"
)

const rule = "------------------------------------------------------"

const menu = `---------------------------------------
| [e] Display Event Info              |
| [c] Display Client Info             |
| [b] Sell Tickets                    |
| [r] Cancel/Return Tickets           |
|                                     |
| [f] Exit Program                    |
---------------------------------------
Please make a selection and press Enter: `

// Session is one interactive run of the menu.
type Session struct {
	bo         boxoffice.BoxOffice
	in         *bufio.Scanner
	out        io.Writer
	maxRetries int
	format     output.Format
	logger     *zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithMaxRetries bounds how many times a failed prompt may be retried
// before the session returns to the menu. Zero means unbounded.
func WithMaxRetries(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithFormat sets the format used to display events and clients.
func WithFormat(f output.Format) Option {
	return func(s *Session) {
		s.format = f
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session reading answers from in and writing prompts to out.
func New(bo boxoffice.BoxOffice, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		bo:     bo,
		in:     bufio.NewScanner(in),
		out:    out,
		format: output.FormatTable,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu until the user quits, the input ends or ctx is done.
// End of input is a normal exit.
func (s *Session) Run(ctx context.Context) error {
	ctx = logging.WithLogger(ctx, s.logger)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.print(menu)
		line, err := s.readLine()
		if err != nil {
			return endOfInput(err)
		}

		var stepErr error
		switch choice(line) {
		case 'e':
			stepErr = s.showEvents()
		case 'c':
			stepErr = s.showClients()
		case 'b':
			stepErr = s.sell(logging.WithOperation(ctx, "sell"))
		case 'r':
			stepErr = s.cancel(logging.WithOperation(ctx, "cancel"))
		case 'f':
			quit, err := s.confirm("\nAre you sure you would like to quit? (y)es/(n)o ")
			if err != nil {
				return endOfInput(err)
			}
			if quit {
				s.println("Goodbye!")
				return nil
			}
		}
		if stepErr != nil {
			return endOfInput(stepErr)
		}
	}
}

func (s *Session) showEvents() error {
	s.println("\n                 ALL EVENT INFORMATION")
	s.println(rule)
	if err := output.FormatEvents(s.out, s.bo.Events(), s.format); err != nil {
		return err
	}
	s.println(rule + "\n")
	return nil
}

func (s *Session) showClients() error {
	s.println("\n                 ALL CLIENT INFORMATION")
	s.println(rule)
	if err := output.FormatClients(s.out, s.bo.Clients(), s.format); err != nil {
		return err
	}
	s.println(rule + "\n")
	return nil
}

// sell walks client, event, quantity and confirmation. Returning nil goes
// back to the menu; only input errors are returned.
func (s *Session) sell(ctx context.Context) error {
	client, err := s.pickClient("\nWhich client would you like to sell tickets to? ", nil)
	if err != nil || client == nil {
		return err
	}
	ctx = logging.WithClient(ctx, client.FullName())

	for attempt := 0; ; attempt++ {
		event, err := s.pickEvent(fmt.Sprintf("Which event would %s like to buy tickets for? ", client.FullName()), nil)
		if err != nil || event == nil {
			return err
		}

		if s.remaining(event) > 0 {
			return s.sellQuantity(logging.WithEvent(ctx, event.Name()), client, event)
		}

		// A sold-out event is still offered to the engine so the rejection
		// reaches the notifier and the client gets their letter.
		held, err := s.bo.Sell(client, event, 1)
		if err == nil {
			s.printf("%s now has %d ticket(s) for %s\n", client.FullName(), held, event.Name())
			return nil
		}
		s.rejected(ctx, err)
		if !errors.IsSoldOut(err) {
			return nil
		}
		again, err := s.retry("Would you like to choose a different event? (y)es/(n)o ", attempt)
		if err != nil || !again {
			return err
		}
	}
}

func (s *Session) sellQuantity(ctx context.Context, client *ledger.Client, event *ledger.Event) error {
	prompt := fmt.Sprintf("How many tickets would %s like to buy for %s? ", client.FullName(), event.Name())

	var quantity int
	for attempt := 0; ; attempt++ {
		n, ok, err := s.askQuantity(prompt, "Error: Positive whole number expected")
		if err != nil {
			return err
		}
		if ok {
			remaining := s.remaining(event)
			if n <= remaining {
				quantity = n
				break
			}
			s.printf("\nThere are only %d tickets remaining\n", remaining)
		}
		again, err := s.retry("Would you like to enter a new value? (y)es/(n)o ", attempt)
		if err != nil || !again {
			return err
		}
	}

	s.printf("\nYou are about to sell %d ticket(s) to %s for %s\n", quantity, client.FullName(), event.Name())
	ok, err := s.confirm("Is this information correct? (y)es/(n)o ")
	if err != nil || !ok {
		return err
	}

	held, err := s.bo.Sell(client, event, quantity)
	if s.rejected(ctx, err) {
		return nil
	}
	s.printf("%s now has %d ticket(s) for %s\n", client.FullName(), held, event.Name())
	return nil
}

func (s *Session) cancel(ctx context.Context) error {
	client, err := s.pickClient("\nWhich client would like to return tickets? ", func(c *ledger.Client) bool {
		if len(s.holdings(c)) > 0 {
			return true
		}
		s.println("That client doesn't have any tickets to return.")
		return false
	})
	if err != nil || client == nil {
		return err
	}
	ctx = logging.WithClient(ctx, client.FullName())

	s.printf("\nThe events that %s has tickets for are:\n", client.FullName())
	for _, h := range s.holdings(client) {
		s.printf("%-20s %-20s\n", h.Event, "Tickets: "+strconv.Itoa(h.Quantity))
	}

	event, err := s.pickEvent(fmt.Sprintf("\nWhich event would %s like to return tickets for? ", client.FullName()),
		func(e *ledger.Event) bool { return s.held(client, e) > 0 })
	if err != nil || event == nil {
		return err
	}
	ctx = logging.WithEvent(ctx, event.Name())

	var quantity int
	for attempt := 0; ; attempt++ {
		held := s.held(client, event)
		s.printf("\n%s has %d tickets for %s\n", client.FullName(), held, event.Name())
		n, ok, err := s.askQuantity(fmt.Sprintf("How many tickets would %s like to return? ", client.FullName()),
			"\nError: Whole number expected\n")
		if err != nil {
			return err
		}
		if ok {
			if n <= held {
				quantity = n
				break
			}
			s.printf("%s doesn't have that many tickets to return\n", client.FullName())
		}
		again, err := s.retry("Would you like to enter a new value (y)es/(n)o ", attempt)
		if err != nil || !again {
			return err
		}
	}

	s.printf("\nYou are about to return %d ticket(s) from %s for %s\n", quantity, client.FullName(), event.Name())
	ok, err := s.confirm("Is this information correct? (y)es/(n)o ")
	if err != nil || !ok {
		return err
	}

	if s.rejected(ctx, s.bo.Cancel(client, event, quantity)) {
		return nil
	}
	s.printf("%s returned %d ticket(s) for %s\n", client.FullName(), quantity, event.Name())
	return nil
}

// pickClient prompts until a known client that passes accept is named.
// A nil client with a nil error means the user gave up.
func (s *Session) pickClient(prompt string, accept func(*ledger.Client) bool) (*ledger.Client, error) {
	for attempt := 0; ; attempt++ {
		name, err := s.ask(prompt)
		if err != nil {
			return nil, err
		}
		client, found := s.bo.Engine().Registry().FindByDisplayName(strings.Join(strings.Fields(name), " "))
		question := "Try again? (y)es/(n)o "
		switch {
		case !found:
			s.println("Cannot find that client")
		case accept == nil || accept(client):
			return client, nil
		default:
			question = "Choose a different client? (y)es/(n)o "
		}
		again, err := s.retry(question, attempt)
		if err != nil || !again {
			return nil, err
		}
	}
}

// pickEvent prompts until a known event that passes accept is named.
func (s *Session) pickEvent(prompt string, accept func(*ledger.Event) bool) (*ledger.Event, error) {
	for attempt := 0; ; attempt++ {
		name, err := s.ask(prompt)
		if err != nil {
			return nil, err
		}
		event, found := s.bo.Engine().Catalog().FindByName(strings.TrimSpace(name))
		if found && (accept == nil || accept(event)) {
			return event, nil
		}
		s.println("Cannot find that event")
		again, err := s.retry("Try again? (y)es/(n)o ", attempt)
		if err != nil || !again {
			return nil, err
		}
	}
}

// askQuantity reads a positive whole number. ok is false, after printing
// invalid, when the answer is not one.
func (s *Session) askQuantity(prompt, invalid string) (n int, ok bool, err error) {
	answer, err := s.ask(prompt)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(answer))
	if convErr != nil || n <= 0 {
		s.println(invalid)
		return 0, false, nil
	}
	return n, true, nil
}

// retry asks question unless attempt has used up the retry budget.
func (s *Session) retry(question string, attempt int) (bool, error) {
	if s.maxRetries > 0 && attempt >= s.maxRetries {
		s.println("Too many attempts, returning to the menu")
		return false, nil
	}
	return s.confirm(question)
}

// rejected reports err to the user and returns true when it is non-nil.
func (s *Session) rejected(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	logging.FromContext(ctx).Debug().Err(err).Msg("Transaction rejected")
	s.println(describe(err))
	return true
}

func (s *Session) remaining(event *ledger.Event) int {
	var n int
	s.bo.Engine().Read(func(*ledger.Catalog, *ledger.Registry) {
		n = event.Remaining()
	})
	return n
}

func (s *Session) held(client *ledger.Client, event *ledger.Event) int {
	var n int
	s.bo.Engine().Read(func(*ledger.Catalog, *ledger.Registry) {
		if h, ok := client.HoldingFor(event.Name()); ok {
			n = h.Quantity
		}
	})
	return n
}

func (s *Session) holdings(client *ledger.Client) []ledger.Holding {
	var hs []ledger.Holding
	s.bo.Engine().Read(func(*ledger.Catalog, *ledger.Registry) {
		hs = client.Holdings()
	})
	return hs
}

func (s *Session) ask(prompt string) (string, error) {
	s.print(prompt)
	return s.readLine()
}

func (s *Session) confirm(question string) (bool, error) {
	answer, err := s.ask(question)
	if err != nil {
		return false, err
	}
	return choice(answer) == 'y', nil
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", errors.WrapIO("read", "input", err)
		}
		return "", io.EOF
	}
	return s.in.Text(), nil
}

func (s *Session) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Session) println(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// choice returns the lower-cased first character of a trimmed answer, or 0.
func choice(answer string) byte {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0
	}
	return strings.ToLower(answer[:1])[0]
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
