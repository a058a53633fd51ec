package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/letters"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
	"github.com/agentstation/boxoffice/pkg/logging"
)

type fixture struct {
	bo      boxoffice.BoxOffice
	letters *bytes.Buffer
	out     *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{letters: &bytes.Buffer{}, out: &bytes.Buffer{}}
	bo, err := boxoffice.New(
		boxoffice.WithBootstrap(ledger.Bootstrap{
			Events: []ledger.EventSpec{
				{Name: "Athletics", Tickets: 100},
				{Name: "Curling", Tickets: 0},
				{Name: "Diving", Tickets: 10},
				{Name: "Football", Tickets: 2},
			},
			Clients: []ledger.ClientSpec{
				{FirstName: "Anna", LastName: "Smith"},
				{FirstName: "Bob", LastName: "Jones"},
			},
		}),
		boxoffice.WithNotifier(letters.NewWriter(f.letters)),
		boxoffice.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	f.bo = bo
	return f
}

func (f *fixture) run(t *testing.T, script string, opts ...Option) {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	s := New(f.bo, strings.NewReader(script), f.out, opts...)
	require.NoError(t, s.Run(context.Background()))
}

func (f *fixture) holding(t *testing.T, client, event string) int {
	t.Helper()
	for _, c := range f.bo.Clients() {
		if c.FullName() != client {
			continue
		}
		for _, h := range c.Holdings {
			if h.Event == event {
				return h.Quantity
			}
		}
	}
	return 0
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestSell(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Anna Smith", "Football", "2", "y", "f", "y"))

	assert.Equal(t, 2, f.holding(t, "Anna Smith", "Football"))
	assert.Contains(t, f.out.String(), "You are about to sell 2 ticket(s) to Anna Smith for Football")
	assert.Contains(t, f.out.String(), "Goodbye!")
	assert.NoError(t, f.bo.Audit())
}

func TestSellDeclinedConfirmation(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Anna Smith", "Football", "1", "n", "f", "y"))

	assert.Zero(t, f.holding(t, "Anna Smith", "Football"))
	assert.Empty(t, f.bo.Journal())
}

func TestSellUnknownClientRetry(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Nobody Here", "y", "anna  smith", "y", "Anna   Smith", "Athletics", "3", "y", "f", "y"))

	out := f.out.String()
	assert.Equal(t, 2, strings.Count(out, "Cannot find that client"))
	assert.Equal(t, 3, f.holding(t, "Anna Smith", "Athletics"))
}

func TestSellSoldOutWritesLetter(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Bob Jones", "Curling", "n", "f", "y"))

	assert.Contains(t, f.out.String(), "No more tickets available for Curling")
	assert.Equal(t, letters.Format("Bob Jones", "Curling"), f.letters.String())
	assert.Empty(t, f.bo.Journal())
}

func TestSellSoldOutThenDifferentEvent(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Bob Jones", "Curling", "y", "Diving", "4", "y", "f", "y"))

	assert.Equal(t, 1, strings.Count(f.letters.String(), "Dear Bob Jones"))
	assert.Equal(t, 4, f.holding(t, "Bob Jones", "Diving"))
}

func TestSellTooMany(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Anna Smith", "Football", "5", "y", "2", "y", "f", "y"))

	assert.Contains(t, f.out.String(), "There are only 2 tickets remaining")
	assert.Equal(t, 2, f.holding(t, "Anna Smith", "Football"))
}

func TestSellInvalidQuantity(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Anna Smith", "Football", "abc", "y", "0", "n", "f", "y"))

	assert.Equal(t, 2, strings.Count(f.out.String(), "Error: Positive whole number expected"))
	assert.Zero(t, f.holding(t, "Anna Smith", "Football"))
}

func TestSellHoldingLimit(t *testing.T) {
	f := newFixture(t)
	for _, event := range []string{"Athletics", "Diving", "Football"} {
		_, err := f.bo.SellByName("Anna Smith", event, 1)
		require.NoError(t, err)
	}

	f.run(t, lines("b", "Anna Smith", "Curling", "f", "y"))
	assert.Contains(t, f.out.String(), "Sorry a client is only able to buy tickets for up to 3 events")
	assert.Empty(t, f.letters.String(), "limit is checked before sold out")

	f.out.Reset()
	f.run(t, lines("b", "Anna Smith", "Athletics", "2", "y", "f", "y"))
	assert.Equal(t, 3, f.holding(t, "Anna Smith", "Athletics"))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	_, err := f.bo.SellByName("Anna Smith", "Football", 2)
	require.NoError(t, err)

	f.run(t, lines("r", "Anna Smith", "Football", "1", "y", "f", "y"))

	out := f.out.String()
	assert.Contains(t, out, "The events that Anna Smith has tickets for are:")
	assert.Contains(t, out, "Anna Smith has 2 tickets for Football")
	assert.Contains(t, out, "You are about to return 1 ticket(s) from Anna Smith for Football")
	assert.Equal(t, 1, f.holding(t, "Anna Smith", "Football"))
	assert.NoError(t, f.bo.Audit())
}

func TestCancelClientWithoutTickets(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("r", "Bob Jones", "n", "f", "y"))

	assert.Contains(t, f.out.String(), "That client doesn't have any tickets to return.")
}

func TestCancelEventNotHeld(t *testing.T) {
	f := newFixture(t)
	_, err := f.bo.SellByName("Anna Smith", "Football", 1)
	require.NoError(t, err)

	f.run(t, lines("r", "Anna Smith", "Diving", "n", "f", "y"))
	assert.Contains(t, f.out.String(), "Cannot find that event")
	assert.Equal(t, 1, f.holding(t, "Anna Smith", "Football"))
}

func TestCancelTooMany(t *testing.T) {
	f := newFixture(t)
	_, err := f.bo.SellByName("Anna Smith", "Football", 1)
	require.NoError(t, err)

	f.run(t, lines("r", "Anna Smith", "Football", "3", "y", "1", "y", "f", "y"))
	assert.Contains(t, f.out.String(), "Anna Smith doesn't have that many tickets to return")
	assert.Zero(t, f.holding(t, "Anna Smith", "Football"))
}

func TestMaxRetries(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "X Y", "y", "Y Z", "f", "y"), WithMaxRetries(1))

	out := f.out.String()
	assert.Equal(t, 1, strings.Count(out, "Try again?"))
	assert.Contains(t, out, "Too many attempts, returning to the menu")
	assert.Contains(t, out, "Goodbye!")
}

func TestDisplay(t *testing.T) {
	f := newFixture(t)
	_, err := f.bo.SellByName("Anna Smith", "Football", 2)
	require.NoError(t, err)

	f.run(t, lines("e", "c", "f", "y"))

	out := f.out.String()
	assert.Contains(t, out, "ALL EVENT INFORMATION")
	assert.Contains(t, out, "Athletics")
	assert.Contains(t, out, "ALL CLIENT INFORMATION")
	assert.Contains(t, out, "Football - 2")
}

func TestQuitDeclinedAndUnknownChoice(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("f", "n", "", "zzz", "F", "yes"))

	out := f.out.String()
	assert.Equal(t, 4, strings.Count(out, "Please make a selection"))
	assert.Equal(t, 2, strings.Count(out, "Are you sure you would like to quit?"))
}

func TestEndOfInputIsNormalExit(t *testing.T) {
	f := newFixture(t)
	f.run(t, lines("b", "Anna Smith"))
	assert.NotContains(t, f.out.String(), "Goodbye!")
}

func TestCancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(f.bo, strings.NewReader("f\ny\n"), f.out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&errors.HoldingLimitError{Limit: 3}, "Sorry a client is only able to buy tickets for up to 3 events"},
		{&errors.SoldOutError{Event: "Curling"}, "No more tickets available for Curling"},
		{&errors.InsufficientStockError{Remaining: 2}, "There are only 2 tickets remaining"},
		{&errors.QuantityError{Quantity: 0}, "Error: Positive whole number expected"},
		{&errors.InsufficientHoldingError{Client: "Anna Smith"}, "Anna Smith doesn't have that many tickets to return"},
		{errors.NewNotFoundError("client", "X"), "Cannot find that client"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}
