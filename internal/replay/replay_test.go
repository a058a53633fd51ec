package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
	"github.com/agentstation/boxoffice/pkg/logging"
)

func newBoxOffice(t *testing.T) boxoffice.BoxOffice {
	t.Helper()
	bo, err := boxoffice.New(
		boxoffice.WithBootstrap(ledger.Bootstrap{
			Events: []ledger.EventSpec{{Name: "Football", Tickets: 2}},
			Clients: []ledger.ClientSpec{
				{FirstName: "Anna", LastName: "Smith"},
				{FirstName: "Bob", LastName: "Jones"},
			},
		}),
		boxoffice.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return bo
}

func TestLoadAndRun(t *testing.T) {
	script, err := Load(filepath.Join("testdata", "script.yaml"))
	require.NoError(t, err)
	require.Len(t, script.Steps, 4)

	bo := newBoxOffice(t)
	outcomes, err := NewRunner(bo).Run(context.Background(), script)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	assert.True(t, outcomes[0].OK)
	assert.Equal(t, 2, outcomes[0].Held)
	assert.False(t, outcomes[1].OK)
	assert.Contains(t, outcomes[1].Error, "no tickets remain")
	assert.True(t, outcomes[2].OK)
	assert.True(t, outcomes[3].OK)
	assert.Equal(t, 4, outcomes[3].Step)

	assert.Len(t, bo.Journal(), 3)
	assert.NoError(t, bo.Audit())
}

func TestRunStrict(t *testing.T) {
	script := &Script{Steps: []Step{
		{Op: OpSell, Client: "Anna Smith", Event: "Football", Quantity: 3},
		{Op: OpSell, Client: "Anna Smith", Event: "Football", Quantity: 1},
	}}

	outcomes, err := NewRunner(newBoxOffice(t), WithStrict(true)).Run(context.Background(), script)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInsufficientStock)
	assert.Len(t, outcomes, 1)
}

func TestRunUnknownNames(t *testing.T) {
	script := &Script{Steps: []Step{
		{Op: OpSell, Client: "  Zed   Zulu ", Event: "Football", Quantity: 1},
		{Op: OpCancel, Client: "Anna Smith", Event: "Chess", Quantity: 1},
	}}

	outcomes, err := NewRunner(newBoxOffice(t)).Run(context.Background(), script)
	require.NoError(t, err)
	assert.Equal(t, "Zed Zulu", outcomes[0].Client)
	assert.Contains(t, outcomes[0].Error, "not found")
	assert.Contains(t, outcomes[1].Error, "not found")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	script := &Script{Steps: []Step{{Op: OpSell, Client: "Anna Smith", Event: "Football", Quantity: 1}}}
	outcomes, err := NewRunner(newBoxOffice(t)).Run(ctx, script)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown op", yaml: "steps:\n  - op: refund\n    client: Anna Smith\n    event: Football\n    quantity: 1\n"},
		{name: "missing client", yaml: "steps:\n  - op: sell\n    event: Football\n    quantity: 1\n"},
		{name: "missing event", yaml: "steps:\n  - op: sell\n    client: Anna Smith\n    quantity: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), "script.yaml")
			assert.True(t, errors.IsValidationError(err))
		})
	}

	_, err := Parse([]byte("steps: [op: {"), "bad.yaml")
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Step: 1, Op: OpSell, Quantity: 2, OK: true},
		{Step: 2, Op: OpSell, Quantity: 5, Error: "insufficient stock"},
		{Step: 3, Op: OpCancel, Quantity: 1, OK: true},
	}

	assert.Equal(t, Summary{
		Steps:           3,
		Applied:         2,
		Rejected:        1,
		TicketsSold:     2,
		TicketsReturned: 1,
	}, Summarize(outcomes))
	assert.Equal(t, Summary{}, Summarize(nil))
}
