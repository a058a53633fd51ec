package ledger_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/agentstation/boxoffice/pkg/errors"
	"github.com/agentstation/boxoffice/pkg/ledger"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// recorder counts sold-out notifications.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) NotifySoldOut(client *ledger.Client, event *ledger.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, client.FullName()+"/"+event.Name())
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestEngine(t *testing.T, events []ledger.EventSpec, opts ...ledger.EngineOption) *ledger.Engine {
	t.Helper()
	opts = append([]ledger.EngineOption{ledger.WithLogger(logging.NewNopLogger())}, opts...)
	engine, err := ledger.Build(ledger.Bootstrap{
		Events: events,
		Clients: []ledger.ClientSpec{
			{FirstName: "Anna", LastName: "Smith"},
			{FirstName: "Bob", LastName: "Jones"},
		},
	}, opts...)
	require.NoError(t, err)
	return engine
}

func lookup(t *testing.T, engine *ledger.Engine, client, event string) (*ledger.Client, *ledger.Event) {
	t.Helper()
	c, ok := engine.Registry().FindByDisplayName(client)
	require.True(t, ok, "client %s", client)
	e, ok := engine.Catalog().FindByName(event)
	require.True(t, ok, "event %s", event)
	return c, e
}

func TestSellThenSoldOutThenCancel(t *testing.T) {
	rec := &recorder{}
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Football", Tickets: 2}}, ledger.WithNotifier(rec))
	anna, football := lookup(t, engine, "Anna Smith", "Football")

	held, err := engine.Sell(anna, football, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, held)
	assert.Equal(t, 0, football.Remaining())
	assert.Equal(t, []ledger.Holding{{Event: "Football", Quantity: 2}}, anna.Holdings())

	_, err = engine.Sell(anna, football, 1)
	assert.ErrorIs(t, err, errors.ErrSoldOut)
	assert.Equal(t, 1, rec.count())

	require.NoError(t, engine.Cancel(anna, football, 2))
	assert.Equal(t, 2, football.Remaining())
	assert.Empty(t, anna.Holdings())
	require.NoError(t, engine.Audit())
}

func TestHoldingLimit(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{
		{Name: "A", Tickets: 5},
		{Name: "B", Tickets: 5},
		{Name: "C", Tickets: 5},
		{Name: "D", Tickets: 5},
	})
	anna, a := lookup(t, engine, "Anna Smith", "A")
	_, b := lookup(t, engine, "Anna Smith", "B")
	_, c := lookup(t, engine, "Anna Smith", "C")
	_, d := lookup(t, engine, "Anna Smith", "D")

	for _, e := range []*ledger.Event{a, b, c} {
		_, err := engine.Sell(anna, e, 1)
		require.NoError(t, err)
	}

	_, err := engine.Sell(anna, d, 1)
	var limitErr *errors.HoldingLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 3, limitErr.Limit)
	assert.Equal(t, 5, d.Remaining())

	held, err := engine.Sell(anna, a, 1)
	require.NoError(t, err, "topping up a held event is allowed at the limit")
	assert.Equal(t, 2, held)
	assert.Equal(t, 3, anna.DistinctEventCount())
}

func TestHoldingLimitOverride(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "A", Tickets: 1}, {Name: "B", Tickets: 1}},
		ledger.WithHoldingLimit(1))
	anna, a := lookup(t, engine, "Anna Smith", "A")
	_, b := lookup(t, engine, "Anna Smith", "B")

	assert.Equal(t, 1, engine.HoldingLimit())
	_, err := engine.Sell(anna, a, 1)
	require.NoError(t, err)
	_, err = engine.Sell(anna, b, 1)
	assert.ErrorIs(t, err, errors.ErrHoldingLimitExceeded)
}

func TestSellBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  error
	}{
		{name: "zero", quantity: 0, wantErr: errors.ErrInvalidQuantity},
		{name: "negative", quantity: -1, wantErr: errors.ErrInvalidQuantity},
		{name: "one more than remaining", quantity: 4, wantErr: errors.ErrInsufficientStock},
		{name: "exactly remaining", quantity: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			engine := newTestEngine(t, []ledger.EventSpec{{Name: "Golf", Tickets: 3}}, ledger.WithNotifier(rec))
			anna, golf := lookup(t, engine, "Anna Smith", "Golf")

			_, err := engine.Sell(anna, golf, tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 3, golf.Remaining())
				assert.Empty(t, anna.Holdings())
			} else {
				require.NoError(t, err)
				assert.Equal(t, 0, golf.Remaining())
			}
			assert.Zero(t, rec.count())
		})
	}
}

func TestInsufficientStockReportsRemaining(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Golf", Tickets: 3}})
	anna, golf := lookup(t, engine, "Anna Smith", "Golf")

	_, err := engine.Sell(anna, golf, 10)
	var stockErr *errors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Remaining)
	assert.Equal(t, 10, stockErr.Requested)
}

func TestSoldOutNotifiesOncePerFailedSale(t *testing.T) {
	rec := &recorder{}
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Curling", Tickets: 0}}, ledger.WithNotifier(rec))
	anna, curling := lookup(t, engine, "Anna Smith", "Curling")
	bob, _ := lookup(t, engine, "Bob Jones", "Curling")

	_, err := engine.Sell(anna, curling, 1)
	assert.True(t, errors.IsSoldOut(err))
	_, err = engine.Sell(bob, curling, 5)
	assert.True(t, errors.IsSoldOut(err))

	assert.Equal(t, []string{"Anna Smith/Curling", "Bob Jones/Curling"}, rec.calls)
}

func TestSoldOutNotifierFailureDoesNotChangeResult(t *testing.T) {
	failing := ledger.NotifierFunc(func(*ledger.Client, *ledger.Event) error {
		return fmt.Errorf("disk full")
	})
	logger := logging.NewTestLogger(t)
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Curling", Tickets: 0}},
		ledger.WithNotifier(failing), ledger.WithLogger(logger.Logger))
	anna, curling := lookup(t, engine, "Anna Smith", "Curling")

	_, err := engine.Sell(anna, curling, 1)
	assert.ErrorIs(t, err, errors.ErrSoldOut)
	logger.AssertContains(t, "Sold-out notification failed")
}

func TestNoSoldOutWhenLimitRejectsFirst(t *testing.T) {
	rec := &recorder{}
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "A", Tickets: 1}, {Name: "Z", Tickets: 0}},
		ledger.WithNotifier(rec), ledger.WithHoldingLimit(1))
	anna, a := lookup(t, engine, "Anna Smith", "A")
	_, z := lookup(t, engine, "Anna Smith", "Z")

	_, err := engine.Sell(anna, a, 1)
	require.NoError(t, err)
	_, err = engine.Sell(anna, z, 1)
	assert.ErrorIs(t, err, errors.ErrHoldingLimitExceeded)
	assert.Zero(t, rec.count())
}

func TestCancel(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Football", Tickets: 10}, {Name: "Golf", Tickets: 1}})
	anna, football := lookup(t, engine, "Anna Smith", "Football")
	_, golf := lookup(t, engine, "Anna Smith", "Golf")

	_, err := engine.Sell(anna, football, 4)
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		require.NoError(t, engine.Cancel(anna, football, 1))
		h, ok := anna.HoldingFor("Football")
		require.True(t, ok)
		assert.Equal(t, 3, h.Quantity)
		assert.Equal(t, 7, football.Remaining())
	})

	t.Run("more than held", func(t *testing.T) {
		err := engine.Cancel(anna, football, 4)
		var holdErr *errors.InsufficientHoldingError
		require.ErrorAs(t, err, &holdErr)
		assert.Equal(t, 3, holdErr.Held)
		assert.Equal(t, 7, football.Remaining())
	})

	t.Run("no holding", func(t *testing.T) {
		assert.ErrorIs(t, engine.Cancel(anna, golf, 1), errors.ErrNoSuchHolding)
	})

	t.Run("zero quantity", func(t *testing.T) {
		assert.ErrorIs(t, engine.Cancel(anna, football, 0), errors.ErrInvalidQuantity)
	})

	t.Run("full", func(t *testing.T) {
		require.NoError(t, engine.Cancel(anna, football, 3))
		_, ok := anna.HoldingFor("Football")
		assert.False(t, ok)
		assert.Equal(t, 10, football.Remaining())
	})

	require.NoError(t, engine.Audit())
}

func TestSellCancelRoundTrip(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Football", Tickets: 10}})
	anna, football := lookup(t, engine, "Anna Smith", "Football")
	_, err := engine.Sell(anna, football, 2)
	require.NoError(t, err)
	before := anna.Holdings()

	_, err = engine.Sell(anna, football, 3)
	require.NoError(t, err)
	require.NoError(t, engine.Cancel(anna, football, 3))

	assert.Equal(t, before, anna.Holdings())
	assert.Equal(t, 8, football.Remaining())
}

func TestCommitSeesHoldingUnderLock(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Football", Tickets: 3}})
	anna, football := lookup(t, engine, "Anna Smith", "Football")

	var commits []int
	commit := func(held int) { commits = append(commits, held) }

	_, err := engine.SellThen(anna, football, 2, commit)
	require.NoError(t, err)
	_, err = engine.SellThen(anna, football, 1, commit)
	require.NoError(t, err)
	require.NoError(t, engine.CancelThen(anna, football, 1, commit))
	require.NoError(t, engine.CancelThen(anna, football, 2, commit))
	assert.Equal(t, []int{2, 3, 2, 0}, commits)

	// Rejected transactions never commit.
	_, err = engine.SellThen(anna, football, 4, commit)
	assert.ErrorIs(t, err, errors.ErrInsufficientStock)
	assert.ErrorIs(t, engine.CancelThen(anna, football, 1, commit), errors.ErrNoSuchHolding)
	assert.Len(t, commits, 4)
}

func TestRejectsForeignAndNilObjects(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Football", Tickets: 10}})
	other := newTestEngine(t, []ledger.EventSpec{{Name: "Football", Tickets: 10}})
	anna, football := lookup(t, engine, "Anna Smith", "Football")
	foreignAnna, foreignFootball := lookup(t, other, "Anna Smith", "Football")

	_, err := engine.Sell(foreignAnna, football, 1)
	assert.True(t, errors.IsNotFound(err))
	_, err = engine.Sell(anna, foreignFootball, 1)
	assert.True(t, errors.IsNotFound(err))
	_, err = engine.Sell(nil, football, 1)
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(engine.Cancel(anna, nil, 1)))

	assert.Equal(t, 10, football.Remaining())
	assert.Equal(t, 10, foreignFootball.Remaining())
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	engine := newTestEngine(t, []ledger.EventSpec{{Name: "Final", Tickets: 50}})
	anna, final := lookup(t, engine, "Anna Smith", "Final")
	bob, _ := lookup(t, engine, "Bob Jones", "Final")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		client := anna
		if i%2 == 0 {
			client = bob
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = engine.Sell(client, final, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, final.Remaining())
	require.NoError(t, engine.Audit())
}

func TestProperty_Conservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := []string{"A", "B", "C", "D", "E"}
		specs := make([]ledger.EventSpec, len(names))
		for i, name := range names {
			specs[i] = ledger.EventSpec{Name: name, Tickets: rapid.IntRange(0, 6).Draw(t, "tickets_"+name)}
		}
		limit := rapid.IntRange(1, 4).Draw(t, "limit")

		engine, err := ledger.Build(ledger.Bootstrap{
			Events:  specs,
			Clients: []ledger.ClientSpec{{FirstName: "Anna", LastName: "Smith"}, {FirstName: "Bob", LastName: "Jones"}},
		}, ledger.WithHoldingLimit(limit), ledger.WithLogger(logging.NewNopLogger()))
		if err != nil {
			t.Fatal(err)
		}
		clients := engine.Registry().Clients()
		events := engine.Catalog().Events()

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			client := rapid.SampledFrom(clients).Draw(t, "client")
			event := rapid.SampledFrom(events).Draw(t, "event")
			quantity := rapid.IntRange(-1, 7).Draw(t, "quantity")

			beforeRemaining := event.Remaining()
			beforeHoldings := client.Holdings()

			var opErr error
			if rapid.Bool().Draw(t, "sell") {
				_, opErr = engine.Sell(client, event, quantity)
			} else {
				opErr = engine.Cancel(client, event, quantity)
			}

			if opErr != nil {
				if !errors.IsTransactionRejected(opErr) {
					t.Fatalf("unexpected error kind: %v", opErr)
				}
				if event.Remaining() != beforeRemaining {
					t.Fatalf("failed op changed remaining: %d -> %d", beforeRemaining, event.Remaining())
				}
				if fmt.Sprint(client.Holdings()) != fmt.Sprint(beforeHoldings) {
					t.Fatalf("failed op changed holdings: %v -> %v", beforeHoldings, client.Holdings())
				}
			}
			if event.Remaining() < 0 {
				t.Fatalf("negative remaining for %s", event.Name())
			}
			if err := engine.Audit(); err != nil {
				t.Fatalf("audit after step %d: %v", i, err)
			}
		}
	})
}
