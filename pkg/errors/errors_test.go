package errors_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	pkgerrors "github.com/agentstation/boxoffice/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "event",
			ID:       "Football",
		}
		assert.Equal(t, `event "Football" not found`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("client", "Anna Smith")
		wrapped := fmt.Errorf("sell: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "name",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field name: cannot be empty", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad bootstrap"}
		assert.Equal(t, "validation failed: bad bootstrap", err.Error())
	})
}

func TestLedgerErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "quantity",
			err:      &pkgerrors.QuantityError{Operation: "sell", Quantity: 0},
			sentinel: pkgerrors.ErrInvalidQuantity,
			contains: "got 0",
		},
		{
			name:     "holding limit",
			err:      &pkgerrors.HoldingLimitError{Client: "Anna Smith", Event: "Golf", Limit: 3},
			sentinel: pkgerrors.ErrHoldingLimitExceeded,
			contains: "3 events",
		},
		{
			name:     "sold out",
			err:      &pkgerrors.SoldOutError{Event: "Football"},
			sentinel: pkgerrors.ErrSoldOut,
			contains: "Football",
		},
		{
			name:     "insufficient stock",
			err:      &pkgerrors.InsufficientStockError{Event: "Football", Requested: 5, Remaining: 2},
			sentinel: pkgerrors.ErrInsufficientStock,
			contains: "only 2 remain",
		},
		{
			name:     "no such holding",
			err:      &pkgerrors.NoSuchHoldingError{Client: "Anna Smith", Event: "Golf"},
			sentinel: pkgerrors.ErrNoSuchHolding,
			contains: "no tickets for Golf",
		},
		{
			name:     "insufficient holding",
			err:      &pkgerrors.InsufficientHoldingError{Client: "Anna Smith", Event: "Golf", Requested: 4, Held: 1},
			sentinel: pkgerrors.ErrInsufficientHolding,
			contains: "holds 1",
		},
		{
			name:     "negative stock",
			err:      &pkgerrors.NegativeStockError{Event: "Golf", Remaining: 1, Delta: -2},
			sentinel: pkgerrors.ErrNegativeStock,
			contains: "leave -1",
		},
		{
			name:     "conservation",
			err:      &pkgerrors.ConservationError{Event: "Golf", Capacity: 10, Remaining: 4, Held: 5},
			sentinel: pkgerrors.ErrConservation,
			contains: "capacity 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestInsufficientStockErrorAs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &pkgerrors.InsufficientStockError{Event: "Tennis", Requested: 9, Remaining: 4})

	var stockErr *pkgerrors.InsufficientStockError
	require.True(t, pkgerrors.As(err, &stockErr))
	assert.Equal(t, 4, stockErr.Remaining)
}

func TestIsTransactionRejected(t *testing.T) {
	assert.True(t, pkgerrors.IsTransactionRejected(&pkgerrors.SoldOutError{Event: "Golf"}))
	assert.True(t, pkgerrors.IsTransactionRejected(&pkgerrors.NoSuchHoldingError{}))
	assert.False(t, pkgerrors.IsTransactionRejected(&pkgerrors.NegativeStockError{}))
	assert.False(t, pkgerrors.IsTransactionRejected(io.EOF))
}

func TestParseError(t *testing.T) {
	t.Run("file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "text", File: "input.txt", Line: 3, Message: "expected a number"}
		assert.Equal(t, "parse error in text at input.txt:3: expected a number", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("line only", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "text", Line: 7, Message: "missing client"}
		assert.Equal(t, "text parse error at line 7: missing client", err.Error())
	})

	t.Run("wrap", func(t *testing.T) {
		base := errors.New("mapping values are not allowed")
		err := pkgerrors.WrapParse("yaml", "setup.yaml", base)
		assert.ErrorIs(t, err, base)
		assert.Nil(t, pkgerrors.WrapParse("yaml", "setup.yaml", nil))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "output.txt", base)
	assert.Equal(t, "IO error during write of output.txt: permission denied", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Nil(t, pkgerrors.WrapIO("write", "output.txt", nil))
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad value")
	err := pkgerrors.NewConfigError("holding_limit", "must be positive", base)
	assert.Equal(t, "configuration error in holding_limit: must be positive", err.Error())
	assert.ErrorIs(t, err, base)
}
