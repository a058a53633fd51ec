package shell

import (
	"fmt"

	"github.com/agentstation/boxoffice/pkg/errors"
)

// describe turns a ledger rejection into the line shown to the operator.
func describe(err error) string {
	var (
		limit    *errors.HoldingLimitError
		soldOut  *errors.SoldOutError
		stock    *errors.InsufficientStockError
		quantity *errors.QuantityError
		none     *errors.NoSuchHoldingError
		holding  *errors.InsufficientHoldingError
		notFound *errors.NotFoundError
	)

	switch {
	case errors.As(err, &limit):
		return fmt.Sprintf("Sorry a client is only able to buy tickets for up to %d events", limit.Limit)
	case errors.As(err, &soldOut):
		return "No more tickets available for " + soldOut.Event
	case errors.As(err, &stock):
		return fmt.Sprintf("There are only %d tickets remaining", stock.Remaining)
	case errors.As(err, &quantity):
		return "Error: Positive whole number expected"
	case errors.As(err, &none):
		return fmt.Sprintf("%s doesn't have any tickets for %s", none.Client, none.Event)
	case errors.As(err, &holding):
		return holding.Client + " doesn't have that many tickets to return"
	case errors.As(err, &notFound):
		return "Cannot find that " + notFound.Resource
	default:
		return "Error: " + err.Error()
	}
}
