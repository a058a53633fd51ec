package errors_test

import (
	"fmt"

	"github.com/agentstation/boxoffice/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	err := &errors.NotFoundError{
		Resource: "event",
		ID:       "Curling",
	}

	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_insufficientStock shows how a driver reads the remaining count
// to offer the user a retry.
func Example_insufficientStock() {
	var err error = &errors.InsufficientStockError{Event: "Football", Requested: 5, Remaining: 2}

	var stockErr *errors.InsufficientStockError
	if errors.As(err, &stockErr) {
		fmt.Printf("There are only %d tickets remaining\n", stockErr.Remaining)
	}

	// Output: There are only 2 tickets remaining
}
