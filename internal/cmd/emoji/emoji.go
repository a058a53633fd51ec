// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used to mark results in tables and summaries.
const (
	// Success marks an applied transaction.
	Success = "✓"

	// Error marks a rejected transaction.
	Error = "✗"

	// SoldOut marks an event with no tickets left.
	SoldOut = "×"
)

// Result returns "✓ ok" for success, or "✗ " followed by reason.
func Result(ok bool, reason string) string {
	if ok {
		return Success + " ok"
	}
	return Error + " " + reason
}
