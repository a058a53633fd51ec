package output

import (
	"io"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/cmd/table"
	"github.com/agentstation/boxoffice/internal/replay"
)

// isTable reports whether format renders as a table.
func isTable(format Format) bool {
	switch format {
	case FormatTable, FormatWide, "":
		return true
	default:
		return false
	}
}

// FormatEvents handles the common pattern of formatting events for output.
func FormatEvents(w io.Writer, events []boxoffice.EventView, format Format) error {
	var outputData any = events
	if isTable(format) {
		outputData = table.EventsToTableData(events, format == FormatWide)
	}
	return NewFormatter(format).Format(w, outputData)
}

// FormatClients handles the common pattern of formatting clients for output.
func FormatClients(w io.Writer, clients []boxoffice.ClientView, format Format) error {
	var outputData any = clients
	if isTable(format) {
		outputData = table.ClientsToTableData(clients, format == FormatWide)
	}
	return NewFormatter(format).Format(w, outputData)
}

// FormatJournal handles the common pattern of formatting journal entries for output.
func FormatJournal(w io.Writer, entries []boxoffice.Entry, format Format) error {
	var outputData any = entries
	if isTable(format) {
		outputData = table.JournalToTableData(entries, format == FormatWide)
	}
	return NewFormatter(format).Format(w, outputData)
}

// FormatAny handles the common pattern of formatting any data type for output.
// This is useful for commands with custom data structures.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}

// FormatOutcomes handles the common pattern of formatting replay outcomes for output.
func FormatOutcomes(w io.Writer, outcomes []replay.Outcome, format Format) error {
	var outputData any = outcomes
	if isTable(format) {
		outputData = table.OutcomesToTableData(outcomes)
	}
	return NewFormatter(format).Format(w, outputData)
}
