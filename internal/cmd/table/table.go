// Package table converts ledger views into rows for table output.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/cmd/emoji"
	"github.com/agentstation/boxoffice/internal/replay"
	"github.com/agentstation/boxoffice/pkg/ledger"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// EventsToTableData converts events to table format. wide adds capacity
// and sold columns.
func EventsToTableData(events []boxoffice.EventView, wide bool) Data {
	headers := []string{"Event", "Remaining"}
	align := []Align{AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Capacity", "Sold")
		align = append(align, AlignRight, AlignRight)
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		row := []string{e.Name, FormatRemaining(e.Remaining)}
		if wide {
			row = append(row, strconv.Itoa(e.Capacity), strconv.Itoa(e.Capacity-e.Remaining))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// ClientsToTableData converts clients to table format.
func ClientsToTableData(clients []boxoffice.ClientView, wide bool) Data {
	headers := []string{"Client", "Events Attending"}
	if wide {
		headers = append(headers, "Events", "Tickets")
	}

	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		row := []string{c.FullName(), FormatHoldings(c.Holdings)}
		if wide {
			total := 0
			for _, h := range c.Holdings {
				total += h.Quantity
			}
			row = append(row, strconv.Itoa(len(c.Holdings)), strconv.Itoa(total))
		}
		rows = append(rows, row)
	}

	align := []Align{AlignLeft, AlignLeft}
	if wide {
		align = append(align, AlignRight, AlignRight)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// JournalToTableData converts journal entries to table format.
func JournalToTableData(entries []boxoffice.Entry, wide bool) Data {
	headers := []string{"Kind", "Client", "Event", "Quantity", "Held"}
	if wide {
		headers = append([]string{"ID"}, append(headers, "At")...)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{e.Kind.String(), e.Client, e.Event, strconv.Itoa(e.Quantity), strconv.Itoa(e.Held)}
		if wide {
			row = append([]string{e.ID}, append(row, e.At.Format("2006-01-02 15:04:05"))...)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// FormatRemaining renders a ticket count, marking sold-out events.
func FormatRemaining(n int) string {
	if n == 0 {
		return emoji.SoldOut + " sold out"
	}
	return strconv.Itoa(n)
}

// FormatHoldings renders holdings as "Event - n, ...", or a dash when empty.
func FormatHoldings(holdings []ledger.Holding) string {
	if len(holdings) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(holdings))
	for _, h := range holdings {
		parts = append(parts, h.String())
	}
	return strings.Join(parts, ", ")
}

// OutcomesToTableData converts replay outcomes to table format.
func OutcomesToTableData(outcomes []replay.Outcome) Data {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		result := emoji.Result(o.OK, o.Error)
		rows = append(rows, []string{
			strconv.Itoa(o.Step),
			string(o.Op),
			o.Client,
			o.Event,
			strconv.Itoa(o.Quantity),
			result,
		})
	}

	return Data{
		Headers:         []string{"Step", "Op", "Client", "Event", "Quantity", "Result"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}
