// Package replay provides the replay command.
package replay

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice"
	"github.com/agentstation/boxoffice/internal/appcontext"
	"github.com/agentstation/boxoffice/internal/cmd/output"
	"github.com/agentstation/boxoffice/internal/replay"
	"github.com/agentstation/boxoffice/pkg/logging"
)

// Report is the structured result of a replay.
type Report struct {
	Summary  replay.Summary         `json:"summary" yaml:"summary"`
	Outcomes []replay.Outcome       `json:"outcomes" yaml:"outcomes"`
	Events   []boxoffice.EventView  `json:"events" yaml:"events"`
	Clients  []boxoffice.ClientView `json:"clients" yaml:"clients"`
	Journal  []boxoffice.Entry      `json:"journal" yaml:"journal"`
}

// NewCommand creates the replay command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "replay <script.yaml>",
		GroupID: "core",
		Short:   "Apply a scripted list of sales and returns",
		Long: `Replay applies each step of a YAML script in order:

  steps:
    - {op: sell, client: Anna Smith, event: Football, quantity: 2}
    - {op: cancel, client: Anna Smith, event: Football, quantity: 1}

Rejected steps are reported and the run continues unless --strict is set.
A summary, the final events, clients and journal are printed afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			bo, err := app.BoxOffice()
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			outcomes, runErr := replay.NewRunner(bo, replay.WithStrict(strict)).Run(ctx, script)

			report := Report{
				Summary:  replay.Summarize(outcomes),
				Outcomes: outcomes,
				Events:   bo.Events(),
				Clients:  bo.Clients(),
				Journal:  bo.Journal(),
			}
			if err := writeReport(cmd.OutOrStdout(), report, output.Format(app.OutputFormat())); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first rejected step and exit non-zero")

	return cmd
}

func writeReport(w io.Writer, report Report, format output.Format) error {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return output.FormatAny(w, report, format)
	}

	sections := []struct {
		title string
		write func() error
	}{
		{"SUMMARY", func() error { return output.FormatAny(w, report.Summary, format) }},
		{"OUTCOMES", func() error { return output.FormatOutcomes(w, report.Outcomes, format) }},
		{"EVENTS", func() error { return output.FormatEvents(w, report.Events, format) }},
		{"CLIENTS", func() error { return output.FormatClients(w, report.Clients, format) }},
		{"JOURNAL", func() error { return output.FormatJournal(w, report.Journal, format) }},
	}
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, section.title)
		if err := section.write(); err != nil {
			return err
		}
	}
	return nil
}
