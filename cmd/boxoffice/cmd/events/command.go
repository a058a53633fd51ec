// Package events provides the events command.
package events

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice/internal/appcontext"
	"github.com/agentstation/boxoffice/internal/cmd/output"
)

// NewCommand creates the events command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "events",
		GroupID: "core",
		Short:   "List events and remaining tickets",
		Long: `Events lists every event in the catalog in display order together
with the number of tickets still available. The wide format adds the
original capacity and the number sold.`,
		Example: `  boxoffice events                     # Events from ./input.txt
  boxoffice events --input venue.yaml  # Events from a YAML bootstrap
  boxoffice events -o wide             # Include capacity and sold columns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bo, err := app.BoxOffice()
			if err != nil {
				return err
			}
			return output.FormatEvents(cmd.OutOrStdout(), bo.Events(), output.Format(app.OutputFormat()))
		},
	}
}
