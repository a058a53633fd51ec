// Package clients provides the clients command.
package clients

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice/internal/appcontext"
	"github.com/agentstation/boxoffice/internal/cmd/output"
)

// NewCommand creates the clients command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "clients",
		GroupID: "core",
		Short:   "List clients and the tickets they hold",
		Example: `  boxoffice clients            # Clients ordered by last name
  boxoffice clients -o json    # Machine readable holdings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bo, err := app.BoxOffice()
			if err != nil {
				return err
			}
			return output.FormatClients(cmd.OutOrStdout(), bo.Clients(), output.Format(app.OutputFormat()))
		},
	}
}
