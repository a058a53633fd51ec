// Package shell provides the interactive shell command.
package shell

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice/internal/appcontext"
	"github.com/agentstation/boxoffice/internal/cmd/output"
	session "github.com/agentstation/boxoffice/internal/shell"
)

// NewCommand creates the shell command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var maxRetries int

	cmd := &cobra.Command{
		Use:     "shell",
		GroupID: "core",
		Short:   "Sell and return tickets interactively",
		Long: `Shell runs the box office menu on standard input and output.

  [e] display events       [c] display clients
  [b] sell tickets         [r] cancel or return tickets
  [f] exit

Every sale and return is confirmed before it is applied. Asking for a
sold-out event appends a letter to the letters file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bo, err := app.BoxOffice()
			if err != nil {
				return err
			}

			retries := app.MaxRetries()
			if cmd.Flags().Changed("max-retries") {
				retries = maxRetries
			}

			// Menus are for people; only the wide table is honored here.
			format := output.FormatTable
			if output.Format(app.OutputFormat()) == output.FormatWide {
				format = output.FormatWide
			}

			s := session.New(bo, cmd.InOrStdin(), cmd.OutOrStdout(),
				session.WithMaxRetries(retries),
				session.WithFormat(format),
				session.WithLogger(app.Logger()),
			)
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&maxRetries, "max-retries", 0, "retries allowed per prompt before returning to the menu (0 = unbounded)")

	return cmd
}
