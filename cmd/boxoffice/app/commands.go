package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice/cmd/boxoffice/cmd/clients"
	"github.com/agentstation/boxoffice/cmd/boxoffice/cmd/events"
	"github.com/agentstation/boxoffice/cmd/boxoffice/cmd/replay"
	"github.com/agentstation/boxoffice/cmd/boxoffice/cmd/serve"
	"github.com/agentstation/boxoffice/cmd/boxoffice/cmd/shell"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(events.NewCommand(a))
	rootCmd.AddCommand(clients.NewCommand(a))
	rootCmd.AddCommand(shell.NewCommand(a))
	rootCmd.AddCommand(replay.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("boxoffice %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
