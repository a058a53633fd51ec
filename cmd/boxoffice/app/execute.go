package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/boxoffice/internal/cmd/globals"
	"github.com/agentstation/boxoffice/internal/cmd/output"
)

// Execute runs the boxoffice CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "boxoffice",
		Short:   "Ticket box office ledger",
		Version: a.version,
		Long: `Boxoffice keeps the ticket ledger for a small venue: which events
exist, how many tickets remain for each, and which clients hold them.

Events and clients are loaded from a bootstrap file (plain text or YAML).
Tickets are sold and returned through the interactive shell or a replay
script. When a client asks for a sold-out event a letter is appended to
the letters file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	if a.in != nil {
		rootCmd.SetIn(a.in)
	}
	if a.out != nil {
		rootCmd.SetOut(a.out)
		rootCmd.SetErr(a.out)
	}

	a.flags = globals.AddFlags(rootCmd)

	rootCmd.SetVersionTemplate("boxoffice {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	changed := func(name string) bool { return globals.Changed(cmd, name) }

	// An explicit config file replaces whatever LoadConfig found.
	if changed("config") {
		config, err := LoadConfigFile(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(a.flags, changed)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	a.config.Format = string(output.DetectFormat(string(format)))

	logger := NewLogger(a.config, cmd.ErrOrStderr())
	a.logger = &logger

	a.logger.Debug().
		Str("config", a.config.ConfigFile).
		Str("input", a.config.Input).
		Str("letters", a.config.Letters).
		Bool("sample", a.config.Sample).
		Int("holding_limit", a.config.HoldingLimit).
		Msg("Configuration loaded")

	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
