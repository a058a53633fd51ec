// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds the persistent flags shared by every command.
type Flags struct {
	ConfigFile string
	Input      string
	Letters    string
	Sample     bool
	Format     string
	LogLevel   string
	Quiet      bool
	Verbose    bool
	NoColor    bool
}

// AddFlags adds the persistent flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.ConfigFile, "config", "", "config file (default is $HOME/.boxoffice.yaml)")
	pf.StringVar(&flags.Input, "input", "", "bootstrap file with events and clients (.txt, .yaml)")
	pf.StringVar(&flags.Letters, "letters", "", "file that sold-out letters are appended to")
	pf.BoolVar(&flags.Sample, "sample", false, "use the built-in sample events and clients instead of --input")

	// Use -o for output to match kubectl-style tools
	pf.StringVarP(&flags.Format, "format", "o", "", "output format: table, json, yaml, wide")
	pf.StringVar(&flags.Format, "output", "", "")
	_ = pf.MarkHidden("output") // Hidden but functional

	pf.StringVar(&flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVar(&flags.NoColor, "no-color", false, "disable colored output")

	return flags
}

// Changed reports whether the named persistent flag was set on the command line.
func Changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		f = cmd.Root().PersistentFlags().Lookup(name)
	}
	return f != nil && f.Changed
}
