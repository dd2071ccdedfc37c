// Package app wires the conform CLI together.
package app

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is the current version of conform, set at build time.
var Version = "dev"

var LongDescription = `
conform is a conformance-test harness for schema fixtures. It loads data
fixtures (named sample values) and schema fixtures (schema definitions with
declared pass/fail outcomes), checks every sample against every declaration,
and reports one test point per check - including where and why a rejection
occurred.
`

// NewRootCmd creates the root command.
func NewRootCmd(ll *slog.LevelVar, stderr io.Writer) *cobra.Command {
	var debug bool
	var noColour bool

	rootCmd := &cobra.Command{
		Use:           "conform",
		Short:         "A conformance-test harness for schema fixtures",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support the alternate spelling
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")

	rootCmd.AddCommand(NewRunCmd(ll, stderr))

	return rootCmd
}
