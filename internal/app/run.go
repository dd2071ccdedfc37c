package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Run executes the CLI. Errors are printed once to stderr here because the
// root command silences cobra's own reporting.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	rootCmd := NewRootCmd(logLevel, stderr)
	rootCmd.SetArgs(args[1:]) // Skip the program name
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
