package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bitshepherds/conform/internal/config"
	"github.com/bitshepherds/conform/internal/engine"
	"github.com/bitshepherds/conform/internal/harness"
	"github.com/bitshepherds/conform/internal/report"
)

// NewRunCmd creates the run command, which executes the whole conformance
// suite once (or continuously with --watch).
func NewRunCmd(ll *slog.LevelVar, stderr io.Writer) *cobra.Command {
	var configPath string
	var dataArgs []string
	var schemaArgs []string
	var verbose bool
	var watch bool
	outputVal := formatValue("text")

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every schema fixture's expectations against the data fixtures",
		Args:  cobra.NoArgs,
		Example: `
RUNNING WITH A CONFIG FILE (conform.yml in the working directory by default)
  conform run
  conform run -f path/to/conform.yml

RUNNING AGAINST EXPLICIT FIXTURE LOCATIONS
  conform run --data spec/data --schemas spec/schemata
  conform run --data values.json --data more.json --schemas str.json

RERUNNING ON FIXTURE CHANGES
  conform run --watch`,
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "path to the harness config file")
	cmd.Flags().StringArrayVar(&dataArgs, "data", nil, "data fixture file or directory (repeatable)")
	cmd.Flags().StringArrayVar(&schemaArgs, "schemas", nil, "schema fixture file or directory (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show passing checks as well as failures")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch the fixtures and rerun on changes")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			ll.Set(slog.LevelDebug)
		}
		noColour, _ := cmd.Flags().GetBool("nocolour")

		logger, logCloser, err := setupLogger(stderr, ll)
		if err != nil {
			logger.Warn("logging to file disabled", "error", err)
		}
		if logCloser != nil {
			defer logCloser.Close()
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		dataPaths, err := fixturePaths(cfg.DataFixturePaths, dataArgs)
		if err != nil {
			return err
		}
		schemaPaths, err := fixturePaths(cfg.SchemaFixturePaths, schemaArgs)
		if err != nil {
			return err
		}
		if len(dataPaths) == 0 {
			return &config.NoFixturesError{Kind: "data"}
		}
		if len(schemaPaths) == 0 {
			return &config.NoFixturesError{Kind: "schema"}
		}

		eng := engine.NewSanthoshEngine()

		var reporter harness.Reporter
		if outputVal == "json" {
			reporter = &report.JSONReporter{}
		} else {
			reporter = &report.TextReporter{Verbose: verbose, UseColour: !noColour}
		}

		// Fixtures are reloaded on every run so watch mode picks up edits.
		runOnce := func(ctx context.Context, w io.Writer) (*harness.RunReport, error) {
			store, err := harness.NewStore(dataPaths, schemaPaths)
			if err != nil {
				return nil, err
			}
			runner := harness.NewRunner(store, eng, cfg.Fudge, logger)
			rep, err := runner.Run(ctx)
			if err != nil {
				return nil, err
			}
			if err := reporter.Write(w, rep); err != nil {
				return nil, err
			}
			return rep, nil
		}

		if watch {
			roots := watchRoots(append(dataPaths, schemaPaths...))
			return watchAndRun(cmd.Context(), logger, roots, runOnce, cmd.OutOrStdout())
		}

		rep, err := runOnce(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if rep.HasFailures() {
			return &harness.RunFailedError{Failed: len(rep.Failed())}
		}
		return nil
	}

	return cmd
}

// loadConfig reads the given config file, or conform.yml from the working
// directory when present. With neither, an empty config is used and fixture
// locations must come from flags.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.New(path)
	}
	if _, err := os.Stat(config.HarnessConfigFile); err == nil {
		return config.New(config.HarnessConfigFile)
	}
	return &config.Config{}, nil
}

// fixturePaths combines the config's fixture files with --data/--schemas
// arguments, expanding directories, sorted for a deterministic load order.
func fixturePaths(fromConfig func() ([]string, error), args []string) ([]string, error) {
	paths, err := fromConfig()
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(a, "*.json"))
			if err != nil {
				return nil, err
			}
			paths = append(paths, matches...)
		} else {
			paths = append(paths, a)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// watchRoots derives the set of directories to watch from the fixture files.
func watchRoots(paths []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	sort.Strings(roots)
	return roots
}

// watchAndRun runs the suite once, then reruns it whenever the watcher
// reports a fixture change. In watch mode harness errors are logged rather
// than fatal: the next edit gets another chance.
func watchAndRun(
	ctx context.Context,
	logger *slog.Logger,
	roots []string,
	runOnce func(context.Context, io.Writer) (*harness.RunReport, error),
	w io.Writer,
) error {
	if _, err := runOnce(ctx, w); err != nil {
		logger.Error("Run failed", "error", err)
	}

	changes := make(chan string, 1)
	watcher := harness.NewWatcher(roots, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Watch(ctx, func(path string) {
			select {
			case changes <- path:
			default: // a rerun is already pending
			}
		})
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case path := <-changes:
				logger.Info("Fixtures changed, rerunning", "path", path)
				if _, err := runOnce(ctx, w); err != nil {
					logger.Error("Run failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
