package harness

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bitshepherds/conform/internal/engine"
)

// Runner executes every loaded schema fixture's expanded expectations against
// a validation engine. Execution is sequential and lexically ordered so a
// run's output is reproducible.
type Runner struct {
	store  *Store
	eng    engine.Engine
	fudges FudgeTable
	logger *slog.Logger
}

// NewRunner creates a Runner over the given store and engine. fudges may be
// nil when no known failures are configured.
func NewRunner(store *Store, eng engine.Engine, fudges FudgeTable, logger *slog.Logger) *Runner {
	return &Runner{
		store:  store,
		eng:    eng,
		fudges: fudges,
		logger: logger.With("component", "runner"),
	}
}

// Run executes the whole suite and returns the collected report. A returned
// error is a harness misconfiguration and aborts the run; validation
// mismatches are recorded in the report instead.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	report := NewRunReport()
	report.StartTime = time.Now()
	defer func() { report.EndTime = time.Now() }()

	asserter := NewAsserter(report)

	for _, name := range r.store.SchemaNames() {
		if ce := ctx.Err(); ce != nil {
			return report, ce
		}
		if err := r.runSchema(name, asserter, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (r *Runner) runSchema(name string, asserter *Asserter, report *RunReport) error {
	sf, _ := r.store.SchemaFixture(name)
	r.logger.Debug("building schema", "schema", name, "invalid", sf.Invalid)

	schema, err := r.eng.Build(sf.Schema)
	if sf.Invalid {
		desc := fmt.Sprintf("BAD SCHEMA: %s", name)
		if err != nil {
			report.Record(Point{Description: desc, Status: StatusPass})
		} else {
			report.Record(Point{Description: desc, Status: StatusFail, Err: &UnexpectedBuildError{Name: name}})
		}
		return nil
	}
	if err != nil {
		return &SchemaBuildError{Name: name, Wrapped: err}
	}

	for _, d := range []Disposition{DispositionPass, DispositionFail} {
		if err := r.runExpansion(name, schema, d, sf.Expansion(d), asserter); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runExpansion(
	name string,
	schema engine.Schema,
	d Disposition,
	exp Expansion,
	asserter *Asserter,
) error {
	for _, source := range sortedKeys(exp) {
		df, err := r.store.DataFixture(source)
		if err != nil {
			return err
		}

		entries := exp[source]
		for _, entryName := range sortedKeys(entries) {
			entry, ok := df.Entries[entryName]
			if !ok {
				return &UnknownEntryError{Schema: name, Source: source, Entry: entryName}
			}

			value, err := entry.Decode()
			if err != nil {
				return err
			}

			reason, known := r.fudges.ReasonFor(name, source, entryName)
			desc := describe(d, source, entryName, name)
			f := fudge{reason: reason, known: known}

			if d == DispositionPass {
				asserter.AssertPass(schema, value, desc, f)
			} else {
				asserter.AssertFail(schema, value, entries[entryName], desc, f)
			}
		}
	}
	return nil
}

// describe builds the human-readable point description, e.g.
// "VALID  : strings/a against str-schema".
func describe(d Disposition, source, entry, schemaName string) string {
	label := "VALID  "
	if d == DispositionFail {
		label = "INVALID"
	}
	return fmt.Sprintf("%s: %s/%s against %s", label, source, entry, schemaName)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
