package harness

import (
	"slices"

	"github.com/bitshepherds/conform/internal/engine"
)

// Asserter checks values against a built schema and records every outcome as
// an independent test point. Validation outcomes are never fatal.
type Asserter struct {
	sink Sink
}

// NewAsserter creates an Asserter recording into sink.
func NewAsserter(sink Sink) *Asserter {
	return &Asserter{sink: sink}
}

// fudge marks a check as expected to diverge, with the override's reason.
type fudge struct {
	reason string
	known  bool
}

// record converts an assertion result into a point, reclassifying fudged
// checks as known rather than ordinary passes/failures.
func (a *Asserter) record(desc string, ok bool, err error, f fudge) {
	p := Point{Description: desc, Err: err, Reason: f.reason}
	switch {
	case ok && f.known:
		p.Status = StatusKnownPass
	case ok:
		p.Status = StatusPass
	case f.known:
		p.Status = StatusKnownFail
	default:
		p.Status = StatusFail
	}
	if ok {
		p.Err = nil
	}
	a.sink.Record(p)
}

// AssertPass expects the schema to accept the value.
func (a *Asserter) AssertPass(s engine.Schema, v any, desc string, f fudge) {
	rej := s.Check(v)
	if rej == nil {
		a.record(desc, true, nil, f)
		return
	}
	a.record(desc, false, &ValueRejectedError{Diagnostic: rej.Message}, f)
}

// AssertFail expects the schema to reject the value, and checks the fields of
// expected (when given) against the rejection's introspection details. Each
// sub-check is its own point; a mismatch in one does not suppress the others.
func (a *Asserter) AssertFail(s engine.Schema, v any, expected *Detail, desc string, f fudge) {
	rej := s.Check(v)
	if rej == nil {
		// Wrongly accepted: there is no rejection to inspect, so the
		// detail sub-checks do not run.
		a.record(desc, false, &ValueAcceptedError{}, f)
		return
	}
	a.record(desc, true, nil, f)

	if expected == nil {
		return
	}

	if expected.Value != nil {
		ok := slices.Equal(rej.ValuePath, expected.Value)
		a.record(desc+" [value path]", ok,
			&PathMismatchError{Field: "value", Want: expected.Value, Got: rej.ValuePath}, f)
	}
	if expected.Check != nil {
		ok := slices.Equal(rej.CheckPath, expected.Check)
		a.record(desc+" [check path]", ok,
			&PathMismatchError{Field: "check", Want: expected.Check, Got: rej.CheckPath}, f)
	}
	if expected.Types != nil {
		want := sortedSet(expected.Types)
		got := sortedSet(rej.Types)
		a.record(desc+" [error types]", slices.Equal(got, want),
			&TypeSetMismatchError{Want: want, Got: got}, f)
	}
}

func sortedSet(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
