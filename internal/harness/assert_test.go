package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitshepherds/conform/internal/engine"
)

func newRecordingAsserter() (*Asserter, *RunReport) {
	report := NewRunReport()
	return NewAsserter(report), report
}

func TestAssertPass(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		a.AssertPass(stubSchema{}, "v", "desc", fudge{})
		require.Len(t, report.Points, 1)
		assert.Equal(t, StatusPass, report.Points[0].Status)
		assert.Equal(t, "desc", report.Points[0].Description)
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		rej := &engine.Rejection{Message: "nope", Types: []string{"type"}}
		a.AssertPass(stubSchema{rej: rej}, "v", "desc", fudge{})
		require.Len(t, report.Points, 1)
		assert.Equal(t, StatusFail, report.Points[0].Status)
		var rejErr *ValueRejectedError
		require.ErrorAs(t, report.Points[0].Err, &rejErr)
		assert.Contains(t, rejErr.Error(), "nope")
	})
}

func TestAssertFail_WronglyAccepted(t *testing.T) {
	t.Parallel()
	a, report := newRecordingAsserter()

	// With no rejection there is nothing to inspect: exactly one failing
	// point, and none of the detail sub-checks run.
	expected := &Detail{Types: []string{"type-fail"}}
	a.AssertFail(stubSchema{}, "v", expected, "desc", fudge{})

	require.Len(t, report.Points, 1)
	assert.Equal(t, StatusFail, report.Points[0].Status)
	var acc *ValueAcceptedError
	assert.ErrorAs(t, report.Points[0].Err, &acc)
}

func TestAssertFail_RejectedNoDetail(t *testing.T) {
	t.Parallel()
	a, report := newRecordingAsserter()
	rej := &engine.Rejection{Types: []string{"type"}}
	a.AssertFail(stubSchema{rej: rej}, "v", nil, "desc", fudge{})
	require.Len(t, report.Points, 1)
	assert.Equal(t, StatusPass, report.Points[0].Status)
}

func TestAssertFail_DetailChecks(t *testing.T) {
	t.Parallel()

	rej := &engine.Rejection{
		ValuePath: []string{},
		CheckPath: []string{"type"},
		Types:     []string{"b", "a"},
	}

	t.Run("all matching", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		expected := &Detail{
			Value: []string{}, // rejected at the root
			Check: []string{"type"},
			Types: []string{"a", "b"}, // order must not matter
		}
		a.AssertFail(stubSchema{rej: rej}, "v", expected, "desc", fudge{})

		require.Len(t, report.Points, 4)
		for _, p := range report.Points {
			assert.Equal(t, StatusPass, p.Status, p.Description)
		}
	})

	t.Run("empty path is root not absent", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		a.AssertFail(stubSchema{rej: rej}, "v", &Detail{Value: []string{}}, "desc", fudge{})
		require.Len(t, report.Points, 2)
		assert.Equal(t, StatusPass, report.Points[1].Status)
	})

	t.Run("one mismatch does not suppress the others", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		expected := &Detail{
			Value: []string{"wrong"},
			Check: []string{"type"},
			Types: []string{"a", "b"},
		}
		a.AssertFail(stubSchema{rej: rej}, "v", expected, "desc", fudge{})

		require.Len(t, report.Points, 4)
		assert.Equal(t, StatusPass, report.Points[0].Status) // was rejected
		assert.Equal(t, StatusFail, report.Points[1].Status) // value path
		assert.Equal(t, StatusPass, report.Points[2].Status) // check path
		assert.Equal(t, StatusPass, report.Points[3].Status) // error types

		var mism *PathMismatchError
		require.ErrorAs(t, report.Points[1].Err, &mism)
		assert.Equal(t, "value", mism.Field)
	})

	t.Run("type set mismatch", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		a.AssertFail(stubSchema{rej: rej}, "v", &Detail{Types: []string{"a"}}, "desc", fudge{})
		require.Len(t, report.Points, 2)
		assert.Equal(t, StatusFail, report.Points[1].Status)
		var mism *TypeSetMismatchError
		require.ErrorAs(t, report.Points[1].Err, &mism)
		assert.Equal(t, []string{"a", "b"}, mism.Got) // reported sorted
	})
}

func TestAssert_FudgedChecks(t *testing.T) {
	t.Parallel()
	f := fudge{reason: "engine gap", known: true}

	t.Run("failing check becomes known-fail", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		a.AssertFail(stubSchema{}, "v", nil, "desc", f)
		require.Len(t, report.Points, 1)
		assert.Equal(t, StatusKnownFail, report.Points[0].Status)
		assert.Equal(t, "engine gap", report.Points[0].Reason)
		assert.False(t, report.HasFailures())
	})

	t.Run("passing check becomes known-pass", func(t *testing.T) {
		t.Parallel()
		a, report := newRecordingAsserter()
		a.AssertPass(stubSchema{}, "v", "desc", f)
		require.Len(t, report.Points, 1)
		assert.Equal(t, StatusKnownPass, report.Points[0].Status)
	})
}
