package harness

import (
	"io"
	"sync"
	"time"
)

// Status classifies a recorded test point.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"

	// StatusKnownFail marks a failing check covered by a known-failure
	// override. It is reported, but does not fail the run.
	StatusKnownFail Status = "known-fail"

	// StatusKnownPass marks a passing check that an override said should
	// diverge - worth a look, the fudge may be stale.
	StatusKnownPass Status = "known-pass"
)

// Point is one recorded check. Description identifies the schema, data source
// and entry precisely enough to locate the fixture data.
type Point struct {
	Description string
	Status      Status
	Reason      string // known-failure reason, when the check was fudged
	Err         error  // diagnostic, for failing points
}

// Sink records test points as a run progresses.
type Sink interface {
	Record(p Point)
}

// Reporter renders a finished report.
type Reporter interface {
	Write(w io.Writer, report *RunReport) error
}

// RunReport collects every point of a run. It is the default Sink.
type RunReport struct {
	mu sync.Mutex

	StartTime time.Time
	EndTime   time.Time
	Points    []Point
}

// NewRunReport creates an empty RunReport.
func NewRunReport() *RunReport {
	return &RunReport{}
}

// Record appends a point to the report.
func (r *RunReport) Record(p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Points = append(r.Points, p)
}

// Counts returns the number of passed, failed and known-divergent points.
// Known points of either flavour count as known.
func (r *RunReport) Counts() (passed, failed, known int) {
	for _, p := range r.Points {
		switch p.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		default:
			known++
		}
	}
	return passed, failed, known
}

// HasFailures reports whether any point failed outright. Known-tolerated
// divergences do not count.
func (r *RunReport) HasFailures() bool {
	_, failed, _ := r.Counts()
	return failed > 0
}

// Failed returns the outright-failing points.
func (r *RunReport) Failed() []Point {
	var out []Point
	for _, p := range r.Points {
		if p.Status == StatusFail {
			out = append(out, p)
		}
	}
	return out
}
