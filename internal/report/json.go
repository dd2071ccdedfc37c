package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/bitshepherds/conform/internal/harness"
)

// JSONReporter implements harness.Reporter for JSON output.
type JSONReporter struct{}

type jsonPoint struct {
	Description string `json:"description"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Error       string `json:"error,omitempty"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		Passed int `json:"passed"`
		Failed int `json:"failed"`
		Known  int `json:"known"`
	} `json:"stats"`
	Points []jsonPoint `json:"points"`
}

func (jr *JSONReporter) Write(w io.Writer, r *harness.RunReport) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Points:    make([]jsonPoint, 0, len(r.Points)),
	}

	out.Stats.Passed, out.Stats.Failed, out.Stats.Known = r.Counts()

	for _, p := range r.Points {
		jp := jsonPoint{
			Description: p.Description,
			Status:      string(p.Status),
			Reason:      p.Reason,
		}
		if p.Err != nil {
			jp.Error = p.Err.Error()
		}
		out.Points = append(out.Points, jp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
