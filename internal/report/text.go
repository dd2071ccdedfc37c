// Package report provides renderers for a finished conformance run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bitshepherds/conform/internal/harness"
)

// TextReporter implements harness.Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colYellow    = "\033[33m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *harness.RunReport) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "CONFORMANCE REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	for _, p := range r.Points {
		switch p.Status {
		case harness.StatusPass:
			if tr.Verbose {
				fmt.Fprintf(w, "%s %s\n", tr.cs(colGreen, "✓"), tr.cs(colGrey, p.Description))
			}
		case harness.StatusFail:
			fmt.Fprintf(w, "%s %s\n", tr.cs(colRed, "✗"), p.Description)
			fmt.Fprintf(w, "    %v\n", p.Err)
		case harness.StatusKnownFail:
			fmt.Fprintf(w, "%s %s %s\n", tr.cs(colYellow, "~"), tr.cs(colGrey, p.Description),
				tr.cs(colYellow, "(TODO: "+p.Reason+")"))
		case harness.StatusKnownPass:
			fmt.Fprintf(w, "%s %s %s\n", tr.cs(colYellow, "~"), tr.cs(colGrey, p.Description),
				tr.cs(colYellow, "(passed despite TODO: "+p.Reason+")"))
		}
	}

	passed, failed, known := r.Counts()

	fmt.Fprintf(w, "%s\n", divider)
	summaryLabel := tr.cs(colBoldWhite, "Run summary: ")
	summaryStats := fmt.Sprintf("%d passed, %d failed, %d known", passed, failed, known)
	statsColour := colBoldGreen
	if failed > 0 {
		statsColour = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n", summaryLabel, tr.cs(statsColour, summaryStats))
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}
