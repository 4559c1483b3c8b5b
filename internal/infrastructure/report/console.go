// Package report prints and persists run outcomes.
package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"shopcheck/internal/application/port/output"
	"shopcheck/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ReporterPort = (*Console)(nil)

// Console writes one line per finished scenario and a closing summary.
// ScenarioFinished may be called from several workers.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	jsonPath string

	pass *color.Color
	fail *color.Color
	dim  *color.Color
	bold *color.Color
}

// NewConsole reports to w. When jsonPath is set the full result is also
// written there as JSON.
func NewConsole(w io.Writer, jsonPath string) *Console {
	return &Console{
		w:        w,
		jsonPath: jsonPath,
		pass:     color.New(color.FgGreen, color.Bold),
		fail:     color.New(color.FgRed, color.Bold),
		dim:      color.New(color.Faint),
		bold:     color.New(color.Bold),
	}
}

func (c *Console) ScenarioFinished(o entity.ScenarioOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Passed() {
		c.pass.Fprint(c.w, "PASS")
	} else {
		c.fail.Fprint(c.w, "FAIL")
	}
	fmt.Fprintf(c.w, " %s [%s] ", o.Scenario, o.Engine)
	c.dim.Fprintf(c.w, "(%s)\n", o.Duration.Round(time.Millisecond))

	if o.Passed() {
		return
	}

	if o.Stage != "" {
		fmt.Fprintf(c.w, "     at %s.%s", o.Stage, o.Operation)
		if o.Kind != "" {
			fmt.Fprintf(c.w, " (%s)", o.Kind)
		}
		fmt.Fprintln(c.w)
	}
	if o.Expected != "" || o.Actual != "" {
		fmt.Fprintf(c.w, "     expected: %q\n", o.Expected)
		fmt.Fprintf(c.w, "     actual:   %q\n", o.Actual)
	}
	c.dim.Fprintf(c.w, "     %s\n", truncate(o.Error, 300))
	for _, a := range o.Artifacts {
		c.dim.Fprintf(c.w, "     artifact: %s\n", a)
	}
}

func (c *Console) RunFinished(outcomes []entity.ScenarioOutcome, summary entity.RunSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w)
	c.bold.Fprintf(c.w, "%d scenarios, ", summary.Total)
	c.pass.Fprintf(c.w, "%d passed", summary.Passed)
	fmt.Fprint(c.w, ", ")
	if summary.Failed > 0 {
		c.fail.Fprintf(c.w, "%d failed", summary.Failed)
	} else {
		fmt.Fprintf(c.w, "%d failed", summary.Failed)
	}
	c.dim.Fprintf(c.w, " in %s\n", summary.Duration.Round(time.Millisecond))

	if c.jsonPath == "" {
		return nil
	}
	return WriteJSONFile(c.jsonPath, outcomes, summary)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
