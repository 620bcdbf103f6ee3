// Package output formats resolver warnings and run summaries for the
// terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"httpbench/internal/metrics"
	"httpbench/internal/plan"
)

// Formatter writes human-readable output for a run. Colors are disabled
// explicitly with NoColor or implicitly when stdout is not a terminal.
type Formatter struct {
	Out io.Writer
	Err io.Writer

	warn    *color.Color
	errCol  *color.Color
	success *color.Color
	header  *color.Color
}

// NewFormatter builds a formatter writing to stdout/stderr.
func NewFormatter(noColor bool) *Formatter {
	f := &Formatter{
		Out:     os.Stdout,
		Err:     os.Stderr,
		warn:    color.New(color.FgYellow),
		errCol:  color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
		header:  color.New(color.FgCyan, color.Bold),
	}
	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		f.warn.DisableColor()
		f.errCol.DisableColor()
		f.success.DisableColor()
		f.header.DisableColor()
	}
	return f
}

// Warn reports one unresolvable URL. The URL stays in the set, so this
// is informational only.
func (f *Formatter) Warn(res plan.Resolution) {
	fmt.Fprintf(f.Err, "%s %s\n", f.warn.Sprint("warning:"), res.Warning())
}

// Fatal reports a fatal configuration error.
func (f *Formatter) Fatal(err error) {
	fmt.Fprintf(f.Err, "%s %v\n", f.errCol.Sprint("error:"), err)
}

// PrintPlan echoes the resolved plan before the run starts.
func (f *Formatter) PrintPlan(p plan.ExecutionPlan, urls int) {
	fmt.Fprintln(f.Out, f.header.Sprint("httpbench"))
	fmt.Fprintf(f.Out, "  %d requests, %d workers, %s %s order\n", p.Requests, p.Concurrency, p.Method, p.Order)
	fmt.Fprintf(f.Out, "  %d target URL(s)\n", urls)
	if p.DelayMs > 0 {
		fmt.Fprintf(f.Out, "  %dms %s delay between dispatches\n", p.DelayMs, p.DelayDist)
	}
	fmt.Fprintln(f.Out)
}

// PrintSummary writes the end-of-run latency and outcome summary.
func (f *Formatter) PrintSummary(s metrics.Summary, elapsed time.Duration) {
	rps := 0.0
	if elapsed > 0 {
		rps = float64(s.Total) / elapsed.Seconds()
	}

	fmt.Fprintln(f.Out, f.header.Sprint("Results"))
	fmt.Fprintf(f.Out, "  Duration:  %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(f.Out, "  Requests:  %d (%.1f req/s)\n", s.Total, rps)
	fmt.Fprintf(f.Out, "  Success:   %s\n", f.success.Sprintf("%d", s.Success))
	if s.Failed > 0 {
		fmt.Fprintf(f.Out, "  Failed:    %s\n", f.errCol.Sprintf("%d", s.Failed))
	} else {
		fmt.Fprintf(f.Out, "  Failed:    %d\n", s.Failed)
	}
	fmt.Fprintln(f.Out)
	fmt.Fprintln(f.Out, "  Latency")
	fmt.Fprintf(f.Out, "    Min:   %s\n", s.Min.Round(time.Microsecond))
	fmt.Fprintf(f.Out, "    Mean:  %s\n", s.Mean.Round(time.Microsecond))
	fmt.Fprintf(f.Out, "    P50:   %s\n", s.P50.Round(time.Microsecond))
	fmt.Fprintf(f.Out, "    P90:   %s\n", s.P90.Round(time.Microsecond))
	fmt.Fprintf(f.Out, "    P95:   %s\n", s.P95.Round(time.Microsecond))
	fmt.Fprintf(f.Out, "    P99:   %s\n", s.P99.Round(time.Microsecond))
	fmt.Fprintf(f.Out, "    Max:   %s\n", s.Max.Round(time.Microsecond))
}

// PrintSlowReport lists every request above the percentile threshold.
func (f *Formatter) PrintSlowReport(percentile float64, threshold time.Duration, slow []metrics.Record) {
	fmt.Fprintln(f.Out)
	fmt.Fprintln(f.Out, f.header.Sprintf("Slow requests (above p%g = %s)", percentile*100, threshold.Round(time.Microsecond)))
	if len(slow) == 0 {
		fmt.Fprintln(f.Out, "  none")
		return
	}
	for _, r := range slow {
		fmt.Fprintf(f.Out, "  %s  %s\n", r.Latency.Round(time.Microsecond), r.URL)
	}
}
