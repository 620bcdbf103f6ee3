package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"httpbench/internal/metrics"
	"httpbench/internal/plan"
)

func newTestFormatter() (*Formatter, *bytes.Buffer, *bytes.Buffer) {
	f := NewFormatter(true)
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	f.Out = out
	f.Err = errBuf
	return f, out, errBuf
}

func TestWarnNamesOffendingURL(t *testing.T) {
	f, _, errBuf := newTestFormatter()

	f.Warn(plan.Resolution{
		Input:   "/bad%zz",
		URL:     "/bad%zz",
		Outcome: plan.OutcomeUnresolvable,
		Err:     errors.New(`invalid URL escape "%zz"`),
	})

	got := errBuf.String()
	if !strings.Contains(got, "/bad%zz") {
		t.Errorf("warning %q does not name the offending URL", got)
	}
	if !strings.Contains(got, "invalid URL escape") {
		t.Errorf("warning %q does not include the parse error", got)
	}
}

func TestPrintSummary(t *testing.T) {
	f, out, _ := newTestFormatter()

	f.PrintSummary(metrics.Summary{
		Total:   100,
		Success: 98,
		Failed:  2,
		P95:     42 * time.Millisecond,
	}, 2*time.Second)

	got := out.String()
	for _, want := range []string{"100", "98", "2", "42ms", "50.0 req/s"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSlowReport(t *testing.T) {
	f, out, _ := newTestFormatter()

	f.PrintSlowReport(0.95, 40*time.Millisecond, []metrics.Record{
		{URL: "http://slow.example.com/q", Latency: 90 * time.Millisecond},
	})

	got := out.String()
	if !strings.Contains(got, "p95") {
		t.Errorf("slow report missing percentile label:\n%s", got)
	}
	if !strings.Contains(got, "http://slow.example.com/q") {
		t.Errorf("slow report missing the slow URL:\n%s", got)
	}
}

func TestPrintSlowReportEmpty(t *testing.T) {
	f, out, _ := newTestFormatter()

	f.PrintSlowReport(0.99, 10*time.Millisecond, nil)

	if !strings.Contains(out.String(), "none") {
		t.Errorf("empty slow report should say none:\n%s", out.String())
	}
}
