// Package metrics aggregates per-request latencies for reporting.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds: 1 microsecond to 1 hour, 3 significant figures.
const (
	histMin     = 1
	histMax     = 3600000000
	histSigFigs = 3
)

// Record is the outcome of a single dispatched request.
type Record struct {
	URL     string
	Status  int
	Latency time.Duration
	Err     error
}

// Collector accumulates request outcomes during a run. It keeps an HDR
// histogram for percentile queries plus the individual records, which
// the slow-request report needs after the run.
//
// Collector is safe for concurrent use by the engine's workers.
type Collector struct {
	mu      sync.Mutex
	hist    *hdrhistogram.Histogram
	records []Record
	success int64
	failed  int64
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		hist: hdrhistogram.New(histMin, histMax, histSigFigs),
	}
}

// Add records one request outcome. A request counts as failed when the
// transport errored or the status is 400 or above.
func (c *Collector) Add(r Record) {
	micros := r.Latency.Microseconds()
	if micros < histMin {
		micros = histMin
	}
	if micros > histMax {
		micros = histMax
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.hist.RecordValue(micros)
	c.records = append(c.records, r)
	if r.Err == nil && r.Status < 400 {
		c.success++
	} else {
		c.failed++
	}
}

// Summary is a point-in-time aggregation of everything recorded.
type Summary struct {
	Total   int64
	Success int64
	Failed  int64
	Min     time.Duration
	Max     time.Duration
	Mean    time.Duration
	P50     time.Duration
	P90     time.Duration
	P95     time.Duration
	P99     time.Duration
}

// Snapshot computes the summary of all records so far.
func (c *Collector) Snapshot() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summary{
		Total:   c.success + c.failed,
		Success: c.success,
		Failed:  c.failed,
		Min:     time.Duration(c.hist.Min()) * time.Microsecond,
		Max:     time.Duration(c.hist.Max()) * time.Microsecond,
		Mean:    time.Duration(c.hist.Mean()) * time.Microsecond,
		P50:     time.Duration(c.hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:     time.Duration(c.hist.ValueAtQuantile(90)) * time.Microsecond,
		P95:     time.Duration(c.hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:     time.Duration(c.hist.ValueAtQuantile(99)) * time.Microsecond,
	}
}

// SlowRequests returns the latency at the given percentile (in (0, 1])
// and every record whose latency exceeded it, in dispatch order.
func (c *Collector) SlowRequests(percentile float64) (time.Duration, []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	threshold := time.Duration(c.hist.ValueAtQuantile(percentile*100)) * time.Microsecond
	var slow []Record
	for _, r := range c.records {
		if r.Latency > threshold {
			slow = append(slow, r)
		}
	}
	return threshold, slow
}
