// Package engine dispatches the HTTP requests described by a resolved
// plan. It consumes the plan as-is: all validation happened upstream,
// so the engine never re-checks URL shapes or payload presence.
package engine

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"httpbench/internal/metrics"
	"httpbench/internal/plan"
)

// job is one request to dispatch: a URL index paired with the payload
// that rides along for POST/PUT.
type job struct {
	url     string
	payload string
}

// Engine issues the configured number of requests over the resolved URL
// set using a fixed pool of workers.
type Engine struct {
	plan      plan.ExecutionPlan
	targets   plan.ResolvedTargets
	client    *http.Client
	collector *metrics.Collector
	rng       *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithClient replaces the default HTTP client.
func WithClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithSeed makes URL selection and delay sampling deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New builds an engine for a resolved plan. The engine takes ownership
// of the plan and targets and records every outcome into collector.
func New(p plan.ExecutionPlan, targets plan.ResolvedTargets, collector *metrics.Collector, opts ...Option) *Engine {
	e := &Engine{
		plan:      p,
		targets:   targets,
		client:    &http.Client{Timeout: 30 * time.Second},
		collector: collector,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run dispatches plan.Requests requests and blocks until every worker
// has finished or the context is cancelled. Request outcomes, including
// transport errors, land in the collector; Run itself only fails on
// cancellation.
func (e *Engine) Run(ctx context.Context) error {
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < e.plan.Concurrency; i++ {
		wg.Add(1)
		go e.worker(ctx, jobs, &wg)
	}

	sampler := NewSampler(e.plan.DelayMs, e.plan.DelayDist, e.rng)

	// Single producer: ordering and delay shaping stay in one place so
	// sequential order is exact and the rng needs no locking.
	var err error
dispatch:
	for i := 0; i < e.plan.Requests; i++ {
		if i > 0 {
			if d := sampler.Next(); d > 0 {
				select {
				case <-time.After(d):
				case <-ctx.Done():
					err = ctx.Err()
					break dispatch
				}
			}
		}

		select {
		case jobs <- e.jobFor(i):
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		}
	}
	close(jobs)

	wg.Wait()
	return err
}

// jobFor picks the URL and payload for the i-th dispatch. Sequential
// order cycles the URL set; payloads always cycle, pairing line i with
// request i.
func (e *Engine) jobFor(i int) job {
	var j job
	if e.plan.Order == plan.OrderSequential {
		j.url = e.targets.URLs[i%len(e.targets.URLs)]
	} else {
		j.url = e.targets.URLs[e.rng.Intn(len(e.targets.URLs))]
	}
	if e.plan.Method.NeedsPayload() {
		j.payload = e.targets.Payloads[i%len(e.targets.Payloads)]
	}
	return j
}

func (e *Engine) worker(ctx context.Context, jobs <-chan job, wg *sync.WaitGroup) {
	defer wg.Done()
	for j := range jobs {
		e.collector.Add(e.dispatch(ctx, j))
	}
}

// dispatch issues one request and measures its latency. The body is
// drained so the client can reuse the connection.
func (e *Engine) dispatch(ctx context.Context, j job) metrics.Record {
	var body io.Reader
	if e.plan.Method.NeedsPayload() {
		body = strings.NewReader(j.payload)
	}

	req, err := http.NewRequestWithContext(ctx, e.plan.Method.String(), j.url, body)
	if err != nil {
		return metrics.Record{URL: j.url, Err: err}
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return metrics.Record{URL: j.url, Latency: latency, Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return metrics.Record{URL: j.url, Status: resp.StatusCode, Latency: latency}
}
