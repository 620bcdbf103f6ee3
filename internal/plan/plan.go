// Package plan builds the validated execution plan for a load-test run.
//
// It turns the raw command-line values (and an optional plan file) into a
// single immutable specification: the scalar knobs governing the run plus
// the resolved URL and payload sequences. Everything is validated here,
// once, before the dispatch engine starts; the engine never re-checks the
// plan it is handed.
package plan

import (
	"fmt"
	"strings"
)

// ExecutionPlan is the fully validated set of parameters governing a run.
// It is constructed once by Resolve and never mutated afterwards.
type ExecutionPlan struct {
	// Concurrency is the number of parallel workers issuing requests.
	Concurrency int

	// Requests is the total number of requests to issue.
	Requests int

	// Order is the iteration strategy over the URL set.
	Order Order

	// DelayMs is the base inter-dispatch delay in milliseconds.
	DelayMs int

	// DelayDist shapes DelayMs into a per-request delay. It has no
	// observable effect when DelayMs is zero.
	DelayDist DelayDist

	// SlowPercentile, when non-zero, asks the reporter to flag requests
	// whose latency exceeds this percentile. Range (0, 1].
	SlowPercentile float64

	// Method is the HTTP method used for every request.
	Method Method
}

// ResolvedTargets holds the final URL and payload sequences handed to the
// dispatch engine. Both preserve source order; URLs may contain duplicates.
type ResolvedTargets struct {
	URLs     []string
	Payloads []string
}

// Order is the iteration strategy over the URL set.
type Order int

const (
	// OrderRandom picks a URL at random for each request.
	OrderRandom Order = iota
	// OrderSequential cycles through the URL set in order.
	OrderSequential
)

func (o Order) String() string {
	if o == OrderSequential {
		return "sequential"
	}
	return "random"
}

// ParseOrder maps the -o flag value to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "s":
		return OrderSequential, nil
	case "r":
		return OrderRandom, nil
	default:
		return OrderRandom, &UsageError{Message: fmt.Sprintf("invalid order %q: must be r or s", s)}
	}
}

// DelayDist is the shape applied to the base delay to produce each
// per-request delay.
type DelayDist int

const (
	// DelayConstant uses the base delay unchanged.
	DelayConstant DelayDist = iota
	// DelayUniform draws uniformly from [0, 2*delay), mean delay.
	DelayUniform
	// DelayNegExp draws from a negative-exponential distribution with
	// mean delay.
	DelayNegExp
)

func (d DelayDist) String() string {
	switch d {
	case DelayUniform:
		return "uniform"
	case DelayNegExp:
		return "negative-exponential"
	default:
		return "constant"
	}
}

// ParseDelayDist maps the -d flag value to a DelayDist.
func ParseDelayDist(s string) (DelayDist, error) {
	switch s {
	case "c":
		return DelayConstant, nil
	case "u":
		return DelayUniform, nil
	case "ne":
		return DelayNegExp, nil
	default:
		return DelayConstant, &UsageError{Message: fmt.Sprintf("invalid delay distribution %q: must be c, u or ne", s)}
	}
}

// Method is the HTTP method used for the test.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
)

func (m Method) String() string {
	switch m {
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	default:
		return "GET"
	}
}

// NeedsPayload reports whether the method sends a request body and
// therefore requires a non-empty payload list.
func (m Method) NeedsPayload() bool {
	return m == MethodPost || m == MethodPut
}

// ParseMethod maps the -m flag value to a Method. Matching is
// case-insensitive; anything other than GET, POST or PUT is rejected.
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(s) {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	case "PUT":
		return MethodPut, nil
	default:
		return MethodGet, &UsageError{Message: fmt.Sprintf("unsupported HTTP method %q: must be GET, POST or PUT", s)}
	}
}
