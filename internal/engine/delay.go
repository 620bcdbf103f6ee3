package engine

import (
	"math/rand"
	"time"

	"httpbench/internal/plan"
)

// Sampler draws per-dispatch delays shaped by the plan's distribution.
// With a zero base delay every draw is zero, whatever the distribution,
// which matches the declarative-only dependency between the two flags.
type Sampler struct {
	base time.Duration
	dist plan.DelayDist
	rng  *rand.Rand
}

// NewSampler builds a sampler for the given base delay in milliseconds.
func NewSampler(delayMs int, dist plan.DelayDist, rng *rand.Rand) *Sampler {
	return &Sampler{
		base: time.Duration(delayMs) * time.Millisecond,
		dist: dist,
		rng:  rng,
	}
}

// Next draws the delay to apply before the next dispatch.
//
//   - constant: always the base delay
//   - uniform: uniform over [0, 2*base), mean base
//   - negative-exponential: Exp(1/base), mean base
func (s *Sampler) Next() time.Duration {
	if s.base <= 0 {
		return 0
	}
	switch s.dist {
	case plan.DelayUniform:
		return time.Duration(s.rng.Float64() * 2 * float64(s.base))
	case plan.DelayNegExp:
		return time.Duration(s.rng.ExpFloat64() * float64(s.base))
	default:
		return s.base
	}
}
