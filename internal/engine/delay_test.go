package engine

import (
	"math/rand"
	"testing"
	"time"

	"httpbench/internal/plan"
)

func TestSamplerConstant(t *testing.T) {
	s := NewSampler(25, plan.DelayConstant, rand.New(rand.NewSource(1)))
	for i := 0; i < 10; i++ {
		if got := s.Next(); got != 25*time.Millisecond {
			t.Fatalf("Next() = %s, want 25ms", got)
		}
	}
}

func TestSamplerZeroDelay(t *testing.T) {
	// A distribution without a delay has no observable effect.
	for _, dist := range []plan.DelayDist{plan.DelayConstant, plan.DelayUniform, plan.DelayNegExp} {
		s := NewSampler(0, dist, rand.New(rand.NewSource(1)))
		for i := 0; i < 10; i++ {
			if got := s.Next(); got != 0 {
				t.Fatalf("Next() with zero base and %s = %s, want 0", dist, got)
			}
		}
	}
}

func TestSamplerUniformBounds(t *testing.T) {
	s := NewSampler(40, plan.DelayUniform, rand.New(rand.NewSource(42)))
	varied := false
	var prev time.Duration = -1
	for i := 0; i < 1000; i++ {
		d := s.Next()
		if d < 0 || d >= 80*time.Millisecond {
			t.Fatalf("Next() = %s, want in [0, 80ms)", d)
		}
		if prev >= 0 && d != prev {
			varied = true
		}
		prev = d
	}
	if !varied {
		t.Error("uniform sampler never varied")
	}
}

func TestSamplerNegExpNonNegative(t *testing.T) {
	s := NewSampler(40, plan.DelayNegExp, rand.New(rand.NewSource(42)))
	var total time.Duration
	for i := 0; i < 1000; i++ {
		d := s.Next()
		if d < 0 {
			t.Fatalf("Next() = %s, want non-negative", d)
		}
		total += d
	}
	// Mean should land in the right neighborhood of the base delay.
	mean := total / 1000
	if mean < 20*time.Millisecond || mean > 80*time.Millisecond {
		t.Errorf("mean = %s, want around 40ms", mean)
	}
}
