package poll

import (
	"testing"
	"time"

	"github.com/jzx17/gopoller/pkg/types"
)

// att builds the attempt record policies are evaluated against
func att(n int) types.Attempt {
	return types.Attempt{Number: n}
}

func TestFixedWait(t *testing.T) {
	delay := 100 * time.Millisecond
	w := NewFixedWait(delay)

	for _, n := range []int{1, 2, 3, 10} {
		if got := w.NextDelay(att(n)); got != delay {
			t.Errorf("NextDelay(%d) = %v, want %v", n, got, delay)
		}
	}
}

func TestRandomWait_Bounds(t *testing.T) {
	min := 10 * time.Millisecond
	max := 50 * time.Millisecond
	w := NewRandomWait(min, max)

	for i := 0; i < 200; i++ {
		got := w.NextDelay(att(i + 1))
		if got < min || got >= max {
			t.Fatalf("NextDelay out of bounds: %v not in [%v, %v)", got, min, max)
		}
	}
}

func TestRandomWait_DegenerateBounds(t *testing.T) {
	w := NewRandomWait(20*time.Millisecond, 20*time.Millisecond)
	if got := w.NextDelay(att(1)); got != 20*time.Millisecond {
		t.Errorf("equal bounds should return the bound, got %v", got)
	}

	// inverted bounds collapse to the lower bound
	w = NewRandomWait(30*time.Millisecond, 10*time.Millisecond)
	if got := w.NextDelay(att(1)); got != 30*time.Millisecond {
		t.Errorf("inverted bounds should collapse to min, got %v", got)
	}

	w = NewRandomWait(-time.Second, -time.Second)
	if got := w.NextDelay(att(1)); got != 0 {
		t.Errorf("negative bounds should collapse to zero, got %v", got)
	}
}

func TestExponentialWait(t *testing.T) {
	w := NewExponentialWait(100*time.Millisecond,
		WithMultiplier(2.0),
		WithMaxDelay(1*time.Second))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond},  // capped
		{10, 1000 * time.Millisecond}, // capped
	}

	for _, tt := range tests {
		if got := w.NextDelay(att(tt.attempt)); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponentialWait_Defaults(t *testing.T) {
	w := NewExponentialWait(50 * time.Millisecond)

	// default multiplier is 2
	if got := w.NextDelay(att(2)); got != 100*time.Millisecond {
		t.Errorf("NextDelay(2) = %v, want 100ms", got)
	}

	// default cap is 30s
	if got := w.NextDelay(att(60)); got != 30*time.Second {
		t.Errorf("NextDelay(60) = %v, want 30s cap", got)
	}
}

func TestExponentialWait_NonPositiveAttempt(t *testing.T) {
	w := NewExponentialWait(100 * time.Millisecond)
	if got := w.NextDelay(att(0)); got != 100*time.Millisecond {
		t.Errorf("NextDelay(0) = %v, want base delay", got)
	}
}

func TestFibonacciWait(t *testing.T) {
	base := 10 * time.Millisecond
	w := NewFibonacciWait(base, WithMaxDelay(time.Second))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 10 * time.Millisecond},
		{2, 10 * time.Millisecond},
		{3, 20 * time.Millisecond},
		{4, 30 * time.Millisecond},
		{5, 50 * time.Millisecond},
		{6, 80 * time.Millisecond},
		{7, 130 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := w.NextDelay(att(tt.attempt)); got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}

	// far enough out, the cap kicks in
	if got := w.NextDelay(att(40)); got != time.Second {
		t.Errorf("NextDelay(40) = %v, want 1s cap", got)
	}
}

func TestFibonacciWait_Reset(t *testing.T) {
	w := NewFibonacciWait(time.Millisecond)

	before := w.NextDelay(att(10))
	w.Reset()
	after := w.NextDelay(att(10))

	if before != after {
		t.Errorf("Reset changed the sequence: %v vs %v", before, after)
	}
}

func TestWaitFunc(t *testing.T) {
	w := WaitFunc(func(a types.Attempt) time.Duration {
		return time.Duration(a.Number) * time.Millisecond
	})
	w.Reset() // no-op

	if got := w.NextDelay(att(7)); got != 7*time.Millisecond {
		t.Errorf("NextDelay(7) = %v, want 7ms", got)
	}
}

func TestFullJitter(t *testing.T) {
	delay := 100 * time.Millisecond
	for i := 0; i < 200; i++ {
		got := FullJitter(delay)
		if got < 0 || got >= delay {
			t.Fatalf("FullJitter out of range: %v", got)
		}
	}

	if got := FullJitter(0); got != 0 {
		t.Errorf("FullJitter(0) = %v, want 0", got)
	}
}

func TestEqualJitter(t *testing.T) {
	delay := 100 * time.Millisecond
	for i := 0; i < 200; i++ {
		got := EqualJitter(delay)
		if got < delay/2 || got >= delay {
			t.Fatalf("EqualJitter out of range: %v", got)
		}
	}

	if got := EqualJitter(-time.Second); got != 0 {
		t.Errorf("EqualJitter(-1s) = %v, want 0", got)
	}

	// sub-2ns delays have no room to jitter and must come back unchanged
	if got := EqualJitter(time.Nanosecond); got != time.Nanosecond {
		t.Errorf("EqualJitter(1ns) = %v, want 1ns", got)
	}
}

func TestWaitJitterOption(t *testing.T) {
	// a deterministic "jitter" proves the option is applied
	double := func(d time.Duration) time.Duration { return 2 * d }

	fixed := NewFixedWait(10*time.Millisecond, WithJitter(double))
	if got := fixed.NextDelay(att(1)); got != 20*time.Millisecond {
		t.Errorf("fixed with jitter = %v, want 20ms", got)
	}

	exp := NewExponentialWait(10*time.Millisecond, WithJitter(double))
	if got := exp.NextDelay(att(1)); got != 20*time.Millisecond {
		t.Errorf("exponential with jitter = %v, want 20ms", got)
	}

	fib := NewFibonacciWait(10*time.Millisecond, WithJitter(double))
	if got := fib.NextDelay(att(1)); got != 20*time.Millisecond {
		t.Errorf("fibonacci with jitter = %v, want 20ms", got)
	}
}
