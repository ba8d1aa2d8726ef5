package risk

import (
	"math"
	"testing"
)

func TestDrawdownTracker_MonotonicNonDecreasing(t *testing.T) {
	tracker := NewDrawdownTracker()

	history := []float64{0.01, -0.03, 0.02, -0.05, 0.04}
	prev := 0.0
	cumulative := 0.0
	for i, logReturn := range history {
		cumulative += logReturn
		dd := tracker.Advance(cumulative)
		if dd < prev {
			t.Fatalf("max drawdown decreased at step %d: %f -> %f", i, prev, dd)
		}
		prev = dd
	}

	if prev <= 0 {
		t.Errorf("expected positive drawdown after losses, got %f", prev)
	}
}

func TestDrawdownTracker_CandidateBounds(t *testing.T) {
	tracker := NewDrawdownTracker()

	dd := tracker.Advance(0.05)
	if dd != 0 {
		t.Errorf("first peak should leave drawdown at 0, got %f", dd)
	}

	dd = tracker.Advance(-0.10)
	want := 1 - math.Exp(-0.15)
	if math.Abs(dd-want) > 1e-12 {
		t.Errorf("unexpected drawdown: got %f want %f", dd, want)
	}
	if dd < 0 || dd >= 1 {
		t.Errorf("drawdown outside [0,1): %f", dd)
	}
}
