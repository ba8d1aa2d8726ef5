package rolling

import (
	"math"
	"testing"
)

func TestVolatility_WindowNotFilled(t *testing.T) {
	if got := Volatility([]float64{0.01}, 2, 252); got != nil {
		t.Errorf("expected nil for insufficient samples, got %v", got)
	}
	if got := Volatility([]float64{0.01, 0.02, 0.03}, 1, 252); got != nil {
		t.Errorf("expected nil for window < 2, got %v", got)
	}
}

func TestVolatility_LeadingNaN(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.03, 0.04}
	got := Volatility(returns, 3, 252)

	if len(got) != len(returns) {
		t.Fatalf("expected output length %d, got %d", len(returns), len(got))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("expected NaN before window fills at %d, got %f", i, got[i])
		}
	}
	for i := 2; i < len(got); i++ {
		if math.IsNaN(got[i]) || got[i] < 0 {
			t.Errorf("expected non-negative volatility at %d, got %f", i, got[i])
		}
	}
}

func TestMeanReturn_MatchesWindowAverage(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.03}
	got := MeanReturn(returns, 2)

	if len(got) != 3 {
		t.Fatalf("expected output length 3, got %d", len(got))
	}
	if math.Abs(got[2]-0.025) > 1e-12 {
		t.Errorf("expected window mean 0.025, got %f", got[2])
	}
}

func TestLast(t *testing.T) {
	if got := Last(nil); !math.IsNaN(got) {
		t.Errorf("expected NaN for empty series, got %f", got)
	}
	if got := Last([]float64{1, 2}); got != 2 {
		t.Errorf("expected last element 2, got %f", got)
	}
}
