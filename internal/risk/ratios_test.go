package risk

import (
	"math"
	"testing"
)

func TestSharpeRatio_ZeroVolatilityReturnsNaN(t *testing.T) {
	if got := SharpeRatio(0, 0.10, 0.02); !math.IsNaN(got) {
		t.Errorf("expected NaN for zero volatility, got %f", got)
	}
	if got := SharpeRatio(1e-9, 0.10, 0.02); !math.IsNaN(got) {
		t.Errorf("expected NaN for near-zero volatility, got %f", got)
	}
}

func TestSharpeRatio_Basic(t *testing.T) {
	got := SharpeRatio(0.20, 0.12, 0.02)
	want := 0.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("unexpected sharpe: got %f want %f", got, want)
	}
}

func TestBeta_FewerThanTwoPairsReturnsZero(t *testing.T) {
	if got := Beta(nil, nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	if got := Beta([]float64{0.42}, []float64{-0.37}); got != 0 {
		t.Errorf("expected exactly 0 for a single pair, got %f", got)
	}
}

func TestBeta_IdenticalSeriesIsOne(t *testing.T) {
	series := []float64{0.01, -0.02, 0.03, 0.005}
	got := Beta(series, series)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected beta ~1 for identical series, got %f", got)
	}
}

func TestBeta_ZeroBenchmarkVarianceReturnsNaN(t *testing.T) {
	got := Beta([]float64{0.01, 0.02, 0.03}, []float64{0.01, 0.01, 0.01})
	if !math.IsNaN(got) {
		t.Errorf("expected NaN for flat benchmark, got %f", got)
	}
}

func TestAlpha_IdenticalSeriesResidualIsZero(t *testing.T) {
	series := []float64{0.01, -0.02, 0.03}
	beta := Beta(series, series)
	period := periodReturn(series)
	got := Alpha(period, 0, period, beta)
	if math.Abs(got) > 1e-9 {
		t.Errorf("expected alpha ~0 for identical series, got %f", got)
	}
}

func TestInformationRatio_DegenerateReturnsZero(t *testing.T) {
	// 完全相同的序列跟踪误差为零。
	series := []float64{0.01, -0.02, 0.03}
	if got := InformationRatio(series, series); got != 0 {
		t.Errorf("expected 0 for zero tracking error, got %f", got)
	}
	// 单个样本的样本标准差没有定义。
	if got := InformationRatio([]float64{0.01}, []float64{0.005}); got != 0 {
		t.Errorf("expected 0 for single observation, got %f", got)
	}
}

func TestInformationRatio_Basic(t *testing.T) {
	algo := []float64{0.02, 0.01, 0.03}
	bench := []float64{0.01, 0.00, 0.01}
	relative := []float64{0.01, 0.01, 0.02}

	want := mean(relative) / sampleStd(relative)
	got := InformationRatio(algo, bench)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("unexpected information ratio: got %f want %f", got, want)
	}
}

func TestSortinoRatio_NoDownsideReturnsZero(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.03}
	if got := SortinoRatio(returns, periodReturn(returns), 0); got != 0 {
		t.Errorf("expected 0 when no return falls below mar, got %f", got)
	}
	if got := SortinoRatio(nil, 0, 0); got != 0 {
		t.Errorf("expected 0 for empty window, got %f", got)
	}
}

func TestSortinoRatio_Basic(t *testing.T) {
	returns := []float64{0.01, -0.02, 0.03}
	period := periodReturn(returns)
	mar := 0.0

	downside := 0.02 * 0.02
	dr := math.Sqrt(downside / 3)
	want := (period - mar) / dr

	got := SortinoRatio(returns, period, mar)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("unexpected sortino: got %f want %f", got, want)
	}
}

func TestPeriodReturn_OrderIndependent(t *testing.T) {
	forward := []float64{0.01, -0.02, 0.03}
	backward := []float64{0.03, -0.02, 0.01}

	if got, want := periodReturn(forward), periodReturn(backward); math.Abs(got-want) > 1e-12 {
		t.Errorf("period return should be order independent: %f vs %f", got, want)
	}

	want := 1.01*0.98*1.03 - 1
	if got := periodReturn(forward); math.Abs(got-want) > 1e-12 {
		t.Errorf("unexpected period return: got %f want %f", got, want)
	}
}

func TestSampleStd_FewerThanTwoIsZero(t *testing.T) {
	if got := sampleStd(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	if got := sampleStd([]float64{0.5}); got != 0 {
		t.Errorf("expected 0 for single value, got %f", got)
	}
}
