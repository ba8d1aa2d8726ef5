package replay

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"backtest-risk/internal/calendar"
	"backtest-risk/internal/config"
	"backtest-risk/internal/risk"
	"backtest-risk/internal/treasury"
)

func TestLoadObservationsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "returns.csv")
	content := "timestamp,algorithm_return,benchmark_return\n" +
		"2024-01-02T00:00:00Z,0.01,0.005\n" +
		"2024-01-03T00:00:00Z,-0.02,-0.01\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	observations, err := LoadObservationsCSV(path)
	if err != nil {
		t.Fatalf("LoadObservationsCSV returned error: %v", err)
	}

	if len(observations) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(observations))
	}
	if observations[0].Algorithm != 0.01 || observations[1].Benchmark != -0.01 {
		t.Errorf("unexpected observation values: %+v", observations)
	}
}

func TestLoadObservationsCSV_RejectsUnsortedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "returns.csv")
	content := "timestamp,algorithm_return,benchmark_return\n" +
		"2024-01-03T00:00:00Z,0.01,0.005\n" +
		"2024-01-02T00:00:00Z,-0.02,-0.01\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	if _, err := LoadObservationsCSV(path); err == nil {
		t.Fatalf("expected error for unsorted rows")
	}
}

func TestRunner_RunProducesSnapshot(t *testing.T) {
	p := calendar.Params{
		PeriodStart:  time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
		EmissionRate: config.FrequencyDaily,
	}
	cal, err := calendar.NewWeekday(nil)
	if err != nil {
		t.Fatalf("NewWeekday returned error: %v", err)
	}
	metrics, err := risk.NewCumulative(p, cal, treasury.Flat{Rate: 0}, "")
	if err != nil {
		t.Fatalf("NewCumulative returned error: %v", err)
	}

	observations := []Observation{
		{Timestamp: p.PeriodStart, Algorithm: 0.01, Benchmark: 0.005},
		{Timestamp: p.PeriodStart.AddDate(0, 0, 1), Algorithm: -0.02, Benchmark: -0.01},
		{Timestamp: p.PeriodStart.AddDate(0, 0, 2), Algorithm: 0.03, Benchmark: 0.02},
	}

	runner, err := NewRunner(NewSliceProvider(observations), metrics, 2, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if result.Updates != 3 {
		t.Errorf("expected 3 updates, got %d", result.Updates)
	}
	if got := result.Snapshot["trading_days"]; got != 3 {
		t.Errorf("expected trading_days=3, got %v", got)
	}
	if len(result.RollingVolatility) != 3 {
		t.Errorf("expected rolling volatility over 3 samples, got %d", len(result.RollingVolatility))
	}
	if result.Summary == "" {
		t.Errorf("expected non-empty summary")
	}
}

func TestRunner_FatalUpdateAborts(t *testing.T) {
	p := calendar.Params{
		PeriodStart:  time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
		EmissionRate: config.FrequencyDaily,
	}
	cal, _ := calendar.NewWeekday(nil)
	metrics, err := risk.NewCumulative(p, cal, treasury.Flat{Rate: 0}, "")
	if err != nil {
		t.Fatalf("NewCumulative returned error: %v", err)
	}

	// 2024-01-06 是周六，不在网格上，更新必须中止回放。
	observations := []Observation{
		{Timestamp: time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC), Algorithm: 0.01, Benchmark: 0.01},
	}

	runner, err := NewRunner(NewSliceProvider(observations), metrics, 0, nil)
	if err != nil {
		t.Fatalf("NewRunner returned error: %v", err)
	}

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatalf("expected fatal error from off-grid observation")
	}
}
