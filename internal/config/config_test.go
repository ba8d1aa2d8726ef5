package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		App: AppConfig{Environment: "test"},
		Simulation: SimulationConfig{
			PeriodStart:  time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			PeriodEnd:    time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC),
			EmissionRate: FrequencyDaily,
		},
		Treasury: TreasuryConfig{Source: "flat", FlatRate: 0.045},
		Data:     DataConfig{ReturnsPath: "data/returns.csv"},
		Rolling:  RollingConfig{Window: 20},
		Logging: LoggingConfig{
			Level:            "info",
			Encoding:         "console",
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		},
	}
}

func TestValidate_AcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_RejectsUnknownFrequency(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.EmissionRate = "hourly"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown emission rate")
	}

	cfg = validConfig()
	cfg.Simulation.ReturnsFrequency = "weekly"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown returns frequency")
	}
}

func TestValidate_MinuteRequiresSessionBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Simulation.EmissionRate = FrequencyMinute
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when first_open/last_close missing")
	}
}

func TestValidate_RejectsBadTreasurySource(t *testing.T) {
	cfg := validConfig()
	cfg.Treasury.Source = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown treasury source")
	}
}
