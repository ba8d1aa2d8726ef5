package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// 支持的收益率采样频率。
const (
	FrequencyDaily  = "daily"
	FrequencyMinute = "minute"
)

// Config 聚合了风险统计系统运行所需的全部配置项。
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Treasury   TreasuryConfig   `mapstructure:"treasury"`
	Data       DataConfig       `mapstructure:"data"`
	Rolling    RollingConfig    `mapstructure:"rolling"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// SimulationConfig 描述回测区间与收益发射频率。
type SimulationConfig struct {
	PeriodStart      time.Time `mapstructure:"period_start"`
	PeriodEnd        time.Time `mapstructure:"period_end"`
	FirstOpen        time.Time `mapstructure:"first_open"`
	LastClose        time.Time `mapstructure:"last_close"`
	EmissionRate     string    `mapstructure:"emission_rate"`
	ReturnsFrequency string    `mapstructure:"returns_frequency"`
	Holidays         []string  `mapstructure:"holidays"`
}

// TreasuryConfig 描述无风险利率数据来源。
type TreasuryConfig struct {
	Source    string  `mapstructure:"source"`
	CurvePath string  `mapstructure:"curve_path"`
	FlatRate  float64 `mapstructure:"flat_rate"`
}

// DataConfig 描述回测收益率数据来源。
type DataConfig struct {
	ReturnsPath string `mapstructure:"returns_path"`
}

// RollingConfig 控制滚动诊断指标的窗口。
type RollingConfig struct {
	Window int `mapstructure:"window"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

func validFrequency(freq string) bool {
	return freq == FrequencyDaily || freq == FrequencyMinute
}

// Validate 对配置进行基本校验。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	if c.Simulation.PeriodStart.IsZero() {
		err = multierr.Append(err, errors.New("simulation.period_start 不能为空"))
	}
	if c.Simulation.PeriodEnd.IsZero() {
		err = multierr.Append(err, errors.New("simulation.period_end 不能为空"))
	}
	if !c.Simulation.PeriodStart.IsZero() && !c.Simulation.PeriodEnd.IsZero() &&
		c.Simulation.PeriodEnd.Before(c.Simulation.PeriodStart) {
		err = multierr.Append(err, errors.New("simulation.period_end 不能早于 period_start"))
	}
	if !validFrequency(c.Simulation.EmissionRate) {
		err = multierr.Append(err, fmt.Errorf("simulation.emission_rate 不支持 %q", c.Simulation.EmissionRate))
	}
	if c.Simulation.ReturnsFrequency != "" && !validFrequency(c.Simulation.ReturnsFrequency) {
		err = multierr.Append(err, fmt.Errorf("simulation.returns_frequency 不支持 %q", c.Simulation.ReturnsFrequency))
	}
	if c.Simulation.EmissionRate == FrequencyMinute || c.Simulation.ReturnsFrequency == FrequencyMinute {
		if c.Simulation.FirstOpen.IsZero() || c.Simulation.LastClose.IsZero() {
			err = multierr.Append(err, errors.New("分钟级回测需要配置 simulation.first_open 与 last_close"))
		}
	}
	for _, day := range c.Simulation.Holidays {
		if _, parseErr := time.Parse("2006-01-02", day); parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("simulation.holidays 中的 %q 不是合法日期", day))
		}
	}

	switch c.Treasury.Source {
	case "curve":
		if c.Treasury.CurvePath == "" {
			err = multierr.Append(err, errors.New("treasury.curve_path 不能为空"))
		}
	case "flat":
		// flat_rate 允许为0，表示零利率环境。
	default:
		err = multierr.Append(err, fmt.Errorf("treasury.source 不支持 %q", c.Treasury.Source))
	}

	if c.Data.ReturnsPath == "" {
		err = multierr.Append(err, errors.New("data.returns_path 不能为空"))
	}
	if c.Rolling.Window < 2 {
		err = multierr.Append(err, errors.New("rolling.window 必须大于等于2"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}
