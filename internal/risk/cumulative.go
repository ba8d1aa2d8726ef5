package risk

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"backtest-risk/internal/calendar"
	"backtest-risk/internal/config"
	"backtest-risk/internal/treasury"
)

// 年化因子：日频按每年252个交易日，分钟频再乘以每日390个交易分钟。
const (
	tradingDaysPerYear   = 252
	minutesPerTradingDay = 390
)

// Cumulative 维护回测期间的累计风险统计。
//
// 使用方式：构建一次，每个模拟周期调用一次 Update 推进状态，
// 任意时刻通过 Snapshot/Summary 读取最新指标。调用方必须保证
// 单线程顺序推进，本类型不做内部加锁。
type Cumulative struct {
	params         calendar.Params
	buffer         *ReturnBuffer
	treasury       *TreasuryCache
	drawdownState  *DrawdownTracker
	metrics        *MetricsTimeline
	periodsPerYear float64

	compoundedLogReturns   []float64
	algorithmVolatility    []float64
	benchmarkVolatility    []float64
	algorithmPeriodReturns []float64
	benchmarkPeriodReturns []float64
	treasuryPeriodReturns  []float64
	excessReturns          []float64
	sortino                []float64
	information            []float64
	maxDrawdown            float64

	latestDt time.Time
}

// NewCumulative 按回测参数构建累计风险统计器。
// returnsFrequency 非空时覆盖 sim params 的发射频率，用于选择时间网格粒度。
func NewCumulative(p calendar.Params, cal calendar.Calendar, source treasury.Source, returnsFrequency string) (*Cumulative, error) {
	frequency := returnsFrequency
	if frequency == "" {
		frequency = p.EmissionRate
	}

	var periodsPerYear float64
	switch frequency {
	case config.FrequencyDaily:
		periodsPerYear = tradingDaysPerYear
	case config.FrequencyMinute:
		periodsPerYear = tradingDaysPerYear * minutesPerTradingDay
	default:
		return nil, fmt.Errorf("risk: 不支持的收益频率 %q", frequency)
	}

	grid, err := calendar.Grid(p, cal, frequency)
	if err != nil {
		return nil, err
	}

	buffer, err := NewReturnBuffer(grid, periodsPerYear)
	if err != nil {
		return nil, err
	}

	return &Cumulative{
		params:         p,
		buffer:         buffer,
		treasury:       NewTreasuryCache(source, p.PeriodStart),
		drawdownState:  NewDrawdownTracker(),
		metrics:        NewMetricsTimeline(len(grid)),
		periodsPerYear: periodsPerYear,
		latestDt:       grid[0],
	}, nil
}

// Update 记录时间戳 dt 的一对收益并刷新全部累计指标。
// 时间戳不在网格内、乱序写入或两条序列的观测集合发散时返回致命错误，
// 此后统计器的状态不再可信，调用方应中止回测。
func (c *Cumulative) Update(ctx context.Context, dt time.Time, algorithmReturn, benchmarkReturn float64) error {
	if err := c.buffer.Record(dt, algorithmReturn, benchmarkReturn); err != nil {
		return err
	}

	c.appendCompoundedLogReturn()

	if !c.buffer.Aligned() {
		return fmt.Errorf("%w: benchmark=%d algorithm=%d 区间 %s : %s 时间 %s",
			ErrSeriesMismatch,
			len(c.buffer.BenchmarkObserved()),
			len(c.buffer.AlgorithmObserved()),
			c.params.PeriodStart.Format("2006-01-02"),
			c.params.PeriodEnd.Format("2006-01-02"),
			dt.UTC().Format(time.RFC3339))
	}

	algorithmObserved := c.buffer.AlgorithmObserved()
	benchmarkObserved := c.buffer.BenchmarkObserved()

	c.algorithmPeriodReturns = append(c.algorithmPeriodReturns, periodReturn(algorithmObserved))
	c.benchmarkPeriodReturns = append(c.benchmarkPeriodReturns, periodReturn(benchmarkObserved))

	if n := len(c.compoundedLogReturns); n > 0 {
		c.maxDrawdown = c.drawdownState.Advance(c.compoundedLogReturns[n-1])
	}

	c.benchmarkVolatility = append(c.benchmarkVolatility, volatility(benchmarkObserved, c.periodsPerYear))
	c.algorithmVolatility = append(c.algorithmVolatility, volatility(algorithmObserved, c.periodsPerYear))

	// 分钟级更新下曲线查找是主要开销，按自然日缓存后每个交易日只查一次。
	treasuryEnd := dt
	if last, ok := c.buffer.LastObservedTime(); ok {
		treasuryEnd = last
	}
	treasuryPeriodReturn, err := c.treasury.PeriodReturn(ctx, treasuryEnd)
	if err != nil {
		return err
	}
	c.treasuryPeriodReturns = append(c.treasuryPeriodReturns, treasuryPeriodReturn)
	c.excessReturns = append(c.excessReturns,
		c.algorithmPeriodReturns[len(c.algorithmPeriodReturns)-1]-treasuryPeriodReturn)

	beta := Beta(algorithmObserved, benchmarkObserved)
	alpha := Alpha(
		c.algorithmPeriodReturns[len(c.algorithmPeriodReturns)-1],
		treasuryPeriodReturn,
		c.benchmarkPeriodReturns[len(c.benchmarkPeriodReturns)-1],
		beta,
	)
	sharpe := SharpeRatio(
		c.algorithmVolatility[len(c.algorithmVolatility)-1],
		c.buffer.LatestAnnualizedMean(),
		treasuryPeriodReturn,
	)
	c.metrics.Append(dt, MetricsRow{Alpha: alpha, Beta: beta, Sharpe: sharpe})

	c.sortino = append(c.sortino, SortinoRatio(
		algorithmObserved,
		c.algorithmPeriodReturns[len(c.algorithmPeriodReturns)-1],
		treasuryPeriodReturn,
	))
	c.information = append(c.information, InformationRatio(algorithmObserved, benchmarkObserved))

	c.latestDt = dt

	return nil
}

// appendCompoundedLogReturn 追加最新的累计对数收益。
// log(1+r) 对 r ≤ −100% 没有定义，此时增量退化为0.0占位值。
func (c *Cumulative) appendCompoundedLogReturn() {
	if c.buffer.ObservedCount() == 0 {
		return
	}

	observed := c.buffer.AlgorithmObserved()
	latest := observed[len(observed)-1]

	compound := 0.0
	if 1+latest > 0 {
		compound = math.Log(1 + latest)
	}

	if len(c.compoundedLogReturns) == 0 {
		c.compoundedLogReturns = append(c.compoundedLogReturns, compound)
		return
	}
	c.compoundedLogReturns = append(c.compoundedLogReturns,
		c.compoundedLogReturns[len(c.compoundedLogReturns)-1]+compound)
}

// checkEntry 判定快照条目是否可上报：NaN/Inf 表示指标尚无意义。
func checkEntry(key string, value float64) bool {
	if key == "period_label" || key == "trading_days" {
		return false
	}
	return math.IsNaN(value) || math.IsInf(value, 0)
}

// Snapshot 输出最新指标的快照。不可上报的数值（NaN/Inf哨兵）
// 以 nil 显式表达缺失，下游不得把它当作0处理。
func (c *Cumulative) Snapshot() map[string]interface{} {
	_, row, _ := c.metrics.Latest()

	numeric := map[string]float64{
		"benchmark_volatility":    lastOr(c.benchmarkVolatility, math.NaN()),
		"algo_volatility":         lastOr(c.algorithmVolatility, math.NaN()),
		"treasury_period_return":  lastOr(c.treasuryPeriodReturns, math.NaN()),
		"algorithm_period_return": lastOr(c.algorithmPeriodReturns, math.NaN()),
		"benchmark_period_return": lastOr(c.benchmarkPeriodReturns, math.NaN()),
		"beta":                    timelineValue(c.metrics, row.Beta),
		"alpha":                   timelineValue(c.metrics, row.Alpha),
		"sharpe":                  timelineValue(c.metrics, row.Sharpe),
		"excess_return":           lastOr(c.excessReturns, math.NaN()),
		"max_drawdown":            c.maxDrawdown,
		"sortino":                 lastOr(c.sortino, math.NaN()),
		"information":             lastOr(c.information, math.NaN()),
	}

	snapshot := make(map[string]interface{}, len(numeric)+2)
	snapshot["trading_days"] = c.buffer.ObservedCount()
	snapshot["period_label"] = c.periodLabel()
	for key, value := range numeric {
		if checkEntry(key, value) {
			snapshot[key] = nil
			continue
		}
		snapshot[key] = value
	}

	return snapshot
}

// Summary 输出每个指标最新值的逐行文本，序列为空时显示 NaN。
func (c *Cumulative) Summary() string {
	_, row, hasRow := c.metrics.Latest()
	rowValue := func(v float64) float64 {
		if !hasRow {
			return math.NaN()
		}
		return v
	}

	entries := []struct {
		name  string
		value float64
	}{
		{"algorithm_period_returns", lastOr(c.algorithmPeriodReturns, math.NaN())},
		{"benchmark_period_returns", lastOr(c.benchmarkPeriodReturns, math.NaN())},
		{"excess_returns", lastOr(c.excessReturns, math.NaN())},
		{"trading_days", float64(c.buffer.ObservedCount())},
		{"benchmark_volatility", lastOr(c.benchmarkVolatility, math.NaN())},
		{"algorithm_volatility", lastOr(c.algorithmVolatility, math.NaN())},
		{"sharpe", rowValue(row.Sharpe)},
		{"sortino", lastOr(c.sortino, math.NaN())},
		{"information", lastOr(c.information, math.NaN())},
		{"beta", rowValue(row.Beta)},
		{"alpha", rowValue(row.Alpha)},
		{"max_drawdown", c.maxDrawdown},
		{"algorithm_returns", lastOr(c.buffer.AlgorithmObserved(), math.NaN())},
		{"benchmark_returns", lastOr(c.buffer.BenchmarkObserved(), math.NaN())},
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s:%v", entry.name, entry.value))
	}

	return strings.Join(lines, "\n")
}

func (c *Cumulative) periodLabel() string {
	label := c.latestDt
	if last, ok := c.buffer.LastObservedTime(); ok {
		label = last
	}
	return label.UTC().Format("2006-01")
}

func lastOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	return values[len(values)-1]
}

func timelineValue(timeline *MetricsTimeline, value float64) float64 {
	if timeline.Len() == 0 {
		return math.NaN()
	}
	return value
}

// LatestTimestamp 返回最近一次更新的时间戳。
func (c *Cumulative) LatestTimestamp() time.Time {
	return c.latestDt
}

// LastReturnDate 返回最近一个已观测收益的时间戳。
func (c *Cumulative) LastReturnDate() (time.Time, bool) {
	return c.buffer.LastObservedTime()
}

// TradingDayCount 返回已观测的周期数。
func (c *Cumulative) TradingDayCount() int {
	return c.buffer.ObservedCount()
}

// MaxDrawdown 返回迄今观测到的最大回撤。
func (c *Cumulative) MaxDrawdown() float64 {
	return c.maxDrawdown
}

// PeriodsPerYear 返回当前网格粒度对应的年化周期数。
func (c *Cumulative) PeriodsPerYear() float64 {
	return c.periodsPerYear
}

// Timeline 返回 alpha/beta/sharpe 时间线。
func (c *Cumulative) Timeline() *MetricsTimeline {
	return c.metrics
}

// AlgorithmReturns 返回策略收益已观测序列的副本。
func (c *Cumulative) AlgorithmReturns() []float64 {
	return append([]float64(nil), c.buffer.AlgorithmObserved()...)
}

// BenchmarkReturns 返回基准收益已观测序列的副本。
func (c *Cumulative) BenchmarkReturns() []float64 {
	return append([]float64(nil), c.buffer.BenchmarkObserved()...)
}

// CompoundedLogReturns 返回累计对数收益序列的副本。
func (c *Cumulative) CompoundedLogReturns() []float64 {
	return append([]float64(nil), c.compoundedLogReturns...)
}

// AlgorithmVolatilitySeries 返回策略年化波动率序列的副本。
func (c *Cumulative) AlgorithmVolatilitySeries() []float64 {
	return append([]float64(nil), c.algorithmVolatility...)
}

// BenchmarkVolatilitySeries 返回基准年化波动率序列的副本。
func (c *Cumulative) BenchmarkVolatilitySeries() []float64 {
	return append([]float64(nil), c.benchmarkVolatility...)
}

// AlgorithmPeriodReturnSeries 返回策略期间收益序列的副本。
func (c *Cumulative) AlgorithmPeriodReturnSeries() []float64 {
	return append([]float64(nil), c.algorithmPeriodReturns...)
}

// BenchmarkPeriodReturnSeries 返回基准期间收益序列的副本。
func (c *Cumulative) BenchmarkPeriodReturnSeries() []float64 {
	return append([]float64(nil), c.benchmarkPeriodReturns...)
}

// TreasuryPeriodReturnSeries 返回国债期间收益序列的副本。
func (c *Cumulative) TreasuryPeriodReturnSeries() []float64 {
	return append([]float64(nil), c.treasuryPeriodReturns...)
}

// ExcessReturnSeries 返回超额收益序列的副本。
func (c *Cumulative) ExcessReturnSeries() []float64 {
	return append([]float64(nil), c.excessReturns...)
}

// SortinoSeries 返回索提诺比率序列的副本。
func (c *Cumulative) SortinoSeries() []float64 {
	return append([]float64(nil), c.sortino...)
}

// InformationSeries 返回信息比率序列的副本。
func (c *Cumulative) InformationSeries() []float64 {
	return append([]float64(nil), c.information...)
}
