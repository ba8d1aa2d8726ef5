package replay

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"backtest-risk/internal/risk"
	"backtest-risk/internal/rolling"
)

// Result 汇总一次回放的风险统计结果。
type Result struct {
	Snapshot          map[string]interface{}
	Summary           string
	Updates           int
	RollingVolatility []float64
	RollingMeanReturn []float64
}

// Runner 驱动收益观测流经过累计风险统计器。
// 统计器要求单一调用方顺序推进模拟时间，Runner 即是该调用方。
type Runner struct {
	provider      ObservationProvider
	metrics       *risk.Cumulative
	rollingWindow int
	logger        *zap.Logger
}

// NewRunner 构建回放器。
func NewRunner(provider ObservationProvider, metrics *risk.Cumulative, rollingWindow int, logger *zap.Logger) (*Runner, error) {
	if provider == nil {
		return nil, fmt.Errorf("replay: provider 不能为空")
	}
	if metrics == nil {
		return nil, fmt.Errorf("replay: metrics 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		provider:      provider,
		metrics:       metrics,
		rollingWindow: rollingWindow,
		logger:        logger,
	}, nil
}

// Run 消费全部观测并返回最终统计结果。
// 统计器返回的配置或数据一致性错误是致命的，立即中止回放。
func (r *Runner) Run(ctx context.Context) (Result, error) {
	updates := 0
	for {
		obs, ok, err := r.provider.Next(ctx)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}

		if err := r.metrics.Update(ctx, obs.Timestamp, obs.Algorithm, obs.Benchmark); err != nil {
			return Result{}, fmt.Errorf("replay: 更新风险统计失败: %w", err)
		}
		updates++
	}

	result := Result{
		Snapshot: r.metrics.Snapshot(),
		Summary:  r.metrics.Summary(),
		Updates:  updates,
	}

	if r.rollingWindow >= 2 {
		returns := r.metrics.AlgorithmReturns()
		result.RollingVolatility = rolling.Volatility(returns, r.rollingWindow, r.metrics.PeriodsPerYear())
		result.RollingMeanReturn = rolling.MeanReturn(returns, r.rollingWindow)
	}

	r.logger.Info("回放完成",
		zap.Int("updates", updates),
		zap.Int("trading_days", r.metrics.TradingDayCount()),
		zap.Float64("max_drawdown", r.metrics.MaxDrawdown()),
		zap.Float64("rolling_volatility", rolling.Last(result.RollingVolatility)),
	)

	return result, nil
}
