package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"backtest-risk/internal/calendar"
	"backtest-risk/internal/config"
	"backtest-risk/internal/replay"
	"backtest-risk/internal/risk"
	"backtest-risk/internal/treasury"
)

// App 聚合核心依赖并驱动一次完整的风险统计回放。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run 装配日历、国债数据源与统计器，回放收益流并返回结果。
func (a *App) Run(ctx context.Context) (replay.Result, error) {
	a.logger.Info("风险统计系统已初始化",
		zap.String("environment", a.cfg.App.Environment),
		zap.String("emission_rate", a.cfg.Simulation.EmissionRate),
		zap.Time("period_start", a.cfg.Simulation.PeriodStart),
		zap.Time("period_end", a.cfg.Simulation.PeriodEnd),
	)

	params, err := calendar.NewParams(a.cfg.Simulation)
	if err != nil {
		return replay.Result{}, err
	}

	cal, err := calendar.NewWeekday(a.cfg.Simulation.Holidays)
	if err != nil {
		return replay.Result{}, err
	}

	// 收益流与国债曲线相互独立，可并行加载。
	var (
		source       treasury.Source
		observations []replay.Observation
	)
	var group errgroup.Group
	group.Go(func() error {
		loaded, loadErr := a.loadTreasury()
		if loadErr != nil {
			return loadErr
		}
		source = loaded
		return nil
	})
	group.Go(func() error {
		loaded, loadErr := replay.LoadObservationsCSV(a.cfg.Data.ReturnsPath)
		if loadErr != nil {
			return loadErr
		}
		observations = loaded
		return nil
	})
	if err := group.Wait(); err != nil {
		return replay.Result{}, err
	}

	metrics, err := risk.NewCumulative(params, cal, source, a.cfg.Simulation.ReturnsFrequency)
	if err != nil {
		return replay.Result{}, err
	}

	runner, err := replay.NewRunner(replay.NewSliceProvider(observations), metrics, a.cfg.Rolling.Window, a.logger)
	if err != nil {
		return replay.Result{}, err
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return replay.Result{}, err
	}

	a.logger.Info("风险统计回放结束", zap.Int("updates", result.Updates))

	return result, nil
}

func (a *App) loadTreasury() (treasury.Source, error) {
	switch a.cfg.Treasury.Source {
	case "curve":
		curve, err := treasury.LoadCurveCSV(a.cfg.Treasury.CurvePath)
		if err != nil {
			return nil, err
		}
		return curve, nil
	case "flat":
		return treasury.Flat{Rate: a.cfg.Treasury.FlatRate}, nil
	default:
		return nil, fmt.Errorf("app: treasury.source 不支持 %q", a.cfg.Treasury.Source)
	}
}
