package rolling

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// 滚动窗口诊断指标，仅用于日志与报表观察，不进入核心快照。

// Volatility 计算滚动年化波动率。窗口未填满的位置为 NaN，
// 样本不足一个完整窗口时返回 nil。
func Volatility(returns []float64, window int, periodsPerYear float64) []float64 {
	if window < 2 || len(returns) < window {
		return nil
	}

	std := talib.StdDev(returns, window, 1.0)
	factor := math.Sqrt(periodsPerYear)
	out := make([]float64, len(std))
	for i := range std {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = std[i] * factor
	}
	return out
}

// MeanReturn 计算滚动均值收益。窗口未填满的位置为 NaN，
// 样本不足一个完整窗口时返回 nil。
func MeanReturn(returns []float64, window int) []float64 {
	if window < 2 || len(returns) < window {
		return nil
	}

	sma := talib.Sma(returns, window)
	out := make([]float64, len(sma))
	for i := range sma {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sma[i]
	}
	return out
}

// Last 返回序列最后一个值，若为空则返回 NaN。
func Last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
