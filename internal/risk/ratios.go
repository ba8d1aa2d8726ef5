package risk

import "math"

// 经典风险比率的纯函数实现。退化输入不报错：
// 无意义的比率返回 NaN 哨兵或文档化的占位值。

// SharpeRatio 计算夏普比率。波动率在容差内为零时返回 NaN，
// 此时除法没有意义，不视为错误。
func SharpeRatio(algorithmVolatility, annualizedReturn, treasuryReturn float64) float64 {
	if tolerantEquals(algorithmVolatility, 0) {
		return math.NaN()
	}
	// 年化因子的平方根已包含在波动率分母中，分子使用年化均值即可约去。
	return (annualizedReturn - treasuryReturn) / algorithmVolatility
}

// SortinoRatio 计算索提诺比率，mar 为最低可接受收益率。
// 下行风险在容差内为零时返回0。
func SortinoRatio(returns []float64, algorithmPeriodReturn, mar float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	downside := 0.0
	for _, r := range returns {
		if r < mar {
			diff := r - mar
			downside += diff * diff
		}
	}
	dr := math.Sqrt(downside / float64(len(returns)))
	if tolerantEquals(dr, 0) {
		return 0
	}

	return (algorithmPeriodReturn - mar) / dr
}

// InformationRatio 计算信息比率：超额收益均值除以跟踪误差。
// 跟踪误差在容差内为零或无法计算时返回0。
func InformationRatio(algorithmReturns, benchmarkReturns []float64) float64 {
	n := len(algorithmReturns)
	if n == 0 || n != len(benchmarkReturns) {
		return 0
	}

	relative := make([]float64, n)
	for i := range algorithmReturns {
		relative[i] = algorithmReturns[i] - benchmarkReturns[i]
	}

	deviation := sampleStd(relative)
	if math.IsNaN(deviation) || tolerantEquals(deviation, 0) {
		return 0
	}

	return mean(relative) / deviation
}

// Alpha 计算 CAPM 框架下未被基准暴露解释的超额收益。
func Alpha(algorithmPeriodReturn, treasuryPeriodReturn, benchmarkPeriodReturn, beta float64) float64 {
	return algorithmPeriodReturn -
		(treasuryPeriodReturn + beta*(benchmarkPeriodReturn-treasuryPeriodReturn))
}

// Beta 计算策略对基准的贝塔：样本协方差除以基准样本方差（ddof=1）。
// 样本不足两对时协方差没有定义，返回0.0作为占位值；
// 基准方差在容差内为零时返回 NaN。
func Beta(algorithmReturns, benchmarkReturns []float64) float64 {
	n := len(algorithmReturns)
	if n < 2 || n != len(benchmarkReturns) {
		return 0
	}

	algoMean := mean(algorithmReturns)
	benchMean := mean(benchmarkReturns)

	covariance := 0.0
	benchVariance := 0.0
	for i := 0; i < n; i++ {
		algoDiff := algorithmReturns[i] - algoMean
		benchDiff := benchmarkReturns[i] - benchMean
		covariance += algoDiff * benchDiff
		benchVariance += benchDiff * benchDiff
	}
	covariance /= float64(n - 1)
	benchVariance /= float64(n - 1)

	if tolerantEquals(benchVariance, 0) {
		return math.NaN()
	}

	return covariance / benchVariance
}
