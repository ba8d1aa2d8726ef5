package risk

import "math"

// 容差相等判定的精度，吸收浮点噪声。
const (
	tolAbs = 1e-6
	tolRel = 1e-6
)

func tolerantEquals(a, b float64) bool {
	return math.Abs(a-b) <= tolAbs+tolRel*math.Abs(b)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd 计算样本标准差（ddof=1），样本数不足2时返回0。
func sampleStd(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(n - 1)
	return math.Sqrt(variance)
}

// periodReturn 计算窗口内的复合收益率 ∏(1+r) − 1。
func periodReturn(returns []float64) float64 {
	product := 1.0
	for _, r := range returns {
		product *= 1 + r
	}
	return product - 1
}

// volatility 将样本标准差按年化因子放大。
func volatility(returns []float64, periodsPerYear float64) float64 {
	return sampleStd(returns) * math.Sqrt(periodsPerYear)
}
