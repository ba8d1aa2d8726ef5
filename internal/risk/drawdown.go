package risk

import "math"

// DrawdownTracker 跟踪累计对数收益的历史峰值并维护最大回撤。
// 最大回撤定义为 1 − exp(latest − peak)，随更新单调不减。
type DrawdownTracker struct {
	currentPeak float64
	maxDrawdown float64
}

// NewDrawdownTracker 创建回撤跟踪器，初始峰值为 −Inf。
func NewDrawdownTracker() *DrawdownTracker {
	return &DrawdownTracker{
		currentPeak: math.Inf(-1),
		maxDrawdown: 0,
	}
}

// Advance 接收最新的累计对数收益并返回更新后的最大回撤。
func (d *DrawdownTracker) Advance(latestLogCompoundedReturn float64) float64 {
	if latestLogCompoundedReturn > d.currentPeak {
		d.currentPeak = latestLogCompoundedReturn
	}

	candidate := 1 - math.Exp(latestLogCompoundedReturn-d.currentPeak)
	if candidate > d.maxDrawdown {
		d.maxDrawdown = candidate
	}

	return d.maxDrawdown
}

// MaxDrawdown 返回迄今观测到的最大回撤。
func (d *DrawdownTracker) MaxDrawdown() float64 {
	return d.maxDrawdown
}
