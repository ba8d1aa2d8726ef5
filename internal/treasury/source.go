package treasury

import (
	"context"
	"time"
)

// Source 提供无风险基准收益：给定区间返回该区间的国债期间收益率。
type Source interface {
	PeriodReturn(ctx context.Context, start, end time.Time) (float64, error)
}

// Flat 以固定年化利率模拟国债收益，便于测试与零利率场景。
type Flat struct {
	Rate float64 // 年化利率（小数形式，0.045 表示 4.5%）
}

// PeriodReturn 按非复利方式折算区间收益。
func (f Flat) PeriodReturn(_ context.Context, start, end time.Time) (float64, error) {
	return f.Rate * periodFraction(start, end), nil
}

// periodFraction 返回区间覆盖的整天数占一年的比例。
func periodFraction(start, end time.Time) float64 {
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return float64(days) / 365
}
