package risk

import (
	"context"
	"fmt"
	"time"

	"backtest-risk/internal/calendar"
	"backtest-risk/internal/treasury"
)

// TreasuryCache 按自然日缓存国债期间收益。
// 分钟级回测中曲线查找是单次更新的主要开销，按日缓存把成本
// 摊薄到每个交易日一次查询。缓存不做淘汰，生命周期与回测一致。
type TreasuryCache struct {
	source      treasury.Source
	periodStart time.Time
	values      map[time.Time]float64
}

// NewTreasuryCache 创建缓存，periodStart 为所有区间查询的固定起点。
func NewTreasuryCache(source treasury.Source, periodStart time.Time) *TreasuryCache {
	return &TreasuryCache{
		source:      source,
		periodStart: periodStart,
		values:      make(map[time.Time]float64),
	}
}

// PeriodReturn 返回 periodStart 到 end 的国债期间收益。
// end 所在自然日已缓存时直接命中，不再查询曲线源。
func (c *TreasuryCache) PeriodReturn(ctx context.Context, end time.Time) (float64, error) {
	day := calendar.Midnight(end)
	if value, ok := c.values[day]; ok {
		return value, nil
	}

	value, err := c.source.PeriodReturn(ctx, c.periodStart, end)
	if err != nil {
		return 0, fmt.Errorf("risk: 查询国债期间收益失败: %w", err)
	}
	c.values[day] = value

	return value, nil
}

// Size 返回已缓存的自然日数量。
func (c *TreasuryCache) Size() int {
	return len(c.values)
}
