package risk

import "errors"

// 致命错误分类：配置错误与数据一致性错误都会中止回测，
// 数值退化（波动率趋零、样本不足等）不属于错误，以哨兵值表达。
var (
	// ErrOffGrid 表示更新时间戳不在构建时确定的时间网格内。
	ErrOffGrid = errors.New("risk: 时间戳不在时间网格内")

	// ErrOutOfOrder 表示更新时间戳早于或等于上一次更新。
	ErrOutOfOrder = errors.New("risk: 更新必须按时间顺序推进")

	// ErrSeriesMismatch 表示策略与基准收益的已观测时间戳集合不一致，
	// 通常意味着上游收益生成管道存在缺陷。
	ErrSeriesMismatch = errors.New("risk: 策略与基准收益序列不一致")
)
