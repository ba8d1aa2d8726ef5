package risk

import (
	"fmt"
	"math"
	"time"
)

// ReturnBuffer 在预分配的连续时间网格上保存策略与基准收益。
// 槽位以 NaN 表示缺失；写入 NaN 等同于不写入，该时间戳保持缺失。
// 写入必须按时间顺序推进，已写入的槽位不会被后续更新覆盖。
type ReturnBuffer struct {
	grid      []time.Time
	positions map[int64]int

	algorithm []float64
	benchmark []float64

	// 按写入顺序维护的已观测视图，避免每次更新重扫整个网格。
	algorithmObserved []float64
	benchmarkObserved []float64
	algorithmSlots    []int
	benchmarkSlots    []int

	annualizedMeanReturns []float64
	algorithmSum          float64
	periodsPerYear        float64

	lastSlot int
}

// NewReturnBuffer 按时间网格预分配缓冲区。
func NewReturnBuffer(grid []time.Time, periodsPerYear float64) (*ReturnBuffer, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("risk: 时间网格不能为空")
	}

	positions := make(map[int64]int, len(grid))
	for i, ts := range grid {
		if i > 0 && !grid[i-1].Before(ts) {
			return nil, fmt.Errorf("risk: 时间网格必须严格递增，位置%d", i)
		}
		positions[ts.UnixNano()] = i
	}

	algorithm := make([]float64, len(grid))
	benchmark := make([]float64, len(grid))
	for i := range grid {
		algorithm[i] = math.NaN()
		benchmark[i] = math.NaN()
	}

	return &ReturnBuffer{
		grid:           grid,
		positions:      positions,
		algorithm:      algorithm,
		benchmark:      benchmark,
		periodsPerYear: periodsPerYear,
		lastSlot:       -1,
	}, nil
}

// Record 在时间戳 t 写入两条收益，并刷新年化均值序列。
// t 不在网格内或早于上次写入时返回致命配置错误。
func (b *ReturnBuffer) Record(t time.Time, algorithmReturn, benchmarkReturn float64) error {
	slot, ok := b.positions[t.UnixNano()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOffGrid, t.UTC().Format(time.RFC3339))
	}
	if slot <= b.lastSlot {
		return fmt.Errorf("%w: %s", ErrOutOfOrder, t.UTC().Format(time.RFC3339))
	}
	b.lastSlot = slot

	if !math.IsNaN(algorithmReturn) {
		b.algorithm[slot] = algorithmReturn
		b.algorithmObserved = append(b.algorithmObserved, algorithmReturn)
		b.algorithmSlots = append(b.algorithmSlots, slot)
		b.algorithmSum += algorithmReturn
	}
	if !math.IsNaN(benchmarkReturn) {
		b.benchmark[slot] = benchmarkReturn
		b.benchmarkObserved = append(b.benchmarkObserved, benchmarkReturn)
		b.benchmarkSlots = append(b.benchmarkSlots, slot)
	}

	meanReturn := math.NaN()
	if count := len(b.algorithmObserved); count > 0 {
		meanReturn = b.algorithmSum / float64(count) * b.periodsPerYear
	}
	b.annualizedMeanReturns = append(b.annualizedMeanReturns, meanReturn)

	return nil
}

// AlgorithmObserved 返回策略收益的已观测视图（内部切片，调用方不得修改）。
func (b *ReturnBuffer) AlgorithmObserved() []float64 {
	return b.algorithmObserved
}

// BenchmarkObserved 返回基准收益的已观测视图（内部切片，调用方不得修改）。
func (b *ReturnBuffer) BenchmarkObserved() []float64 {
	return b.benchmarkObserved
}

// ObservedCount 返回策略收益已观测的样本数。
func (b *ReturnBuffer) ObservedCount() int {
	return len(b.algorithmObserved)
}

// Aligned 检查策略与基准的已观测槽位集合是否完全一致。
// 二者发散说明上游在同一时间戳只提供了其中一条收益。
func (b *ReturnBuffer) Aligned() bool {
	if len(b.algorithmSlots) != len(b.benchmarkSlots) {
		return false
	}
	for i := range b.algorithmSlots {
		if b.algorithmSlots[i] != b.benchmarkSlots[i] {
			return false
		}
	}
	return true
}

// AnnualizedMeanReturns 返回每次写入后的年化均值序列副本。
func (b *ReturnBuffer) AnnualizedMeanReturns() []float64 {
	return append([]float64(nil), b.annualizedMeanReturns...)
}

// LatestAnnualizedMean 返回最近一次写入后的年化均值。
func (b *ReturnBuffer) LatestAnnualizedMean() float64 {
	if len(b.annualizedMeanReturns) == 0 {
		return math.NaN()
	}
	return b.annualizedMeanReturns[len(b.annualizedMeanReturns)-1]
}

// LastObservedTime 返回最近一个已观测策略收益的时间戳。
func (b *ReturnBuffer) LastObservedTime() (time.Time, bool) {
	if len(b.algorithmSlots) == 0 {
		return time.Time{}, false
	}
	return b.grid[b.algorithmSlots[len(b.algorithmSlots)-1]], true
}

// Grid 返回时间网格副本。
func (b *ReturnBuffer) Grid() []time.Time {
	return append([]time.Time(nil), b.grid...)
}
