package replay

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Observation 为一个模拟周期的策略与基准收益观测。
type Observation struct {
	Timestamp time.Time
	Algorithm float64
	Benchmark float64
}

// ObservationProvider 按时间顺序提供收益观测。
type ObservationProvider interface {
	Next(ctx context.Context) (Observation, bool, error)
}

// SliceProvider 以固定序列提供观测。
type SliceProvider struct {
	observations []Observation
	index        int
}

func NewSliceProvider(observations []Observation) *SliceProvider {
	return &SliceProvider{observations: observations}
}

func (p *SliceProvider) Next(ctx context.Context) (Observation, bool, error) {
	if p.index >= len(p.observations) {
		return Observation{}, false, nil
	}
	obs := p.observations[p.index]
	p.index++
	return obs, true, nil
}

// LoadObservationsCSV 从 CSV 文件读取观测序列。
// 文件需要表头 timestamp,algorithm_return,benchmark_return，
// 时间戳为 RFC3339 格式，行必须按时间升序排列。
func LoadObservationsCSV(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: 打开收益文件失败: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("replay: 解析收益文件失败: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("replay: 收益文件 %q 没有数据行", path)
	}

	observations := make([]Observation, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("replay: 收益文件第%d行字段不足", i+2)
		}
		ts, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			return nil, fmt.Errorf("replay: 收益文件第%d行时间戳非法: %w", i+2, err)
		}
		algorithmReturn, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("replay: 收益文件第%d行策略收益非法: %w", i+2, err)
		}
		benchmarkReturn, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("replay: 收益文件第%d行基准收益非法: %w", i+2, err)
		}

		if len(observations) > 0 && !observations[len(observations)-1].Timestamp.Before(ts) {
			return nil, fmt.Errorf("replay: 收益文件第%d行时间戳未按升序排列", i+2)
		}

		observations = append(observations, Observation{
			Timestamp: ts.UTC(),
			Algorithm: algorithmReturn,
			Benchmark: benchmarkReturn,
		})
	}

	return observations, nil
}
