package treasury

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"
)

// 曲线查找允许向前回溯的最大天数：节假日或数据缺口内使用最近一期曲线。
const maxLookbackDays = 7

// Row 为某一天的国债收益率曲线采样，收益率为小数形式年化值。
// 期间收益固定选用10年期限（constant maturity）。
type Row struct {
	Date    time.Time
	TenYear float64
}

// Curve 是按日期升序排列的国债收益率曲线序列。
type Curve struct {
	rows []Row
}

// NewCurve 从曲线行构建 Curve，按日期升序排序。
func NewCurve(rows []Row) (*Curve, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("treasury: 收益率曲线不能为空")
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i := range sorted {
		sorted[i].Date = midnight(sorted[i].Date)
	}

	return &Curve{rows: sorted}, nil
}

// PeriodReturn 返回 [start, end] 区间的非复利国债期间收益：
// 取 end 当天（或之前7日内最近一期）曲线的10年期收益率，
// 按区间天数占全年比例折算。
func (c *Curve) PeriodReturn(_ context.Context, start, end time.Time) (float64, error) {
	row, ok := c.mostRecent(end)
	if !ok {
		return 0, fmt.Errorf("treasury: %s 之前%d日内没有可用的收益率曲线",
			end.UTC().Format("2006-01-02"), maxLookbackDays)
	}

	return row.TenYear * periodFraction(start, end), nil
}

// mostRecent 返回日期不晚于 end 且在回溯窗口内的最近一行。
func (c *Curve) mostRecent(end time.Time) (Row, bool) {
	day := midnight(end)
	idx := sort.Search(len(c.rows), func(i int) bool {
		return c.rows[i].Date.After(day)
	})
	if idx == 0 {
		return Row{}, false
	}

	row := c.rows[idx-1]
	if day.Sub(row.Date) > maxLookbackDays*24*time.Hour {
		return Row{}, false
	}
	return row, true
}

func midnight(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// LoadCurveCSV 从 CSV 文件读取收益率曲线。
// 文件需要表头 date,rate_10y，日期为 2006-01-02 格式，收益率为小数年化值。
func LoadCurveCSV(path string) (*Curve, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("treasury: 打开曲线文件失败: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("treasury: 解析曲线文件失败: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("treasury: 曲线文件 %q 没有数据行", path)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("treasury: 曲线文件第%d行字段不足", i+2)
		}
		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			return nil, fmt.Errorf("treasury: 曲线文件第%d行日期非法: %w", i+2, err)
		}
		rate, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("treasury: 曲线文件第%d行收益率非法: %w", i+2, err)
		}
		rows = append(rows, Row{Date: date.UTC(), TenYear: rate})
	}

	return NewCurve(rows)
}
