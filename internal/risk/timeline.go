package risk

import "time"

// MetricsRow 为单次更新写入时间线的一行。
type MetricsRow struct {
	Alpha  float64
	Beta   float64
	Sharpe float64
}

// MetricsTimeline 按时间索引记录每次更新的 alpha/beta/sharpe，只追加不改写。
type MetricsTimeline struct {
	timestamps []time.Time
	rows       []MetricsRow
}

// NewMetricsTimeline 创建时间线并按预期更新次数预留容量。
func NewMetricsTimeline(capacity int) *MetricsTimeline {
	return &MetricsTimeline{
		timestamps: make([]time.Time, 0, capacity),
		rows:       make([]MetricsRow, 0, capacity),
	}
}

// Append 写入时间戳 t 对应的一行。
func (m *MetricsTimeline) Append(t time.Time, row MetricsRow) {
	m.timestamps = append(m.timestamps, t)
	m.rows = append(m.rows, row)
}

// Len 返回已记录的行数。
func (m *MetricsTimeline) Len() int {
	return len(m.rows)
}

// Latest 返回最近一行。
func (m *MetricsTimeline) Latest() (time.Time, MetricsRow, bool) {
	if len(m.rows) == 0 {
		return time.Time{}, MetricsRow{}, false
	}
	last := len(m.rows) - 1
	return m.timestamps[last], m.rows[last], true
}

// Timestamps 返回时间戳序列副本。
func (m *MetricsTimeline) Timestamps() []time.Time {
	return append([]time.Time(nil), m.timestamps...)
}

// Rows 返回行序列副本。
func (m *MetricsTimeline) Rows() []MetricsRow {
	return append([]MetricsRow(nil), m.rows...)
}
