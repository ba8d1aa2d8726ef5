package calendar

import (
	"fmt"
	"time"

	"backtest-risk/internal/config"
)

// Params 描述一次回测的时间参数，起止日期均归一化到 UTC 零点。
type Params struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	FirstOpen    time.Time
	LastClose    time.Time
	EmissionRate string
}

// NewParams 从配置构建 Params。
func NewParams(cfg config.SimulationConfig) (Params, error) {
	if cfg.PeriodStart.IsZero() || cfg.PeriodEnd.IsZero() {
		return Params{}, fmt.Errorf("calendar: period_start 与 period_end 不能为空")
	}

	p := Params{
		PeriodStart:  Midnight(cfg.PeriodStart),
		PeriodEnd:    Midnight(cfg.PeriodEnd),
		FirstOpen:    cfg.FirstOpen.UTC(),
		LastClose:    cfg.LastClose.UTC(),
		EmissionRate: cfg.EmissionRate,
	}
	if p.PeriodEnd.Before(p.PeriodStart) {
		return Params{}, fmt.Errorf("calendar: period_end %s 早于 period_start %s",
			p.PeriodEnd.Format("2006-01-02"), p.PeriodStart.Format("2006-01-02"))
	}

	return p, nil
}

// Midnight 将时间戳截断到 UTC 零点。
func Midnight(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// Calendar 提供指定区间内的交易日序列。
type Calendar interface {
	TradingDays(start, end time.Time) []time.Time
}

// Weekday 是默认交易日历：周一至周五，剔除配置的节假日。
type Weekday struct {
	holidays map[string]struct{}
}

// NewWeekday 创建 Weekday 日历，节假日按 "2006-01-02" 解析。
func NewWeekday(holidays []string) (*Weekday, error) {
	set := make(map[string]struct{}, len(holidays))
	for _, day := range holidays {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return nil, fmt.Errorf("calendar: 节假日 %q 不是合法日期: %w", day, err)
		}
		set[day] = struct{}{}
	}
	return &Weekday{holidays: set}, nil
}

// TradingDays 返回 [start, end] 内的全部交易日（UTC 零点）。
func (w *Weekday) TradingDays(start, end time.Time) []time.Time {
	var days []time.Time
	for day := Midnight(start); !day.After(Midnight(end)); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if _, skip := w.holidays[day.Format("2006-01-02")]; skip {
			continue
		}
		days = append(days, day)
	}
	return days
}

// Grid 按给定频率构建连续时间网格。
// 日频网格为区间内交易日，若 period_end 不在日历上则追加到末尾；
// 分钟频网格为 first_open 至 last_close 的每一分钟。
func Grid(p Params, cal Calendar, frequency string) ([]time.Time, error) {
	if frequency == "" {
		frequency = p.EmissionRate
	}

	switch frequency {
	case config.FrequencyDaily:
		days := cal.TradingDays(p.PeriodStart, p.PeriodEnd)
		if len(days) == 0 || !days[len(days)-1].Equal(p.PeriodEnd) {
			days = append(days, p.PeriodEnd)
		}
		return days, nil
	case config.FrequencyMinute:
		if p.FirstOpen.IsZero() || p.LastClose.IsZero() || p.LastClose.Before(p.FirstOpen) {
			return nil, fmt.Errorf("calendar: 分钟级网格需要合法的 first_open/last_close")
		}
		var grid []time.Time
		for ts := p.FirstOpen; !ts.After(p.LastClose); ts = ts.Add(time.Minute) {
			grid = append(grid, ts)
		}
		return grid, nil
	default:
		return nil, fmt.Errorf("calendar: 不支持的收益频率 %q", frequency)
	}
}
