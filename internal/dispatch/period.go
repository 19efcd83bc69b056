package dispatch

import (
	"time"

	"shop-bench/internal/reduction"
)

// Period 是某一轮迭代生效的促销档期：折扣策略加派单间隔。
type Period struct {
	Policy   reduction.Policy
	Interval time.Duration
}

// Table 保存各档期的派单间隔，窗口频率固定。
type Table struct {
	StandardInterval    time.Duration
	HalfPriceInterval   time.Duration
	PayThePriceInterval time.Duration
}

// DefaultTable 返回默认档期表。
func DefaultTable() Table {
	return Table{
		StandardInterval:    5 * time.Second,
		HalfPriceInterval:   500 * time.Millisecond,
		PayThePriceInterval: 8 * time.Second,
	}
}

// PeriodFor 计算迭代计数对应的档期，是纯函数。
// 规则按优先级取第一个命中者；两个窗口规则都要求计数至少到达窗口频率一次，
// 在此之前一律落入默认的阶梯折扣档。
func (t Table) PeriodFor(iteration int64) Period {
	switch {
	case iteration >= 200 && iteration%200 < 10:
		return Period{Policy: reduction.PayThePrice, Interval: t.PayThePriceInterval}
	case iteration >= 100 && iteration%100 < 30:
		return Period{Policy: reduction.HalfPrice, Interval: t.HalfPriceInterval}
	default:
		return Period{Policy: reduction.Standard, Interval: t.StandardInterval}
	}
}
