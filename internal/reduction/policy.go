// Package reduction 定义订单金额的促销折扣策略。
package reduction

// Policy 将应付金额映射为折后金额。
type Policy interface {
	Name() string
	Apply(amount float64) float64
}

var (
	// PayThePrice 原价策略，不打任何折扣。
	PayThePrice Policy = payThePrice{}
	// HalfPrice 全场五折。
	HalfPrice Policy = halfPrice{}
	// Standard 按金额阶梯折扣。
	Standard Policy = standard{}
)

// ByName 根据名称返回策略，未知名称返回 nil。
func ByName(name string) Policy {
	switch name {
	case PayThePrice.Name():
		return PayThePrice
	case HalfPrice.Name():
		return HalfPrice
	case Standard.Name():
		return Standard
	default:
		return nil
	}
}

type payThePrice struct{}

func (payThePrice) Name() string                 { return "PAY THE PRICE" }
func (payThePrice) Apply(amount float64) float64 { return amount }

type halfPrice struct{}

func (halfPrice) Name() string                 { return "HALF PRICE" }
func (halfPrice) Apply(amount float64) float64 { return amount * 0.5 }

type standard struct{}

func (standard) Name() string { return "STANDARD" }

func (standard) Apply(amount float64) float64 {
	return amount * (1 - rateFor(amount))
}

type tier struct {
	threshold float64
	rate      float64
}

// 阈值严格递减，取第一个满足 threshold <= total 的档位。
var tiers = []tier{
	{50000, 0.15},
	{10000, 0.10},
	{7000, 0.07},
	{5000, 0.05},
	{1000, 0.03},
}

func rateFor(total float64) float64 {
	for _, t := range tiers {
		if total >= t.threshold {
			return t.rate
		}
	}
	return 0
}
