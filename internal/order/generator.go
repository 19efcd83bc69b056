// Package order 负责合成订单、计算期望账单并校验卖家回执。
package order

import (
	"math/rand"
	"time"

	"shop-bench/internal/country"
	"shop-bench/internal/money"
	"shop-bench/internal/reduction"
)

const (
	maxItems    = 10
	maxQuantity = 10
	maxPrice    = 100.0
)

// Generator 随机合成订单并计算期望账单。
type Generator struct {
	rng       *rand.Rand
	countries *country.Table
}

// NewGenerator 创建订单生成器，seed 为 0 时使用当前时间。
func NewGenerator(countries *country.Table, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		countries: countries,
	}
}

// Generate 按策略合成一笔随机订单。
func (g *Generator) Generate(policy reduction.Policy) Order {
	count := g.rng.Intn(maxItems) + 1

	prices := make([]float64, count)
	quantities := make([]int, count)
	for i := 0; i < count; i++ {
		prices[i] = money.Round2(g.drawPrice())
		quantities[i] = g.rng.Intn(maxQuantity) + 1
	}

	return Order{
		Prices:     prices,
		Quantities: quantities,
		Country:    g.countries.RandomOne(g.rng),
		Reduction:  policy.Name(),
	}
}

// drawPrice 在开区间 (1,100) 内均匀抽取单价。
// Float64 可能返回 0，落在下界上的抽取重抽。
func (g *Generator) drawPrice() float64 {
	u := g.rng.Float64()
	for u == 0 {
		u = g.rng.Float64()
	}
	return u*(maxPrice-1) + 1
}

// ComputeBill 计算订单的期望账单。
// 总额不做舍入，两位小数的舍入只发生在对账比较时。
func (g *Generator) ComputeBill(o Order, policy reduction.Policy) Bill {
	var sum float64
	for i, price := range o.Prices {
		sum += price * float64(o.Quantities[i])
	}
	sum *= g.countries.Tax(o.Country)
	return Bill{Total: policy.Apply(sum)}
}
