// Package money 提供金额的两位小数舍入与比较。
package money

import "github.com/shopspring/decimal"

// Round2 将金额四舍五入到两位小数。
func Round2(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// Equal2 在两位小数精度下比较两个金额。
// 账单对账必须走这里，直接比较浮点数会被表示误差干扰。
func Equal2(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}
