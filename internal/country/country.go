// Package country 维护国家代码与对应的税率乘数。
package country

import "math/rand"

// Table 保存可用国家及其税率。
type Table struct {
	codes []string
	taxes map[string]float64
}

// NewTable 返回默认国家表。
func NewTable() *Table {
	taxes := map[string]float64{
		"DE": 1.20,
		"UK": 1.21,
		"FR": 1.20,
		"IT": 1.25,
		"ES": 1.19,
		"PL": 1.21,
		"RO": 1.20,
		"NL": 1.20,
		"BE": 1.24,
		"EL": 1.20,
		"CZ": 1.19,
		"PT": 1.23,
		"HU": 1.27,
		"SE": 1.23,
		"AT": 1.22,
		"DK": 1.21,
		"FI": 1.17,
		"SK": 1.18,
		"IE": 1.21,
		"LU": 1.25,
	}

	codes := make([]string, 0, len(taxes))
	for code := range taxes {
		codes = append(codes, code)
	}

	return &Table{codes: codes, taxes: taxes}
}

// RandomOne 从国家表中等概率抽取一个国家代码。
func (t *Table) RandomOne(rng *rand.Rand) string {
	return t.codes[rng.Intn(len(t.codes))]
}

// Tax 返回国家的税率乘数，未知国家返回 1。
func (t *Table) Tax(code string) float64 {
	if tax, ok := t.taxes[code]; ok {
		return tax
	}
	return 1
}
