package order

// Order 是一次派单的商品清单，生成后不再修改。
type Order struct {
	Prices     []float64 `json:"prices"`
	Quantities []int     `json:"quantities"`
	Country    string    `json:"country"`
	Reduction  string    `json:"reduction"`
}

// Bill 表示一笔订单的应付总额。
type Bill struct {
	Total float64 `json:"total"`
}
