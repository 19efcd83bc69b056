package order

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedReply 表示卖家回执缺少 total 字段或字段不是数值。
var ErrMalformedReply = errors.New("回执账单格式非法")

// ParseBill 解析并校验卖家回执的账单。
// 这是回执进入对账前唯一的一道校验。
func ParseBill(raw []byte) (Bill, error) {
	var reply struct {
		Total *float64 `json:"total"`
	}

	if err := json.Unmarshal(raw, &reply); err != nil {
		return Bill{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if reply.Total == nil {
		return Bill{}, fmt.Errorf("%w: 缺少 total 字段", ErrMalformedReply)
	}

	return Bill{Total: *reply.Total}, nil
}
