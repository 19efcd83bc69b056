package transport

import "errors"

// ErrUnreachable 表示请求未能到达卖家端点。
var ErrUnreachable = errors.New("卖家端点不可达")

// IsUnreachable 判断错误是否为不可达类故障。
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}
