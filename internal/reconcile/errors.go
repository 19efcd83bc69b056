package reconcile

import "errors"

// ErrBillMismatch 表示卖家账单与期望账单在两位小数精度下不一致。
var ErrBillMismatch = errors.New("账单金额不一致")
