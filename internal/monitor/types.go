package monitor

import "time"

// EventType 表示日志事件类型。
type EventType string

const (
	EventRoundDispatched  EventType = "round_dispatched"
	EventReconciliation   EventType = "reconciliation"
	EventSellerOffline    EventType = "seller_offline"
	EventSellerRegistered EventType = "seller_registered"
	EventError            EventType = "error"
)

// ReconOutcome 表示一次对账的结论。
type ReconOutcome string

const (
	OutcomeMatch     ReconOutcome = "match"
	OutcomeMismatch  ReconOutcome = "mismatch"
	OutcomeMalformed ReconOutcome = "malformed"
)

// Event 封装通用日志事件。
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RoundPayload 记录一轮派单。
type RoundPayload struct {
	RoundID       string  `json:"round_id"`
	Iteration     int64   `json:"iteration"`
	Reduction     string  `json:"reduction"`
	IntervalMs    int64   `json:"interval_ms"`
	ExpectedTotal float64 `json:"expected_total"`
	SellerCount   int     `json:"seller_count"`
}

// ReconPayload 记录单个卖家的对账结果。
type ReconPayload struct {
	RoundID  string       `json:"round_id"`
	Seller   string       `json:"seller"`
	Outcome  ReconOutcome `json:"outcome"`
	Expected float64      `json:"expected"`
	Actual   float64      `json:"actual,omitempty"`
	Message  string       `json:"message,omitempty"`
}

// OfflinePayload 记录卖家掉线。
type OfflinePayload struct {
	RoundID string `json:"round_id"`
	Seller  string `json:"seller"`
	Reason  string `json:"reason"`
}

// RegistrationPayload 记录卖家注册。
type RegistrationPayload struct {
	Seller   string `json:"seller"`
	Hostname string `json:"hostname"`
	Port     int    `json:"port"`
	Path     string `json:"path"`
}

// ErrorPayload 记录运行期错误。
type ErrorPayload struct {
	Message string                 `json:"message"`
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}
