// Package notifier 向卖家回发对账反馈。
package notifier

import (
	"context"

	"go.uber.org/zap"

	"shop-bench/internal/seller"
	"shop-bench/internal/transport"
)

// FeedbackType 区分反馈级别。
type FeedbackType string

const (
	FeedbackInfo  FeedbackType = "INFO"
	FeedbackError FeedbackType = "ERROR"
)

// Feedback 是回发给卖家的消息体。
type Feedback struct {
	Type    FeedbackType `json:"type"`
	Content string       `json:"content"`
}

type sender interface {
	Send(ctx context.Context, endpoint transport.Endpoint, pathSuffix string, payload interface{}, handler transport.ReplyHandler)
}

// Notifier 通过传输层投递反馈，失败只记日志。
type Notifier struct {
	client sender
	logger *zap.Logger
}

// New 创建通知器。
func New(client sender, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{client: client, logger: logger}
}

// Notify 向卖家投递一条反馈，不等待结果。
func (n *Notifier) Notify(ctx context.Context, s seller.Seller, typ FeedbackType, content string) {
	endpoint := transport.Endpoint{Hostname: s.Hostname, Port: s.Port, Path: s.Path}
	name := s.Name

	n.client.Send(ctx, endpoint, "/feedback", Feedback{Type: typ, Content: content}, transport.ReplyHandler{
		OnUnreachable: func(err error) {
			n.logger.Debug("反馈投递失败",
				zap.String("seller", name),
				zap.Error(err),
			)
		},
	})
}
