// Package reconcile 对卖家回执与期望账单进行对账，并落实现金与状态变更。
package reconcile

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"shop-bench/internal/money"
	"shop-bench/internal/monitor"
	"shop-bench/internal/notifier"
	"shop-bench/internal/order"
	"shop-bench/internal/seller"
)

type directory interface {
	UpdateCash(name string, amountToAdd float64) error
	SetOnline(name string)
	SetOffline(name string)
}

type feedback interface {
	Notify(ctx context.Context, s seller.Seller, typ notifier.FeedbackType, content string)
}

type journal interface {
	RecordReconciliation(ctx context.Context, payload monitor.ReconPayload)
	RecordOffline(ctx context.Context, payload monitor.OfflinePayload)
}

// Reconciler 处理单次投递的成功与失败回调。
// 所有异常都在这里消化为通知或日志，绝不向调度器上抛。
type Reconciler struct {
	directory directory
	notifier  feedback
	journal   journal
	logger    *zap.Logger
}

// New 创建对账引擎。
func New(dir directory, notif feedback, journal journal, logger *zap.Logger) (*Reconciler, error) {
	if dir == nil {
		return nil, fmt.Errorf("reconcile: directory 不能为空")
	}
	if notif == nil {
		return nil, fmt.Errorf("reconcile: notifier 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		directory: dir,
		notifier:  notif,
		journal:   journal,
		logger:    logger,
	}, nil
}

// HandleReply 处理拿到 HTTP 响应的投递。
// 非 200 状态按不可达处理；收到 200 时先标记在线再解析回执，
// 解析失败只降级为错误通知，不影响在线状态。
func (r *Reconciler) HandleReply(ctx context.Context, roundID string, s seller.Seller, expected float64, status int, body []byte) {
	if status != http.StatusOK {
		r.markUnreachable(ctx, roundID, s, fmt.Errorf("响应状态码 %d", status))
		return
	}

	r.directory.SetOnline(s.Name)

	actual, err := order.ParseBill(body)
	if err != nil {
		r.logger.Warn("卖家回执非法",
			zap.String("seller", s.Name),
			zap.Error(err),
		)
		r.notifier.Notify(ctx, s, notifier.FeedbackError, fmt.Sprintf("你的账单无法解析: %v", err))
		r.recordRecon(ctx, monitor.ReconPayload{
			RoundID:  roundID,
			Seller:   s.Name,
			Outcome:  monitor.OutcomeMalformed,
			Expected: money.Round2(expected),
			Message:  err.Error(),
		})
		return
	}

	if !money.Equal2(expected, actual.Total) {
		mismatch := fmt.Errorf("%w: 期望 %.2f, 实际 %.2f", ErrBillMismatch, money.Round2(expected), money.Round2(actual.Total))
		r.logger.Info("对账不一致",
			zap.String("seller", s.Name),
			zap.Error(mismatch),
		)
		r.notifier.Notify(ctx, s, notifier.FeedbackError,
			fmt.Sprintf("账单金额错误: 期望 %.2f, 收到 %.2f", money.Round2(expected), money.Round2(actual.Total)))
		r.recordRecon(ctx, monitor.ReconPayload{
			RoundID:  roundID,
			Seller:   s.Name,
			Outcome:  monitor.OutcomeMismatch,
			Expected: money.Round2(expected),
			Actual:   money.Round2(actual.Total),
			Message:  mismatch.Error(),
		})
		return
	}

	if err := r.directory.UpdateCash(s.Name, expected); err != nil {
		r.logger.Warn("入账失败",
			zap.String("seller", s.Name),
			zap.Error(err),
		)
		return
	}

	r.notifier.Notify(ctx, s, notifier.FeedbackInfo,
		fmt.Sprintf("账单正确, 入账 %.2f", money.Round2(expected)))
	r.recordRecon(ctx, monitor.ReconPayload{
		RoundID:  roundID,
		Seller:   s.Name,
		Outcome:  monitor.OutcomeMatch,
		Expected: money.Round2(expected),
		Actual:   money.Round2(actual.Total),
	})
}

// HandleUnreachable 处理连接层失败的投递。
func (r *Reconciler) HandleUnreachable(ctx context.Context, roundID string, s seller.Seller, cause error) {
	r.markUnreachable(ctx, roundID, s, cause)
}

func (r *Reconciler) markUnreachable(ctx context.Context, roundID string, s seller.Seller, cause error) {
	r.directory.SetOffline(s.Name)
	r.logger.Info("卖家不可达，标记离线",
		zap.String("seller", s.Name),
		zap.Error(cause),
	)
	if r.journal != nil {
		r.journal.RecordOffline(ctx, monitor.OfflinePayload{
			RoundID: roundID,
			Seller:  s.Name,
			Reason:  cause.Error(),
		})
	}
}

func (r *Reconciler) recordRecon(ctx context.Context, payload monitor.ReconPayload) {
	if r.journal != nil {
		r.journal.RecordReconciliation(ctx, payload)
	}
}
