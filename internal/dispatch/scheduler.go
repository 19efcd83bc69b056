// Package dispatch 驱动迭代调度：选档期、派订单、重新上弦。
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shop-bench/internal/monitor"
	"shop-bench/internal/order"
	"shop-bench/internal/reduction"
	"shop-bench/internal/seller"
	"shop-bench/internal/transport"
)

type orderSource interface {
	Generate(policy reduction.Policy) order.Order
	ComputeBill(o order.Order, policy reduction.Policy) order.Bill
}

type roundSender interface {
	Send(ctx context.Context, endpoint transport.Endpoint, pathSuffix string, payload interface{}, handler transport.ReplyHandler)
}

type replyReconciler interface {
	HandleReply(ctx context.Context, roundID string, s seller.Seller, expected float64, status int, body []byte)
	HandleUnreachable(ctx context.Context, roundID string, s seller.Seller, cause error)
}

type sellerLister interface {
	All() []seller.Seller
}

type journal interface {
	RecordRound(ctx context.Context, payload monitor.RoundPayload)
}

// Scheduler 按迭代计数推进派单轮次。
// 每轮只派发不等待，回执由对账引擎在各自的 goroutine 里独立消化，
// 下一轮定时与任何回执的到达顺序无关。
type Scheduler struct {
	table      Table
	directory  sellerLister
	orders     orderSource
	transport  roundSender
	reconciler replyReconciler
	journal    journal
	logger     *zap.Logger
	clock      Clock

	iteration atomic.Int64
}

// NewScheduler 创建调度器。
func NewScheduler(table Table, dir sellerLister, orders orderSource, sender roundSender, rec replyReconciler, journal journal, clock Clock, logger *zap.Logger) (*Scheduler, error) {
	if dir == nil {
		return nil, fmt.Errorf("dispatch: directory 不能为空")
	}
	if orders == nil {
		return nil, fmt.Errorf("dispatch: order source 不能为空")
	}
	if sender == nil {
		return nil, fmt.Errorf("dispatch: transport 不能为空")
	}
	if rec == nil {
		return nil, fmt.Errorf("dispatch: reconciler 不能为空")
	}
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		table:      table,
		directory:  dir,
		orders:     orders,
		transport:  sender,
		reconciler: rec,
		journal:    journal,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Iteration 返回当前迭代计数，可以在调度运行期间并发读取。
func (s *Scheduler) Iteration() int64 {
	return s.iteration.Load()
}

// Run 无限推进派单轮次，直到 ctx 取消。
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("调度器已启动")

	for {
		iteration := s.iteration.Load()
		period := s.table.PeriodFor(iteration)
		s.dispatchRound(ctx, iteration, period)
		s.iteration.Add(1)

		select {
		case <-ctx.Done():
			s.logger.Info("调度器收到退出信号", zap.Int64("iteration", s.iteration.Load()))
			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case <-s.clock.After(period.Interval):
		}
	}
}

// dispatchRound 生成一笔订单并向所有卖家扇出，不等待任何回执。
func (s *Scheduler) dispatchRound(ctx context.Context, iteration int64, period Period) {
	roundID := uuid.NewString()

	o := s.orders.Generate(period.Policy)
	expected := s.orders.ComputeBill(o, period.Policy)
	sellers := s.directory.All()

	s.logger.Debug("派发新一轮订单",
		zap.String("round", roundID),
		zap.Int64("iteration", iteration),
		zap.String("reduction", period.Policy.Name()),
		zap.Duration("interval", period.Interval),
		zap.Int("sellers", len(sellers)),
	)

	if s.journal != nil {
		s.journal.RecordRound(ctx, monitor.RoundPayload{
			RoundID:       roundID,
			Iteration:     iteration,
			Reduction:     period.Policy.Name(),
			IntervalMs:    period.Interval.Milliseconds(),
			ExpectedTotal: expected.Total,
			SellerCount:   len(sellers),
		})
	}

	for _, sel := range sellers {
		sel := sel
		// 每个卖家闭包持有自己的期望金额，回执晚到也只影响自己。
		expectedTotal := expected.Total
		endpoint := transport.Endpoint{Hostname: sel.Hostname, Port: sel.Port, Path: sel.Path}

		s.transport.Send(ctx, endpoint, "/order", o, transport.ReplyHandler{
			OnReply: func(status int, body []byte) {
				s.reconciler.HandleReply(ctx, roundID, sel, expectedTotal, status, body)
			},
			OnUnreachable: func(err error) {
				s.reconciler.HandleUnreachable(ctx, roundID, sel, err)
			},
		})
	}
}
